package codestore

import (
	"context"
	"time"
)

// Store keeps short-lived verification codes keyed by email. Entries
// expire on their own; Get never returns a stale code.
type Store interface {
	// Put upserts the code for email and resets its TTL.
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns the live code for email, or errors.ErrNotFound once
	// it expired or was never set.
	Get(ctx context.Context, email string) (string, error)
	// Del removes the entry immediately. Deleting a missing entry is
	// not an error.
	Del(ctx context.Context, email string) error
}
