package codestore

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	appErr "github.com/chronotes/chronotes/internal/pkg/errors"
)

type entry struct {
	code     string
	deadline time.Time
}

type memoryStore struct {
	cache *expirable.LRU[string, entry]
	now   func() time.Time
}

// NewMemory is the in-process variant for single-node deployments and
// tests. Each entry carries its own deadline; the LRU's store-wide TTL
// only acts as an eviction backstop, so maxTTL must be at least as long
// as any TTL passed to Put.
func NewMemory(size int, maxTTL time.Duration) Store {
	return &memoryStore{
		cache: expirable.NewLRU[string, entry](size, nil, maxTTL),
		now:   time.Now,
	}
}

func (s *memoryStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.cache.Add(email, entry{code: code, deadline: s.now().Add(ttl)})
	return nil
}

func (s *memoryStore) Get(_ context.Context, email string) (string, error) {
	item, ok := s.cache.Get(email)
	if !ok || !s.now().Before(item.deadline) {
		return "", appErr.ErrNotFound
	}
	return item.code, nil
}

func (s *memoryStore) Del(_ context.Context, email string) error {
	s.cache.Remove(email)
	return nil
}
