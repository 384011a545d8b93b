package codestore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	appErr "github.com/chronotes/chronotes/internal/pkg/errors"
)

const keyPrefix = "verify_code:"

type redisStore struct {
	client *redis.Client
}

// NewRedis backs the store with a shared redis instance, the deployment
// default when more than one node serves auth traffic.
func NewRedis(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+email, code, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, email string) (string, error) {
	value, err := s.client.Get(ctx, keyPrefix+email).Result()
	if err == redis.Nil {
		return "", appErr.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *redisStore) Del(ctx context.Context, email string) error {
	return s.client.Del(ctx, keyPrefix+email).Err()
}
