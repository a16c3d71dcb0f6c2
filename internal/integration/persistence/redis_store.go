package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/companion/internal/application/adapter"
)

// redisStore implements adapter.KeyValueStore on Redis strings.
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a key-value store whose keys are namespaced by prefix.
func NewRedisStore(client *redis.Client, prefix string) adapter.KeyValueStore {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *redisStore) key(k string) string {
	return s.prefix + k
}

// Get retrieves the value stored under key.
func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key without expiry.
func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

// Delete removes the given keys.
func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}
	return s.client.Del(ctx, prefixed...).Err()
}
