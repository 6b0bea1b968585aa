package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces cache entries so Clear never touches foreign keys
const redisKeyPrefix = "aifinverse:"

// RedisStore is a PreferenceStore backed by Redis. Expiry is handled natively
// by the server, so SweepExpired has nothing to do.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store connected to the given Redis address
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Get returns the value for key
func (s *RedisStore) Get(key string) (string, bool) {
	value, err := s.client.Get(context.Background(), redisKeyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores a value with no expiry
func (s *RedisStore) Set(key, value string) error {
	if err := s.client.Set(context.Background(), redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// SetWithTTL stores a value that expires after ttl
func (s *RedisStore) SetWithTTL(key, value string, ttl time.Duration) error {
	if err := s.client.Set(context.Background(), redisKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes an entry by key
func (s *RedisStore) Delete(key string) error {
	return s.client.Del(context.Background(), redisKeyPrefix+key).Err()
}

// Clear removes every entry under the cache prefix
func (s *RedisStore) Clear() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis clear: %w", err)
		}
	}
	return iter.Err()
}

// SweepExpired is a no-op; Redis expires keys itself
func (s *RedisStore) SweepExpired() (int, error) {
	return 0, nil
}

// Close closes the underlying Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
