// Package cache provides a small JSON cache backed by Redis.
//
// A Store is injected into services that want caching. A nil or
// disconnected Store degrades to a no-op: Get always misses, Set and Del
// succeed silently. The application must keep working without Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/766ms/Glam-rent-v1/config"
)

// Store wraps a Redis client for JSON get/set with TTLs.
type Store struct {
	rdb *redis.Client
}

// Connect initialises the Redis client and verifies it with a ping.
// On failure a disabled (no-op) Store and the error are returned, so the
// caller can log a warning and continue without caching.
func Connect() (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return &Store{}, fmt.Errorf("cache: redis ping: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

// Disabled returns a Store that never caches. Used in tests and when Redis
// is unreachable.
func Disabled() *Store { return &Store{} }

// Get retrieves a cached value by key and unmarshals it into dest.
// Returns true on a cache hit, false on miss, error, or disabled store.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if s == nil || s.rdb == nil {
		return false
	}

	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(val), dest) == nil
}

// Set stores value under key for the given TTL.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.rdb.Set(ctx, key, data, ttl).Err()
}

// Del removes one or more keys.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}
