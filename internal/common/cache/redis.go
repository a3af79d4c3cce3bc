// internal/common/cache/redis.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"signalscout/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores strategy-service responses so re-running discovery with
// unchanged parameters skips the upstream call.
type RedisCache struct {
	Client redis.UniversalClient
}

// NewRedis creates a cache backed by a new Redis client.
func NewRedis(cfg config.RedisConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &RedisCache{Client: rdb}, nil
}

// NewWithClient wraps an existing client (used by tests with miniredis/redismock).
func NewWithClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{Client: client}
}

// Ping tests the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// Get retrieves a cached value by key. A cache miss is returned as redis.Nil.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

// Set stores a value with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

// Del deletes one or more keys
func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// IsMiss reports whether err is a cache miss rather than a transport failure.
func IsMiss(err error) bool {
	return err == redis.Nil
}

// StrategyKey builds the cache key for one platform's strategy response.
// The solution focus is hashed so free text never lands in a key.
func StrategyKey(personaID, platform, solutionFocus string) string {
	if personaID == "" {
		personaID = "anonymous"
	}
	focus := "content"
	if solutionFocus != "" {
		sum := sha1.Sum([]byte(solutionFocus))
		focus = hex.EncodeToString(sum[:8])
	}
	return fmt.Sprintf("strategy:%s:%s:%s", personaID, platform, focus)
}
