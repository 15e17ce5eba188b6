package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultCacheTTL is how long a rewritten answer is reused
const DefaultCacheTTL = 24 * time.Hour

const cacheKeyPrefix = "tibot:rewrite:"

// Cache stores rewritten answers keyed by intent and raw text
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CacheKey derives the cache key for a raw answer under an intent
func CacheKey(intent, text string) string {
	sum := sha256.Sum256([]byte(intent + "\x00" + text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// RedisCache is a Cache backed by Redis string keys with a TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a cache on an existing client
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached value; ok is false on a miss
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores a value with the cache TTL
func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

// Ping checks the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
