package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON read-through cache over Redis. A nil Cache or an
// unreachable Redis degrades to misses so callers never depend on it.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, ttl time.Duration) *Cache {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis not reachable at %s, caching disabled: %v", addr, err)
		return nil
	}

	log.Printf("Redis cache connected at %s", addr)
	return &Cache{client: client, ttl: ttl}
}

// GetJSON loads a cached value into dest, reporting whether it was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("Failed to decode cached value for %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores a value under the cache TTL. Failures are logged only.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to encode value for cache key %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}

// Invalidate drops keys matching the given exact keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate cache keys %v: %v", keys, err)
	}
}

func (c *Cache) Close() {
	if c == nil {
		return
	}
	if err := c.client.Close(); err != nil {
		log.Printf("Failed to close Redis client: %v", err)
	}
}
