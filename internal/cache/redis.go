package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces redirect mappings inside a shared Redis instance.
const keyPrefix = "url:"

// RedisCache implements Cache on top of a Redis client.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps an existing client. A non-positive ttl falls back to
// DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, shortCode string) (string, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+shortCode).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, shortCode, originalURL string) error {
	if err := c.client.Set(ctx, keyPrefix+shortCode, originalURL, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, shortCode string) error {
	if err := c.client.Del(ctx, keyPrefix+shortCode).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
