package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AdviceCache stores advisory texts keyed by a hash of the trade, so a
// repeated analysis of the same flip does not pay for another LLM call.
type AdviceCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, text string) error
	Close() error
}

type redisAdviceCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisAdviceCache builds a Redis-backed advice cache.
func NewRedisAdviceCache(addr, password string, db int, ttl time.Duration, prefix string) (AdviceCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	if prefix == "" {
		prefix = "flip_advice"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisAdviceCache{client: client, ttl: ttl, prefix: prefix}, nil
}

func (c *redisAdviceCache) key(k string) string {
	return fmt.Sprintf("%s:%s", c.prefix, k)
}

func (c *redisAdviceCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c == nil || c.client == nil {
		return "", false, nil
	}
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisAdviceCache) Set(ctx context.Context, key string, text string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.key(key), text, c.ttl).Err()
}

func (c *redisAdviceCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
