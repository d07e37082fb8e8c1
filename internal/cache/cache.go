package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// Redis is an optional accelerator here: a dead redis degrades to cache misses
// and an open rate limiter, never to failed requests.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		// fail safe: ignore redis errors
		return nil
	}
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return nil
	}
	return nil
}

// Incr increments a counter key and returns the new value. A zero value with a
// non-nil error means redis is unavailable and callers should fail open.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, redis.ErrClosed
	}
	return c.client.Incr(ctx, key).Result()
}

// Expire sets a TTL on an existing key, ignoring redis errors.
func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
		return nil
	}
	return nil
}

// TTL returns the remaining TTL of a key, or zero if unknown.
func (c *Client) TTL(ctx context.Context, key string) (time.Duration, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ttl, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, nil
	}
	return ttl, nil
}
