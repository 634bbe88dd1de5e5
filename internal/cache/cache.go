package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned by the strict methods when no redis client
// is configured.
var ErrUnavailable = errors.New("cache: redis unavailable")

// Client wraps redis.Client. The plain Get/Set/Delete methods fail safe
// by swallowing connectivity errors, so profile caching degrades to a
// miss when redis is down. Refresh-token storage must not degrade that
// way; it uses the Strict variants, which propagate errors.
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

// GetStrict returns the value, redis.Nil when the key is missing, or
// the underlying redis error.
func (c *Client) GetStrict(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, ErrUnavailable
	}
	return c.client.Get(ctx, key).Bytes()
}

// SetStrict stores value with TTL and propagates redis errors.
func (c *Client) SetStrict(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return ErrUnavailable
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// DeleteStrict removes a key and propagates redis errors.
func (c *Client) DeleteStrict(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return ErrUnavailable
	}
	return c.client.Del(ctx, key).Err()
}

// IsMiss reports whether err from a strict read means the key is absent.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}
