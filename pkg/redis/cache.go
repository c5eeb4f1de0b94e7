package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

// DefaultCacheTTL is the expiration used when no WithTTL option is given.
const DefaultCacheTTL = time.Hour

// Client is the subset of the go-redis API the flag cache needs.
// Both *redis.Client and redis.UniversalClient satisfy it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache stores flag values in Redis as JSON. It implements feature.Cache.
type Cache struct {
	client Client
	ttl    time.Duration
	prefix string
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets the expiration of cached values. Zero means no expiration.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl >= 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix namespaces every key written by the cache.
func WithKeyPrefix(prefix string) CacheOption {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// NewCache wraps a Redis client as a flag cache.
func NewCache(client Client, opts ...CacheOption) *Cache {
	c := &Cache{
		client: client,
		ttl:    DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key. A missing key (redis.Nil) is a miss, not an error.
func (c *Cache) Get(ctx context.Context, key string) (feature.Value, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return feature.Value{}, false, nil
	}
	if err != nil {
		return feature.Value{}, false, err
	}

	var v feature.Value
	if err := v.UnmarshalJSON(raw); err != nil {
		return feature.Value{}, false, errors.Join(ErrCorruptValue, err)
	}
	return v, true, nil
}

// Set stores value under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value feature.Value) error {
	raw, err := value.MarshalJSON()
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err()
}

// Delete evicts key. Deleting an absent key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
