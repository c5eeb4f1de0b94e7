package memcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/grafana/gomemcache/memcache"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

// DefaultCacheTTL is the expiration used when no WithTTL option is given.
const DefaultCacheTTL = time.Hour

// maxRelativeExpiration is the largest expiration memcached treats as relative seconds.
const maxRelativeExpiration = 30 * 24 * time.Hour

// maxKeyLength is the memcached protocol limit on key size.
const maxKeyLength = 250

// Client is the subset of the memcached API the flag cache needs.
type Client interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

type client struct {
	mc *memcache.Client
}

// Wrap adapts a *memcache.Client to Client.
func Wrap(mc *memcache.Client) Client {
	return client{mc: mc}
}

func (c client) Get(key string) (*memcache.Item, error) { return c.mc.Get(key) }
func (c client) Set(item *memcache.Item) error          { return c.mc.Set(item) }
func (c client) Delete(key string) error                { return c.mc.Delete(key) }

// Cache stores flag values in memcached as JSON. It implements feature.Cache.
type Cache struct {
	client Client
	ttl    time.Duration
	prefix string
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets the expiration of cached values. Zero means no expiration.
// Values above 30 days are clamped, since memcached reads larger numbers as Unix timestamps.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl >= 0 {
			c.ttl = min(ttl, maxRelativeExpiration)
		}
	}
}

// WithKeyPrefix namespaces every key written by the cache.
func WithKeyPrefix(prefix string) CacheOption {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// NewCache wraps a memcached client as a flag cache.
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

// Get returns the cached value for key. memcache.ErrCacheMiss is a miss, not an error.
func (c *Cache) Get(ctx context.Context, key string) (feature.Value, bool, error) {
	if err := ctx.Err(); err != nil {
		return feature.Value{}, false, err
	}
	k, err := c.key(key)
	if err != nil {
		return feature.Value{}, false, err
	}

	item, err := c.client.Get(k)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return feature.Value{}, false, nil
	}
	if err != nil {
		return feature.Value{}, false, err
	}

	var v feature.Value
	if err := v.UnmarshalJSON(item.Value); err != nil {
		return feature.Value{}, false, errors.Join(ErrCorruptValue, err)
	}
	return v, true, nil
}

// Set stores value under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value feature.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k, err := c.key(key)
	if err != nil {
		return err
	}
	raw, err := value.MarshalJSON()
	if err != nil {
		return err
	}
	return c.client.Set(&memcache.Item{
		Key:        k,
		Value:      raw,
		Expiration: int32(c.ttl / time.Second),
	})
}

// Delete evicts key. Deleting an absent key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k, err := c.key(key)
	if err != nil {
		return err
	}
	if err := c.client.Delete(k); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}

// hashedKeyMark starts the suffix of keys stored under their digest.
const hashedKeyMark = "h:"

// key applies the prefix. Flag keys memcached would refuse, and keys that could
// pass for a digest, are stored under the hex SHA-256 of the flag key instead.
// Only a prefix that is itself illegal yields ErrInvalidKey.
func (c *Cache) key(key string) (string, error) {
	if !validKey(c.prefix) || len(c.prefix)+len(hashedKeyMark)+2*sha256.Size > maxKeyLength {
		return "", ErrInvalidKey
	}
	k := c.prefix + key
	if key != "" && len(k) <= maxKeyLength && validKey(key) && !strings.HasPrefix(key, hashedKeyMark) {
		return k, nil
	}
	sum := sha256.Sum256([]byte(key))
	return c.prefix + hashedKeyMark + hex.EncodeToString(sum[:]), nil
}

func validKey(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] <= ' ' || s[i] == 0x7f {
			return false
		}
	}
	return true
}
