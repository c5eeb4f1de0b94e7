package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

// DefaultTTL is the lifetime of a cached value when no WithTTL option is given.
const DefaultTTL = 5 * time.Minute

// Local is an in-process flag cache with per-entry expiration.
// It implements feature.Cache and is safe for concurrent use.
//
// Reads do not extend an entry's lifetime: a value expires a fixed time
// after it was written, no matter how often it is read.
type Local struct {
	items *ttlcache.Cache[string, feature.Value]
}

type localConfig struct {
	ttl      time.Duration
	capacity uint64
}

// LocalOption configures a Local cache.
type LocalOption func(*localConfig)

// WithTTL sets how long a value stays cached. Non-positive values are ignored.
func WithTTL(ttl time.Duration) LocalOption {
	return func(c *localConfig) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCapacity bounds the number of cached flags. Zero means unbounded.
func WithCapacity(n uint64) LocalOption {
	return func(c *localConfig) {
		c.capacity = n
	}
}

// NewLocal creates a Local cache. Call Close to stop its expiration loop.
func NewLocal(opts ...LocalOption) *Local {
	cfg := localConfig{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(&cfg)
	}

	topts := []ttlcache.Option[string, feature.Value]{
		ttlcache.WithTTL[string, feature.Value](cfg.ttl),
		ttlcache.WithDisableTouchOnHit[string, feature.Value](),
	}
	if cfg.capacity > 0 {
		topts = append(topts, ttlcache.WithCapacity[string, feature.Value](cfg.capacity))
	}

	l := &Local{items: ttlcache.New(topts...)}
	go l.items.Start()
	return l
}

// Get returns the cached value for key. Expired entries are misses.
func (l *Local) Get(ctx context.Context, key string) (feature.Value, bool, error) {
	if err := ctx.Err(); err != nil {
		return feature.Value{}, false, err
	}
	item := l.items.Get(key)
	if item == nil || item.IsExpired() {
		return feature.Value{}, false, nil
	}
	return item.Value(), true, nil
}

// Set stores value under key for the configured TTL.
func (l *Local) Set(ctx context.Context, key string, value feature.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.items.Set(key, value, ttlcache.DefaultTTL)
	return nil
}

// Delete evicts key.
func (l *Local) Delete(key string) {
	l.items.Delete(key)
}

// Len reports the number of entries, including expired ones not yet evicted.
func (l *Local) Len() int {
	return l.items.Len()
}

// Clear drops every entry.
func (l *Local) Clear() {
	l.items.DeleteAll()
}

// Close stops the background expiration loop. The cache stays usable.
func (l *Local) Close() {
	l.items.Stop()
}
