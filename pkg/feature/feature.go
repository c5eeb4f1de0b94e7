package feature

import (
	"context"
	"fmt"
)

// Record is a flag as stored by a data source.
type Record struct {
	Key         string `json:"key" yaml:"key"`
	Value       Value  `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Tier names a lookup layer of the Resolver.
type Tier uint8

const (
	TierMemory Tier = iota + 1
	TierCache
	TierData
)

func (t Tier) String() string {
	switch t {
	case TierMemory:
		return "memory"
	case TierCache:
		return "cache"
	case TierData:
		return "data"
	default:
		return "unknown"
	}
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "memory":
		*t = TierMemory
	case "cache":
		*t = TierCache
	case "data":
		*t = TierData
	default:
		return fmt.Errorf("unknown tier %q", text)
	}
	return nil
}

// Resolved is the answer to a single flag query.
// Origin is the tier that supplied the value, not every tier consulted.
type Resolved struct {
	Key         string `json:"key"`
	Value       Value  `json:"value"`
	Description string `json:"description,omitempty"`
	Origin      Tier   `json:"origin"`
}

// DataSource is the durable store of flags.
type DataSource interface {
	// Get returns the record for key. A missing key is (Record{}, false, nil).
	Get(ctx context.Context, key string) (Record, bool, error)

	// GetAll returns every record in source order.
	GetAll(ctx context.Context) ([]Record, error)
}

// Cache is an external cache of flag values.
// Expiry is the adapter's concern and is configured on construction.
type Cache interface {
	// Get returns the cached value for key. A missing key is (Value{}, false, nil).
	Get(ctx context.Context, key string) (Value, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key string, value Value) error
}

// CacheFunc adapts a pair of functions to the Cache interface.
type CacheFunc struct {
	GetFunc func(ctx context.Context, key string) (Value, bool, error)
	SetFunc func(ctx context.Context, key string, value Value) error
}

func (c CacheFunc) Get(ctx context.Context, key string) (Value, bool, error) {
	return c.GetFunc(ctx, key)
}

func (c CacheFunc) Set(ctx context.Context, key string, value Value) error {
	return c.SetFunc(ctx, key, value)
}
