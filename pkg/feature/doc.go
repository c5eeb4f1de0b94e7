// Package feature resolves feature flag values through a layered lookup.
//
// A Resolver answers every query from three tiers consulted in fixed order:
//
//  1. Memory - either a snapshot installed by LoadAll or a self-expiring Memory tier
//  2. Cache  - an optional external cache (Redis, Memcached, in-process)
//  3. Data   - the durable DataSource (document file, MongoDB, PostgreSQL)
//
// A lower tier is touched only when every tier above it missed. When the data
// source answers, the value is written back to the cache. The result carries the
// tier that supplied it in Resolved.Origin.
//
// The package is a value resolver, not a rules engine: there is no targeting,
// segmentation or percentage rollout.
//
// # Usage
//
//	import "github.com/dmitrymomot/flagkit/pkg/feature"
//
//	resolver, err := feature.New(source,
//		feature.WithCache(cache),
//		feature.WithLogger(log),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Optional: pin every flag in memory.
//	if _, err := resolver.LoadAll(ctx); err != nil {
//		// data source unavailable, old snapshot stays in place
//	}
//
//	res, ok, err := resolver.Get(ctx, "new-ui")
//	switch {
//	case err != nil:
//		// adapter failure
//	case !ok:
//		// flag does not exist anywhere
//	default:
//		fmt.Println(res.Value, res.Origin)
//	}
//
//	on, err := resolver.IsOn(ctx, "new-ui", feature.NoCache())
//
// # Memory tier
//
// By default the memory tier is the snapshot from the last successful LoadAll.
// It is authoritative: a key present in the snapshot is answered from memory even
// if the cache or data source hold a different value, until the next LoadAll.
// LoadAll swaps the whole snapshot at once, so concurrent readers observe either
// the old or the new generation.
//
// WithMemory switches to a Memory tier whose entries expire after a fixed
// lifetime. The Resolver fills it on every cache or data hit. Expired entries are
// dropped lazily when read.
//
// # Values
//
// Value holds null, a boolean, a number or a string. IsOn and IsOff classify it:
//
//	IsOn:  1, true, "1", "true", "t", "on", "y", "yes" (any case)
//	IsOff: any other number, false, any other string
//
// Null and missing flags are neither on nor off, so callers that must tell
// "unset" from "off" use Get or Value and check the found flag.
//
// # Error Handling
//
// A miss is never an error. Adapter failures are joined with ErrDataSource or
// ErrCache and returned without trying another tier:
//
//	_, _, err := resolver.Get(ctx, "beta")
//	if errors.Is(err, feature.ErrDataSource) {
//		// backing store is down
//	}
//
// A failed cache write-back returns the data-tier value together with
// ErrCacheWrite. WithAsyncCacheWrite turns the write-back into a background
// task whose failures are only logged; Flush and FlushContext wait for those tasks.
package feature
