// Package cache provides an in-process feature flag cache.
//
// Local implements feature.Cache on top of github.com/jellydator/ttlcache.
// It suits single-instance deployments or tests that need a real cache tier
// without Redis or memcached:
//
//	local := cache.NewLocal(cache.WithTTL(time.Minute), cache.WithCapacity(10_000))
//	defer local.Close()
//
//	resolver, err := feature.New(source, feature.WithCache(local))
//
// Entries expire a fixed TTL after they were written; reads never extend
// them. When a capacity is set, the least recently used entry is evicted to
// make room.
package cache
