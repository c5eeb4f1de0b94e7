// Package memcache exposes memcached as a feature flag cache.
//
// Cache implements feature.Cache on top of github.com/grafana/gomemcache.
// Values are stored as JSON under an optional key prefix with a relative
// expiration. memcache.ErrCacheMiss is reported as a miss.
//
//	mc, err := memcache.Connect(cfg)
//	if err != nil {
//		return err
//	}
//	cache := memcache.NewCache(memcache.Wrap(mc),
//		memcache.WithTTL(cfg.CacheTTL),
//		memcache.WithKeyPrefix(cfg.KeyPrefix),
//	)
//
// Flag keys containing whitespace or control characters, or longer than the
// protocol allows once prefixed, are stored as prefix + "h:" + the hex SHA-256
// of the key. A prefix memcached would refuse fails with ErrInvalidKey.
package memcache
