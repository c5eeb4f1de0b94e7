// Package redis connects to Redis and exposes it as a feature flag cache.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration.
//   - Cache, a feature.Cache storing flag values as JSON documents under an
//     optional key prefix with a configurable expiration.
//   - Healthcheck, to plug Redis into readiness probes.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	resolver, err := feature.New(source,
//		feature.WithCache(redis.NewCache(client,
//			redis.WithTTL(cfg.CacheTTL),
//			redis.WithKeyPrefix(cfg.KeyPrefix),
//		)),
//	)
//
// A key missing from Redis (redis.Nil) is reported as a miss. A stored value
// that cannot be decoded is reported as ErrCorruptValue.
package redis
