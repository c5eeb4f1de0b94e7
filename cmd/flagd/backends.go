package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/flagkit/pkg/cache"
	"github.com/dmitrymomot/flagkit/pkg/config"
	"github.com/dmitrymomot/flagkit/pkg/feature"
	"github.com/dmitrymomot/flagkit/pkg/file"
	"github.com/dmitrymomot/flagkit/pkg/flagapi"
	"github.com/dmitrymomot/flagkit/pkg/httpserver"
	"github.com/dmitrymomot/flagkit/pkg/logger"
	"github.com/dmitrymomot/flagkit/pkg/memcache"
	"github.com/dmitrymomot/flagkit/pkg/mongo"
	"github.com/dmitrymomot/flagkit/pkg/pg"
	"github.com/dmitrymomot/flagkit/pkg/redis"
)

var (
	ErrUnknownSource = errors.New("unknown flag source")
	ErrUnknownCache  = errors.New("unknown flag cache")
	ErrUnknownMemory = errors.New("unknown memory tier")
)

// backends collects what the chosen adapters need at runtime and on shutdown.
type backends struct {
	source   feature.DataSource
	reloader flagapi.Reloader
	cache    feature.Cache
	checks   []httpserver.Check
	closers  []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func (b *backends) openSource(ctx context.Context, cfg Config, log *slog.Logger) error {
	log = log.With(logger.Backend(cfg.Source))

	switch cfg.Source {
	case "file":
		var opts []file.Option
		if cfg.Format != "" {
			opts = append(opts, file.WithFormat(file.Format(cfg.Format)))
		}
		src, err := file.New(ctx, file.LocalFile(cfg.File), opts...)
		if err != nil {
			return err
		}
		b.source, b.reloader = src, src
		log.InfoContext(ctx, "flag document loaded", "path", cfg.File, "count", src.Len())

	case "s3":
		var s3cfg file.S3Config
		if err := config.Load(&s3cfg); err != nil {
			return err
		}
		client, err := file.NewS3Client(ctx, s3cfg)
		if err != nil {
			return err
		}
		var opts []file.Option
		if cfg.Format != "" {
			opts = append(opts, file.WithFormat(file.Format(cfg.Format)))
		}
		src, err := file.New(ctx, file.S3Object(client, s3cfg.Bucket, s3cfg.Key), opts...)
		if err != nil {
			return err
		}
		b.source, b.reloader = src, src
		log.InfoContext(ctx, "flag document loaded", "bucket", s3cfg.Bucket, "key", s3cfg.Key, "count", src.Len())

	case "mongo":
		var mcfg mongo.Config
		if err := config.Load(&mcfg); err != nil {
			return err
		}
		db, err := mongo.NewWithDatabase(ctx, mcfg, "")
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func() { _ = db.Client().Disconnect(context.Background()) })
		coll := mcfg.Collection
		if coll == "" {
			coll = mongo.DefaultCollection
		}
		b.source = mongo.NewSource(db.Collection(coll))
		b.checks = append(b.checks, httpserver.Check{Name: "mongo", Probe: mongo.Healthcheck(db.Client())})

	case "postgres":
		var pcfg pg.Config
		if err := config.Load(&pcfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, pcfg)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, pool.Close)
		if cfg.Migrate {
			if err := pg.Migrate(ctx, pool, pcfg, log); err != nil {
				return err
			}
		}
		src, err := pg.NewSource(pool, pg.WithTable(pcfg.Table))
		if err != nil {
			return err
		}
		b.source = src
		b.checks = append(b.checks, httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(pool)})

	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
	return nil
}

func (b *backends) openCache(ctx context.Context, cfg Config) error {
	switch cfg.Cache {
	case "", "none":

	case "local":
		local := cache.NewLocal(cache.WithTTL(cfg.LocalCacheTTL), cache.WithCapacity(cfg.LocalCacheSize))
		b.closers = append(b.closers, local.Close)
		b.cache = local

	case "redis":
		var rcfg redis.Config
		if err := config.Load(&rcfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.cache = redis.NewCache(client, redis.WithTTL(rcfg.CacheTTL), redis.WithKeyPrefix(rcfg.KeyPrefix))
		b.checks = append(b.checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})

	case "memcache":
		var mcfg memcache.Config
		if err := config.Load(&mcfg); err != nil {
			return err
		}
		mc, err := memcache.Connect(mcfg)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, mc.Close)
		client := memcache.Wrap(mc)
		b.cache = memcache.NewCache(client, memcache.WithTTL(mcfg.CacheTTL), memcache.WithKeyPrefix(mcfg.KeyPrefix))
		b.checks = append(b.checks, httpserver.Check{Name: "memcache", Probe: memcache.Healthcheck(client)})

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCache, cfg.Cache)
	}
	return nil
}

// resolverOptions maps Config onto feature.Resolver options.
func (b *backends) resolverOptions(cfg Config, log *slog.Logger) ([]feature.Option, error) {
	opts := []feature.Option{feature.WithLogger(log)}
	if b.cache != nil {
		opts = append(opts, feature.WithCache(b.cache))
		if cfg.AsyncCacheWrite {
			opts = append(opts, feature.WithAsyncCacheWrite())
		}
	}

	switch cfg.Memory {
	case "", "snapshot":
	case "ttl":
		mem, err := feature.NewMemory(cfg.MemoryTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, feature.WithMemory(mem))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMemory, cfg.Memory)
	}
	return opts, nil
}
