package main

import "time"

// Config selects the tiers flagd wires together. Backend connection settings
// live in each backend package's own Config and are parsed only when chosen.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Service  string `env:"SERVICE_NAME" envDefault:"flagd"`
	LogLevel string `env:"LOG_LEVEL"`

	Source string `env:"FLAG_SOURCE" envDefault:"file"` // file, s3, mongo or postgres
	File   string `env:"FLAG_FILE" envDefault:"features.json"`
	Format string `env:"FLAG_FORMAT"` // json or yaml; empty guesses from the file name

	Cache           string        `env:"FLAG_CACHE" envDefault:"none"` // none, local, redis or memcache
	LocalCacheTTL   time.Duration `env:"FLAG_LOCAL_CACHE_TTL" envDefault:"5m"`
	LocalCacheSize  uint64        `env:"FLAG_LOCAL_CACHE_SIZE" envDefault:"10000"`
	AsyncCacheWrite bool          `env:"FLAG_ASYNC_CACHE_WRITE" envDefault:"false"`

	Memory    string        `env:"FLAG_MEMORY" envDefault:"snapshot"` // snapshot or ttl
	MemoryTTL time.Duration `env:"FLAG_MEMORY_TTL" envDefault:"30s"`
	Preload   bool          `env:"FLAG_PRELOAD" envDefault:"true"`

	Migrate bool `env:"PG_AUTO_MIGRATE" envDefault:"true"`
}
