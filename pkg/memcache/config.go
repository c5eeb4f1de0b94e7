package memcache

import "time"

type Config struct {
	Servers      []string      `env:"MEMCACHE_SERVERS,required" envSeparator:"," envDefault:"localhost:11211"` // Servers is a comma separated list of host:port addresses.
	Timeout      time.Duration `env:"MEMCACHE_TIMEOUT" envDefault:"500ms"`                                     // Timeout is the socket read/write timeout.
	MaxIdleConns int           `env:"MEMCACHE_MAX_IDLE_CONNS" envDefault:"2"`                                  // MaxIdleConns is the maximum number of idle connections kept per server.
	CacheTTL     time.Duration `env:"MEMCACHE_CACHE_TTL" envDefault:"1h"`                                      // CacheTTL is the expiration applied to cached flag values. Zero keeps them until evicted.
	KeyPrefix    string        `env:"MEMCACHE_KEY_PREFIX" envDefault:"flag:"`                                  // KeyPrefix is prepended to every flag key stored in memcached.
}
