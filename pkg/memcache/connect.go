package memcache

import (
	"github.com/grafana/gomemcache/memcache"
)

// Connect builds a memcached client for the configured servers.
// The client dials lazily, so use Healthcheck to verify the servers are reachable.
func Connect(cfg Config) (*memcache.Client, error) {
	if len(cfg.Servers) == 0 {
		return nil, ErrNoServers
	}

	client := memcache.New(cfg.Servers...)
	if cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}
	if cfg.MaxIdleConns > 0 {
		client.MaxIdleConns = cfg.MaxIdleConns
	}
	return client, nil
}
