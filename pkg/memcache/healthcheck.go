package memcache

import (
	"context"
	"errors"

	"github.com/grafana/gomemcache/memcache"
)

const healthcheckKey = "flagkit:healthcheck"

// Healthcheck reads a sentinel key from memcached. A cache miss still proves the server answered.
func Healthcheck(client Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if _, err := client.Get(healthcheckKey); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
