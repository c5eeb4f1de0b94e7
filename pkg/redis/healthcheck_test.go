package redis_test

import (
	"context"
	"errors"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/redis"
)

type pingFunc func() (string, error)

func (f pingFunc) Ping(context.Context) *goredis.StatusCmd {
	reply, err := f()
	return goredis.NewStatusResult(reply, err)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("pong", func(t *testing.T) {
		t.Parallel()
		check := redis.Healthcheck(pingFunc(func() (string, error) { return "PONG", nil }))
		require.NoError(t, check(context.Background()))
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection refused")
		check := redis.Healthcheck(pingFunc(func() (string, error) { return "", boom }))
		err := check(context.Background())
		assert.ErrorIs(t, err, redis.ErrHealthcheckFailed)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("unexpected reply", func(t *testing.T) {
		t.Parallel()
		check := redis.Healthcheck(pingFunc(func() (string, error) { return "LOADING", nil }))
		err := check(context.Background())
		require.ErrorIs(t, err, redis.ErrHealthcheckFailed)
		assert.Contains(t, err.Error(), "LOADING")
	})
}
