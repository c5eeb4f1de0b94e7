package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()
		f := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})
		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, res)
		assert.True(t, f.IsComplete())
	})

	t.Run("propagates error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		f := async.Async(context.Background(), "k", func(context.Context, string) (struct{}, error) {
			return struct{}{}, boom
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context skips the call", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var called atomic.Bool
		f := async.Async(ctx, 0, func(context.Context, int) (int, error) {
			called.Store(true)
			return 1, nil
		})
		res, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, res)
		assert.False(t, called.Load())
	})

	t.Run("IsComplete and Done before finishing", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			<-release
			return 7, nil
		})
		assert.False(t, f.IsComplete())
		close(release)

		select {
		case <-f.Done():
		case <-time.After(time.Second):
			t.Fatal("future did not complete")
		}
		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 7, res)
	})
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Async(context.Background(), "new-ui", func(_ context.Context, key string) (string, error) {
		<-release
		return key, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	res, err := f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, res)

	close(release)
	res, err = f.AwaitContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-ui", res)
}

func TestPending(t *testing.T) {
	t.Parallel()

	t.Run("waits for callbacks", func(t *testing.T) {
		t.Parallel()
		var (
			p     async.Pending
			calls atomic.Int32
			errs  atomic.Int32
		)
		boom := errors.New("cache down")
		for i := range 5 {
			f := async.Async(context.Background(), i, func(_ context.Context, n int) (int, error) {
				if n%2 == 0 {
					return 0, boom
				}
				return n, nil
			})
			async.Track(&p, f, func(_ int, err error) {
				calls.Add(1)
				if errors.Is(err, boom) {
					errs.Add(1)
				}
			})
		}
		p.Wait()
		assert.Equal(t, int32(5), calls.Load())
		assert.Equal(t, int32(3), errs.Load())
	})

	t.Run("nil callback", func(t *testing.T) {
		t.Parallel()
		var p async.Pending
		async.Track(&p, async.Async(context.Background(), 1, func(_ context.Context, n int) (int, error) {
			return n, nil
		}), nil)
		require.NoError(t, p.WaitContext(context.Background()))
	})

	t.Run("wait bounded by context", func(t *testing.T) {
		t.Parallel()
		var p async.Pending
		release := make(chan struct{})
		async.Track(&p, async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			<-release
			return 0, nil
		}), nil)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, p.WaitContext(ctx), context.DeadlineExceeded)

		close(release)
		assert.NoError(t, p.WaitContext(context.Background()))
	})
}
