package async

import (
	"context"
	"sync"
)

// Future holds the outcome of a computation running in its own goroutine.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Async runs fn(ctx, param) in a new goroutine. If ctx is already done, fn is
// not called and the Future completes with ctx.Err().
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx, param)
	}()
	return f
}

// Await blocks until the computation finishes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext is Await bounded by ctx. When ctx ends first it returns
// ctx.Err() and the computation keeps running.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done is closed once the computation has finished.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports without blocking whether the computation has finished.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Pending counts futures handed to Track until their callbacks return.
// The zero value is ready to use.
type Pending struct {
	wg sync.WaitGroup
}

// Track calls onDone with the outcome of f once it completes and keeps p
// busy until onDone returns. onDone may be nil.
func Track[U any](p *Pending, f *Future[U], onDone func(U, error)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		res, err := f.Await()
		if onDone != nil {
			onDone(res, err)
		}
	}()
}

// Wait blocks until every tracked future has completed.
func (p *Pending) Wait() {
	p.wg.Wait()
}

// WaitContext is Wait bounded by ctx.
func (p *Pending) WaitContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
