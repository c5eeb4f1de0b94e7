// Package async runs computations in their own goroutines and tracks them
// until they finish.
//
// Async starts a computation and returns a Future. Track attaches a callback
// to a Future and registers it with a Pending counter, so a shutdown path can
// wait for every outstanding computation with Wait or WaitContext.
//
// The feature Resolver uses it for fire-and-forget cache write-back:
//
//	future := async.Async(context.WithoutCancel(ctx), value, func(ctx context.Context, v feature.Value) (struct{}, error) {
//		return struct{}{}, cache.Set(ctx, key, v)
//	})
//	async.Track(&pending, future, func(_ struct{}, err error) {
//		if err != nil {
//			log.ErrorContext(ctx, "write-back failed", logger.Error(err))
//		}
//	})
//
// A context that is already cancelled completes the Future with ctx.Err()
// without calling the function.
package async
