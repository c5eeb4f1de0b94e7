package feature

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/flagkit/pkg/async"
	"github.com/dmitrymomot/flagkit/pkg/logger"
)

// Resolver answers flag queries from three tiers in fixed order:
// memory, then cache, then the data source. A data-tier hit is written back to the cache.
//
// Resolver is safe for concurrent use. Tiers are never queried in parallel
// and the Resolver adds no timeouts or retries; those belong to the adapters.
type Resolver struct {
	source     DataSource
	cache      Cache
	memory     *Memory
	snap       snapshot
	log        *slog.Logger
	asyncWrite bool
	pending    async.Pending
}

// New creates a Resolver over source.
func New(source DataSource, opts ...Option) (*Resolver, error) {
	if source == nil {
		return nil, ErrNilDataSource
	}
	r := &Resolver{
		source: source,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// LoadAll fetches every flag from the data source and installs them as the memory tier,
// replacing whatever it held. On failure the previously loaded flags stay in place.
func (r *Resolver) LoadAll(ctx context.Context) ([]Record, error) {
	records, err := r.source.GetAll(ctx)
	if err != nil {
		return nil, errors.Join(ErrDataSource, err)
	}

	if r.memory != nil {
		r.memory.Replace(records)
	} else {
		r.snap.replace(slices.Clone(records))
	}

	r.log.DebugContext(ctx, "flags loaded",
		logger.Component("feature"),
		slog.Int("count", len(records)),
	)
	return records, nil
}

// Snapshot returns a copy of the flags installed by the last successful LoadAll,
// or nil before the first load.
//
// With a Memory tier it lists the tier's unexpired entries ordered by key:
// the last load plus any flags remembered by Get since then.
func (r *Resolver) Snapshot() []Record {
	if r.memory != nil {
		return r.memory.List()
	}
	return r.snap.list()
}

// Get resolves key. A key no tier knows is reported as (Resolved{}, false, nil).
//
// Adapter failures stop the lookup and are returned wrapped in ErrDataSource or ErrCache.
// A failed cache write-back returns the resolved value together with ErrCacheWrite.
func (r *Resolver) Get(ctx context.Context, key string, opts ...GetOption) (Resolved, bool, error) {
	var q getOptions
	for _, opt := range opts {
		opt(&q)
	}

	if rec, ok := r.fromMemory(key); ok {
		r.traceHit(ctx, key, TierMemory)
		return Resolved{Key: key, Value: rec.Value, Description: rec.Description, Origin: TierMemory}, true, nil
	}

	if r.cache != nil && !q.noCache {
		val, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			return Resolved{}, false, errors.Join(ErrCache, err)
		}
		if ok {
			r.remember(Record{Key: key, Value: val})
			r.traceHit(ctx, key, TierCache)
			return Resolved{Key: key, Value: val, Origin: TierCache}, true, nil
		}
	}

	rec, ok, err := r.source.Get(ctx, key)
	if err != nil {
		return Resolved{}, false, errors.Join(ErrDataSource, err)
	}
	if !ok {
		r.log.DebugContext(ctx, "flag not found", logger.FlagKey(key))
		return Resolved{}, false, nil
	}

	res := Resolved{Key: key, Value: rec.Value, Description: rec.Description, Origin: TierData}
	r.remember(Record{Key: key, Value: rec.Value, Description: rec.Description})
	r.traceHit(ctx, key, TierData)

	if err := r.populate(ctx, key, rec.Value); err != nil {
		return res, true, err
	}
	return res, true, nil
}

// Value resolves key and returns only its value.
func (r *Resolver) Value(ctx context.Context, key string, opts ...GetOption) (Value, bool, error) {
	res, ok, err := r.Get(ctx, key, opts...)
	if !ok {
		return Value{}, false, err
	}
	return res.Value, true, err
}

// IsOn resolves key and reports whether its value reads as on.
// A missing flag is not on.
func (r *Resolver) IsOn(ctx context.Context, key string, opts ...GetOption) (bool, error) {
	res, ok, err := r.Get(ctx, key, opts...)
	if !ok {
		return false, err
	}
	return IsOn(res.Value), err
}

// IsOff resolves key and reports whether its value reads as off.
// A missing flag is not off either; IsOff is not the negation of IsOn.
func (r *Resolver) IsOff(ctx context.Context, key string, opts ...GetOption) (bool, error) {
	res, ok, err := r.Get(ctx, key, opts...)
	if !ok {
		return false, err
	}
	return IsOff(res.Value), err
}

// Flush blocks until pending asynchronous cache writes finish.
func (r *Resolver) Flush() {
	r.pending.Wait()
}

// FlushContext is Flush bounded by ctx. It returns ctx.Err() if writes are
// still pending when ctx is done; they keep running in the background.
func (r *Resolver) FlushContext(ctx context.Context) error {
	return r.pending.WaitContext(ctx)
}

func (r *Resolver) fromMemory(key string) (Record, bool) {
	if r.memory != nil {
		return r.memory.Get(key)
	}
	return r.snap.lookup(key)
}

// remember stores rec in the TTL memory tier, if one is configured.
// The static snapshot only changes through LoadAll.
func (r *Resolver) remember(rec Record) {
	if r.memory != nil {
		r.memory.Set(rec.Key, rec)
	}
}

func (r *Resolver) populate(ctx context.Context, key string, value Value) error {
	if r.cache == nil {
		return nil
	}

	if !r.asyncWrite {
		if err := r.cache.Set(ctx, key, value); err != nil {
			return errors.Join(ErrCacheWrite, err)
		}
		return nil
	}

	future := async.Async(context.WithoutCancel(ctx), value, func(ctx context.Context, v Value) (struct{}, error) {
		return struct{}{}, r.cache.Set(ctx, key, v)
	})
	async.Track(&r.pending, future, func(_ struct{}, err error) {
		if err != nil {
			r.log.ErrorContext(ctx, "flag cache write-back failed",
				logger.FlagKey(key),
				logger.Error(err),
			)
		}
	})
	return nil
}

func (r *Resolver) traceHit(ctx context.Context, key string, tier Tier) {
	r.log.DebugContext(ctx, "flag resolved", logger.FlagKey(key), logger.Tier(tier.String()))
}
