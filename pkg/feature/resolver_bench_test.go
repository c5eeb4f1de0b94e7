package feature_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

func BenchmarkResolver_Get(b *testing.B) {
	records := make([]feature.Record, 100)
	for i := range records {
		records[i] = feature.Record{Key: fmt.Sprintf("feature-%d", i), Value: feature.BoolValue(i%2 == 0)}
	}
	src, err := feature.NewStaticSource(records...)
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()

	b.Run("snapshot", func(b *testing.B) {
		r, _ := feature.New(src)
		if _, err := r.LoadAll(ctx); err != nil {
			b.Fatal(err)
		}
		b.ResetTimer()
		for b.Loop() {
			_, _, _ = r.Get(ctx, "feature-50")
		}
	})

	b.Run("cache", func(b *testing.B) {
		cache := newMapCache()
		cache.values["feature-50"] = feature.BoolValue(true)
		r, _ := feature.New(src, feature.WithCache(cache))
		b.ResetTimer()
		for b.Loop() {
			_, _, _ = r.Get(ctx, "feature-50")
		}
	})

	b.Run("data", func(b *testing.B) {
		r, _ := feature.New(src)
		b.ResetTimer()
		for b.Loop() {
			_, _, _ = r.Get(ctx, "feature-50")
		}
	})

	b.Run("miss", func(b *testing.B) {
		r, _ := feature.New(src)
		b.ResetTimer()
		for b.Loop() {
			_, _, _ = r.Get(ctx, "missing")
		}
	})
}

func BenchmarkResolver_ConcurrentSnapshot(b *testing.B) {
	src, err := feature.NewStaticSource(
		feature.Record{Key: "concurrent-1", Value: feature.NumberValue(1)},
		feature.Record{Key: "concurrent-2", Value: feature.StringValue("off")},
		feature.Record{Key: "concurrent-3", Value: feature.BoolValue(true)},
	)
	if err != nil {
		b.Fatal(err)
	}
	r, _ := feature.New(src)
	ctx := context.Background()
	if _, err := r.LoadAll(ctx); err != nil {
		b.Fatal(err)
	}

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		keys := []string{"concurrent-1", "concurrent-2", "concurrent-3"}
		for pb.Next() {
			_, _ = r.IsOn(ctx, keys[i%len(keys)])
			i++
		}
	})
}
