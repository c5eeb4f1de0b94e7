package feature_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

func TestStaticSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("NewStaticSource", func(t *testing.T) {
		t.Parallel()
		src, err := feature.NewStaticSource()
		require.NoError(t, err)
		all, err := src.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		_, err = feature.NewStaticSource(feature.Record{Key: ""})
		require.ErrorIs(t, err, feature.ErrInvalidRecord)
		assert.Contains(t, err.Error(), "flag key cannot be empty")
	})

	t.Run("Get", func(t *testing.T) {
		t.Parallel()
		src, err := feature.NewStaticSource(
			feature.Record{Key: "a", Value: feature.NumberValue(0), Description: "zero"},
		)
		require.NoError(t, err)

		rec, ok, err := src.Get(ctx, "a")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, feature.NumberValue(0), rec.Value)
		assert.Equal(t, "zero", rec.Description)

		_, ok, err = src.Get(ctx, "A")
		require.NoError(t, err)
		assert.False(t, ok, "keys are case-sensitive")
	})

	t.Run("duplicate keys replace in place", func(t *testing.T) {
		t.Parallel()
		src, err := feature.NewStaticSource(
			feature.Record{Key: "a", Value: feature.NumberValue(1)},
			feature.Record{Key: "b", Value: feature.NumberValue(2)},
			feature.Record{Key: "a", Value: feature.NumberValue(3)},
		)
		require.NoError(t, err)

		all, err := src.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "a", all[0].Key)
		assert.Equal(t, feature.NumberValue(3), all[0].Value)
	})

	t.Run("GetAll returns a copy", func(t *testing.T) {
		t.Parallel()
		src, err := feature.NewStaticSource(feature.Record{Key: "a", Value: feature.BoolValue(true)})
		require.NoError(t, err)

		all, err := src.GetAll(ctx)
		require.NoError(t, err)
		all[0].Value = feature.BoolValue(false)

		rec, _, err := src.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, feature.BoolValue(true), rec.Value)
	})

	t.Run("Put and Delete", func(t *testing.T) {
		t.Parallel()
		src, err := feature.NewStaticSource(
			feature.Record{Key: "a"},
			feature.Record{Key: "b"},
			feature.Record{Key: "c"},
		)
		require.NoError(t, err)

		require.ErrorIs(t, src.Put(feature.Record{}), feature.ErrInvalidRecord)
		require.NoError(t, src.Put(feature.Record{Key: "d", Value: feature.StringValue("on")}))

		assert.True(t, src.Delete("b"))
		assert.False(t, src.Delete("b"))

		all, err := src.GetAll(ctx)
		require.NoError(t, err)
		keys := make([]string, 0, len(all))
		for _, rec := range all {
			keys = append(keys, rec.Key)
		}
		assert.Equal(t, []string{"a", "c", "d"}, keys)

		rec, ok, err := src.Get(ctx, "d")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, feature.StringValue("on"), rec.Value)
	})
}
