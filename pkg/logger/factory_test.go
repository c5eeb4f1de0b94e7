package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))
	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Info("flag resolved", logger.FlagKey("new-ui"), logger.Tier("data"))
	entry := decode(t, buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "flag resolved", entry["msg"])
	assert.Equal(t, "new-ui", entry["flag_key"])
	assert.Equal(t, "data", entry["tier"])
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText)).Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("region", "eu"))).Info("msg")
		assert.Equal(t, "eu", decode(t, buf)["region"])
	})

	t.Run("source", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithSource()).Info("msg")
		assert.Contains(t, decode(t, buf), slog.SourceKey)
	})

	t.Run("level name", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithLevelName("warn"),
			logger.WithLevelName("nonsense"),
		)
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("unknown format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.WithFormat("xml") })
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("production aliases use JSON at info", func(t *testing.T) {
		t.Parallel()
		for _, env := range []string{"production", "prod"} {
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithEnvironment(env, "flagd"), logger.WithOutput(buf))
			log.Debug("hidden")
			log.Info("shown")
			entry := decode(t, buf)
			assert.Equal(t, "shown", entry["msg"], env)
			assert.Equal(t, "production", entry["env"], env)
			assert.Equal(t, "flagd", entry["service"], env)
		}
	})

	t.Run("unknown falls back to development", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("local", "flagd"), logger.WithOutput(buf))
		log.Debug("msg")
		assert.Contains(t, buf.String(), "env=development")
		assert.Contains(t, buf.String(), "level=DEBUG")
	})

	t.Run("presets", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithProduction("flagd"), logger.WithOutput(buf)).Info("msg")
		assert.Equal(t, "production", decode(t, buf)["env"])

		buf.Reset()
		logger.New(logger.WithDevelopment("flagd"), logger.WithOutput(buf)).Debug("msg")
		assert.Contains(t, buf.String(), "service=flagd")
	})

	t.Run("later level option wins", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment("development", "flagd"),
			logger.WithLevelName("error"),
			logger.WithOutput(buf),
		)
		log.Warn("dropped")
		assert.Empty(t, buf.String())
	})
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.InfoContext(context.Background(), "default")
	assert.Equal(t, "default", decode(t, buf)["msg"])
}
