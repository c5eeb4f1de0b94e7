// Package logger builds *slog.Logger instances with functional options and
// transparent injection of values stored in context.Context.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the configured
// Format and wraps it with NewContextHandler, which runs the registered
// ContextExtractor callbacks (request id, environment) on every record.
//
// Attribute helpers in attr.go keep key names consistent across packages:
// FlagKey, Tier, Backend, Component, Error, Errors, RequestID, Duration.
//
// # Usage
//
//	import "github.com/dmitrymomot/flagkit/pkg/logger"
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "flagd"),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.DebugContext(ctx, "flag resolved",
//		logger.FlagKey("new-ui"),
//		logger.Tier("cache"),
//	)
//
// # Configuration
//
//   - WithEnvironment / WithDevelopment / WithProduction: presets per environment.
//   - WithFormat: output format. WithSource: caller location.
//   - WithLevel / WithLevelName: minimum level.
//   - WithAttr: static attributes.
//   - WithContextExtractors: attributes pulled from context.
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("reload finished", logger.Error(err))
//
// needs no nil check.
package logger
