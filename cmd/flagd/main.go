// Command flagd serves feature flags over HTTP from a configurable data
// source, with an optional cache tier and an in-process memory tier.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/flagkit/pkg/config"
	"github.com/dmitrymomot/flagkit/pkg/environment"
	"github.com/dmitrymomot/flagkit/pkg/feature"
	"github.com/dmitrymomot/flagkit/pkg/flagapi"
	"github.com/dmitrymomot/flagkit/pkg/httpserver"
	"github.com/dmitrymomot/flagkit/pkg/logger"
	"github.com/dmitrymomot/flagkit/pkg/requestid"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "flagd:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	var hcfg httpserver.Config
	if err := config.Load(&hcfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var b backends
	defer b.close()
	if err := b.openSource(ctx, cfg, log); err != nil {
		return fmt.Errorf("open flag source: %w", err)
	}
	if err := b.openCache(ctx, cfg); err != nil {
		return fmt.Errorf("open flag cache: %w", err)
	}

	opts, err := b.resolverOptions(cfg, log)
	if err != nil {
		return err
	}
	resolver, err := feature.New(b.source, opts...)
	if err != nil {
		return err
	}

	if cfg.Preload {
		start := time.Now()
		records, err := resolver.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("preload flags: %w", err)
		}
		log.InfoContext(ctx, "flags preloaded",
			slog.Int("count", len(records)),
			logger.Duration(time.Since(start)),
		)
	}

	srv := httpserver.NewFromConfig(hcfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(resolver.FlushContext),
	)
	return srv.Run(ctx, router(cfg, hcfg, resolver, &b, log))
}

func router(cfg Config, hcfg httpserver.Config, resolver *feature.Resolver, b *backends, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(environment.Parse(cfg.Env)))

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, hcfg.ProbeTimeout, b.checks...))

	apiOpts := []flagapi.Option{flagapi.WithLogger(log)}
	if b.reloader != nil {
		apiOpts = append(apiOpts, flagapi.WithReloader(b.reloader))
	}
	r.Mount("/flags", flagapi.Router(resolver, apiOpts...))
	return r
}
