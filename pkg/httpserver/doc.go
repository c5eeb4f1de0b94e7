// Package httpserver runs the flagd HTTP listener with graceful shutdown and
// health probes.
//
// Server wraps net/http: Run serves until its context is cancelled or
// Shutdown is called, then drains connections within the shutdown timeout.
// Options set the address, timeouts, logger and lifecycle hooks; NewFromConfig
// builds the same options from an env-parsed Config.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(resolver.FlushContext),
//	)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// LivenessHandler and ReadinessHandler back the /health/live and
// /health/ready endpoints. Readiness runs each named Check, typically the
// Healthcheck closures exported by the pg, mongo, redis and memcache packages.
//
// Errors from Run are joined with ErrStart and errors from Shutdown with
// ErrShutdown, so callers can match them with errors.Is.
package httpserver
