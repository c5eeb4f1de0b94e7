// Package pg stores feature flags in PostgreSQL using the pgx/v5 driver.
//
// It bundles the pieces a flag service needs around a single table:
//
//   - Config, populated from PG_* environment variables via
//     github.com/caarlos0/env.
//   - Connect, which opens a *pgxpool.Pool and retries with a growing delay
//     until the database answers a ping.
//   - Migrate, which applies the embedded goose migrations that create the
//     features table. MigrationsPath swaps in a directory on disk instead.
//   - Source, a feature.DataSource reading one row per flag. Upsert and Delete
//     let tooling manage rows through the same table name.
//   - Healthcheck, for readiness probes.
//
// # Schema
//
//	CREATE TABLE features (
//	    key         TEXT PRIMARY KEY,
//	    value       JSONB,
//	    description TEXT,
//	    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//
// value holds a JSON scalar. SQL NULL and JSON null both read as a null flag
// value; arrays and objects are rejected with feature.ErrInvalidValue.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
//	source, err := pg.NewSource(pool, pg.WithTable(cfg.Table))
//	if err != nil {
//		return err
//	}
//	resolver, err := feature.New(source)
//
// Every helper returns sentinel errors joined with the underlying cause, so
// errors.Is works for both.
package pg
