package pg

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/dmitrymomot/flagkit/pkg/logger"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrate brings the flag schema up to date. It applies the embedded
// migrations, or the ones in cfg.MigrationsPath when that is set, and records
// progress in cfg.MigrationsTable.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	fsys, err := migrationsFS(cfg.MigrationsPath)
	if err != nil {
		return err
	}

	table := cfg.MigrationsTable
	if table == "" {
		table = "schema_migrations"
	}
	store, err := database.NewStore(database.DialectPostgres, table)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	// goose runs on database/sql; the bridge borrows connections from the pool.
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider("", db, fsys, goose.WithStore(store))
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	for _, res := range results {
		log.InfoContext(ctx, "migration applied",
			slog.Int64("version", res.Source.Version),
			logger.Duration(res.Duration),
		)
	}
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

func migrationsFS(path string) (fs.FS, error) {
	if path == "" {
		return fs.Sub(embeddedMigrations, "migrations")
	}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, errors.Join(ErrMigrationsDirNotFound, err)
	case err != nil:
		return nil, errors.Join(ErrFailedToApplyMigrations, err)
	case !info.IsDir():
		return nil, errors.Join(ErrMigrationsDirNotFound, errors.New(path+" is not a directory"))
	}
	return os.DirFS(path), nil
}
