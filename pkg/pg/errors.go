package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// Connection errors.
var (
	ErrEmptyConnectionString    = errors.New("pg: PG_CONN_URL is empty")
	ErrFailedToParseDBConfig    = errors.New("pg: cannot parse connection string")
	ErrFailedToOpenDBConnection = errors.New("pg: could not connect")
	ErrHealthcheckFailed        = errors.New("pg: healthcheck failed")
)

// Schema errors.
var (
	ErrFailedToApplyMigrations = errors.New("pg: migrations failed")
	ErrMigrationsDirNotFound   = errors.New("pg: migrations directory not found")
	ErrInvalidTableName        = errors.New("pg: invalid features table name")
)

// IsNotFoundError reports whether err means a query matched no row.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
