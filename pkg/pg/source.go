package pg

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

// DefaultTable is the table flags are read from when no WithTable option is given.
const DefaultTable = "features"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Querier is the subset of *pgxpool.Pool and pgx.Tx the flag source needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Source reads flags from a PostgreSQL table with columns
// key text, value jsonb and description text. It implements feature.DataSource.
type Source struct {
	db Querier

	getQuery    string
	allQuery    string
	upsertQuery string
	deleteQuery string
}

// SourceOption configures a Source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	table string
}

// WithTable reads flags from table instead of DefaultTable.
// A schema-qualified name such as "config.features" is accepted.
func WithTable(table string) SourceOption {
	return func(c *sourceConfig) {
		c.table = table
	}
}

// NewSource creates a flag source over db.
func NewSource(db Querier, opts ...SourceOption) (*Source, error) {
	cfg := sourceConfig{table: DefaultTable}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !tableNamePattern.MatchString(cfg.table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, cfg.table)
	}

	return &Source{
		db:          db,
		getQuery:    fmt.Sprintf(`SELECT key, value, description FROM %s WHERE key = $1`, cfg.table),
		allQuery:    fmt.Sprintf(`SELECT key, value, description FROM %s ORDER BY key`, cfg.table),
		upsertQuery: fmt.Sprintf(`INSERT INTO %s (key, value, description) VALUES ($1, $2, $3) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, description = EXCLUDED.description, updated_at = now()`, cfg.table),
		deleteQuery: fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, cfg.table),
	}, nil
}

// Get loads the flag stored under key. A missing row is a miss.
func (s *Source) Get(ctx context.Context, key string) (feature.Record, bool, error) {
	rec, err := scanRecord(s.db.QueryRow(ctx, s.getQuery, key))
	if IsNotFoundError(err) {
		return feature.Record{}, false, nil
	}
	if err != nil {
		return feature.Record{}, false, err
	}
	return rec, true, nil
}

// GetAll loads every flag ordered by key.
func (s *Source) GetAll(ctx context.Context) ([]feature.Record, error) {
	rows, err := s.db.Query(ctx, s.allQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []feature.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert inserts rec or replaces the stored value and description of its key.
func (s *Source) Upsert(ctx context.Context, rec feature.Record) error {
	if rec.Key == "" {
		return errors.Join(feature.ErrInvalidRecord, errors.New("flag key cannot be empty"))
	}
	raw, err := rec.Value.MarshalJSON()
	if err != nil {
		return err
	}
	desc := pgtype.Text{String: rec.Description, Valid: rec.Description != ""}
	_, err = s.db.Exec(ctx, s.upsertQuery, rec.Key, raw, desc)
	return err
}

// Delete removes key and reports whether a row was deleted.
func (s *Source) Delete(ctx context.Context, key string) (bool, error) {
	tag, err := s.db.Exec(ctx, s.deleteQuery, key)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanRecord(row pgx.Row) (feature.Record, error) {
	var (
		key  string
		raw  []byte
		desc pgtype.Text
	)
	if err := row.Scan(&key, &raw, &desc); err != nil {
		return feature.Record{}, err
	}

	value := feature.NullValue()
	if raw != nil {
		if err := value.UnmarshalJSON(raw); err != nil {
			return feature.Record{}, fmt.Errorf("flag %q: %w", key, err)
		}
	}
	return feature.Record{Key: key, Value: value, Description: desc.String}, nil
}
