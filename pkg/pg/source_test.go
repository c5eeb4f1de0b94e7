package pg_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/feature"
	"github.com/dmitrymomot/flagkit/pkg/pg"
)

type row struct {
	key  string
	raw  []byte
	desc pgtype.Text
}

func scanInto(r row, dest []any) error {
	if len(dest) != 3 {
		return errors.New("unexpected destination count")
	}
	*(dest[0].(*string)) = r.key
	*(dest[1].(*[]byte)) = r.raw
	*(dest[2].(*pgtype.Text)) = r.desc
	return nil
}

type fakeRow struct {
	r   row
	err error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	return scanInto(f.r, dest)
}

type fakeRows struct {
	rows   []row
	pos    int
	err    error
	closed bool
}

func (f *fakeRows) Close()                                       { f.closed = true }
func (f *fakeRows) Err() error                                   { return f.err }
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.rows) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	return scanInto(f.rows[f.pos-1], dest)
}

type fakeDB struct {
	rows     map[string]row
	order    []string
	queryErr error
	iterErr  error
	execErr  error

	queries []string
	execs   [][]any
	last    *fakeRows
}

func newFakeDB(rows ...row) *fakeDB {
	db := &fakeDB{rows: map[string]row{}}
	for _, r := range rows {
		db.rows[r.key] = r
		db.order = append(db.order, r.key)
	}
	return db
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	if f.queryErr != nil {
		return fakeRow{err: f.queryErr}
	}
	r, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{r: r}
}

func (f *fakeDB) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	rs := &fakeRows{err: f.iterErr}
	for _, k := range f.order {
		rs.rows = append(rs.rows, f.rows[k])
	}
	f.last = rs
	return rs, nil
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	f.execs = append(f.execs, args)
	if strings.HasPrefix(sql, "DELETE") {
		key := args[0].(string)
		if _, ok := f.rows[key]; ok {
			delete(f.rows, key)
			return pgconn.NewCommandTag("DELETE 1"), nil
		}
		return pgconn.NewCommandTag("DELETE 0"), nil
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func text(s string) pgtype.Text { return pgtype.Text{String: s, Valid: true} }

func TestNewSource_TableName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"features", "config.features", "_flags2"} {
		_, err := pg.NewSource(newFakeDB(), pg.WithTable(name))
		assert.NoError(t, err, name)
	}
	for _, name := range []string{"", "features; DROP TABLE x", "1flags", "a.b.c", `"quoted"`} {
		_, err := pg.NewSource(newFakeDB(), pg.WithTable(name))
		assert.ErrorIs(t, err, pg.ErrInvalidTableName, name)
	}
}

func TestSource_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newFakeDB(
		row{key: "beta", raw: []byte(`true`), desc: text("beta access")},
		row{key: "limit", raw: []byte(`42`)},
		row{key: "mode", raw: []byte(`"on"`)},
		row{key: "json-null", raw: []byte(`null`)},
		row{key: "sql-null"},
		row{key: "object", raw: []byte(`{"a":1}`)},
	)
	src, err := pg.NewSource(db, pg.WithTable("flags"))
	require.NoError(t, err)

	cases := []struct {
		key  string
		want feature.Value
	}{
		{"beta", feature.BoolValue(true)},
		{"limit", feature.NumberValue(42)},
		{"mode", feature.StringValue("on")},
		{"json-null", feature.NullValue()},
		{"sql-null", feature.NullValue()},
	}
	for _, tc := range cases {
		rec, ok, err := src.Get(ctx, tc.key)
		require.NoError(t, err, tc.key)
		require.True(t, ok, tc.key)
		assert.Equal(t, tc.want, rec.Value, tc.key)
	}

	rec, _, _ := src.Get(ctx, "beta")
	assert.Equal(t, "beta access", rec.Description)

	_, ok, err := src.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = src.Get(ctx, "object")
	assert.ErrorIs(t, err, feature.ErrInvalidValue)
	assert.False(t, ok)

	assert.Contains(t, db.queries[0], "FROM flags WHERE key = $1")
}

func TestSource_GetError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	db := newFakeDB()
	db.queryErr = boom
	src, err := pg.NewSource(db)
	require.NoError(t, err)

	_, ok, err := src.Get(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)

	_, err = src.GetAll(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSource_GetAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newFakeDB(
		row{key: "a", raw: []byte(`1`)},
		row{key: "b", raw: []byte(`"no"`), desc: text("b")},
	)
	src, err := pg.NewSource(db)
	require.NoError(t, err)

	recs, err := src.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []feature.Record{
		{Key: "a", Value: feature.NumberValue(1)},
		{Key: "b", Value: feature.StringValue("no"), Description: "b"},
	}, recs)
	assert.True(t, db.last.closed)
	assert.Contains(t, db.queries[0], "FROM features ORDER BY key")

	iterErr := errors.New("canceling statement")
	db.iterErr = iterErr
	_, err = src.GetAll(ctx)
	assert.ErrorIs(t, err, iterErr)
}

func TestSource_UpsertDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newFakeDB(row{key: "old", raw: []byte(`false`)})
	src, err := pg.NewSource(db)
	require.NoError(t, err)

	require.NoError(t, src.Upsert(ctx, feature.Record{Key: "new", Value: feature.StringValue("yes"), Description: "d"}))
	require.Len(t, db.execs, 1)
	assert.Equal(t, "new", db.execs[0][0])
	assert.Equal(t, []byte(`"yes"`), db.execs[0][1])
	assert.Equal(t, text("d"), db.execs[0][2])

	require.NoError(t, src.Upsert(ctx, feature.Record{Key: "nodesc", Value: feature.NullValue()}))
	assert.Equal(t, pgtype.Text{}, db.execs[1][2])

	err = src.Upsert(ctx, feature.Record{Value: feature.BoolValue(true)})
	assert.ErrorIs(t, err, feature.ErrInvalidRecord)

	deleted, err := src.Delete(ctx, "old")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = src.Delete(ctx, "old")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	assert.NoError(t, pg.Healthcheck(pingFunc(func(context.Context) error { return nil }))(context.Background()))

	err := pg.Healthcheck(pingFunc(func(context.Context) error { return errors.New("down") }))(context.Background())
	assert.ErrorIs(t, err, pg.ErrHealthcheckFailed)
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestConnect_Errors(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}
