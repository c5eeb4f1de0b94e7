package flagapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/feature"
	"github.com/dmitrymomot/flagkit/pkg/flagapi"
)

type envelope struct {
	Data  json.RawMessage      `json:"data"`
	Meta  *flagapi.Meta        `json:"meta"`
	Error *flagapi.ErrorDetail `json:"error"`
}

func newServer(t *testing.T, r flagapi.Resolver, opts ...flagapi.Option) *httptest.Server {
	t.Helper()
	mux := chi.NewRouter()
	mux.Mount("/flags", flagapi.Router(r, opts...))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func newResolver(t *testing.T, opts ...feature.Option) (*feature.Resolver, *feature.StaticSource) {
	t.Helper()
	src, err := feature.NewStaticSource(
		feature.Record{Key: "new-ui", Value: feature.BoolValue(true), Description: "Redesigned UI"},
		feature.Record{Key: "limit", Value: feature.NumberValue(5)},
		feature.Record{Key: "unset", Value: feature.NullValue()},
	)
	require.NoError(t, err)
	r, err := feature.New(src, opts...)
	require.NoError(t, err)
	return r, src
}

type failingCache struct {
	getErr error
	setErr error
}

func (c failingCache) Get(context.Context, string) (feature.Value, bool, error) {
	return feature.Value{}, false, c.getErr
}

func (c failingCache) Set(context.Context, string, feature.Value) error { return c.setErr }

func TestGetFlag(t *testing.T) {
	t.Parallel()
	r, _ := newResolver(t)
	srv := newServer(t, r)

	code, env := do(t, http.MethodGet, srv.URL+"/flags/new-ui")
	require.Equal(t, http.StatusOK, code)

	var res feature.Resolved
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, feature.Resolved{
		Key:         "new-ui",
		Value:       feature.BoolValue(true),
		Description: "Redesigned UI",
		Origin:      feature.TierData,
	}, res)
	assert.Nil(t, env.Meta)

	code, env = do(t, http.MethodGet, srv.URL+"/flags/missing")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestGetFlag_NoCache(t *testing.T) {
	t.Parallel()
	boom := errors.New("redis down")
	r, _ := newResolver(t, feature.WithCache(failingCache{getErr: boom}))
	srv := newServer(t, r)

	code, env := do(t, http.MethodGet, srv.URL+"/flags/limit")
	assert.Equal(t, http.StatusBadGateway, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "lookup_failed", env.Error.Code)

	code, env = do(t, http.MethodGet, srv.URL+"/flags/limit?nocache=true")
	require.Equal(t, http.StatusOK, code)
	var res feature.Resolved
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, feature.NumberValue(5), res.Value)
}

func TestGetFlag_CacheWriteWarning(t *testing.T) {
	t.Parallel()
	r, _ := newResolver(t, feature.WithCache(failingCache{setErr: errors.New("read-only replica")}))
	srv := newServer(t, r)

	code, env := do(t, http.MethodGet, srv.URL+"/flags/new-ui")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, "cache write-back failed", env.Meta.Warning)
}

func TestStatus(t *testing.T) {
	t.Parallel()
	r, _ := newResolver(t)
	srv := newServer(t, r)

	cases := []struct {
		key  string
		want flagapi.Status
	}{
		{"new-ui", flagapi.Status{Key: "new-ui", On: true, Off: false}},
		{"limit", flagapi.Status{Key: "limit", On: false, Off: true}},
		{"unset", flagapi.Status{Key: "unset", On: false, Off: false}},
	}
	for _, tc := range cases {
		code, env := do(t, http.MethodGet, srv.URL+"/flags/"+tc.key+"/status")
		require.Equal(t, http.StatusOK, code, tc.key)
		var got flagapi.Status
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, tc.want, got)
	}

	code, _ := do(t, http.MethodGet, srv.URL+"/flags/missing/status")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestListAndReload(t *testing.T) {
	t.Parallel()
	r, src := newResolver(t)
	srv := newServer(t, r)

	code, env := do(t, http.MethodGet, srv.URL+"/flags")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
	require.NotNil(t, env.Meta)
	assert.Equal(t, 0, *env.Meta.Count)

	code, env = do(t, http.MethodPost, srv.URL+"/flags/reload")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, *env.Meta.Count)

	require.True(t, src.Delete("unset"))
	_, _ = do(t, http.MethodPost, srv.URL+"/flags/reload")

	code, env = do(t, http.MethodGet, srv.URL+"/flags")
	require.Equal(t, http.StatusOK, code)
	var recs []feature.Record
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	assert.Equal(t, []feature.Record{
		{Key: "new-ui", Value: feature.BoolValue(true), Description: "Redesigned UI"},
		{Key: "limit", Value: feature.NumberValue(5)},
	}, recs)
}

func TestListAndReload_MemoryTier(t *testing.T) {
	t.Parallel()
	mem, err := feature.NewMemory(time.Hour)
	require.NoError(t, err)
	r, src := newResolver(t, feature.WithMemory(mem))
	srv := newServer(t, r)

	code, env := do(t, http.MethodPost, srv.URL+"/flags/reload")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, *env.Meta.Count)

	code, env = do(t, http.MethodGet, srv.URL+"/flags")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, *env.Meta.Count)

	require.True(t, src.Delete("limit"))
	_, _ = do(t, http.MethodPost, srv.URL+"/flags/reload")

	code, env = do(t, http.MethodGet, srv.URL+"/flags")
	require.Equal(t, http.StatusOK, code)
	var recs []feature.Record
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	assert.Equal(t, []feature.Record{
		{Key: "new-ui", Value: feature.BoolValue(true), Description: "Redesigned UI"},
		{Key: "unset", Value: feature.NullValue()},
	}, recs)

	code, env = do(t, http.MethodGet, srv.URL+"/flags/limit")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Code)
}

type reloaderFunc func(context.Context) error

func (f reloaderFunc) Reload(ctx context.Context) error { return f(ctx) }

func TestReload_ReloaderError(t *testing.T) {
	t.Parallel()
	r, _ := newResolver(t)
	srv := newServer(t, r, flagapi.WithReloader(reloaderFunc(func(context.Context) error {
		return errors.New("s3: access denied")
	})))

	code, env := do(t, http.MethodPost, srv.URL+"/flags/reload")
	assert.Equal(t, http.StatusBadGateway, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "reload_failed", env.Error.Code)
	assert.Nil(t, r.Snapshot())
}
