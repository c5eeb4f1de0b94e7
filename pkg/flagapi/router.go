package flagapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/flagkit/pkg/feature"
	"github.com/dmitrymomot/flagkit/pkg/logger"
)

// Resolver is the part of *feature.Resolver the HTTP API serves.
type Resolver interface {
	Get(ctx context.Context, key string, opts ...feature.GetOption) (feature.Resolved, bool, error)
	LoadAll(ctx context.Context) ([]feature.Record, error)
	Snapshot() []feature.Record
}

// Reloader refreshes a data source before the snapshot is reloaded,
// such as a file.Source re-reading its document.
type Reloader interface {
	Reload(ctx context.Context) error
}

type handler struct {
	resolver Resolver
	reloader Reloader
	log      *slog.Logger
}

// Option configures the router.
type Option func(*handler)

// WithLogger logs failed lookups and reloads.
func WithLogger(l *slog.Logger) Option {
	return func(h *handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithReloader runs r.Reload before every POST /reload.
func WithReloader(r Reloader) Option {
	return func(h *handler) {
		h.reloader = r
	}
}

// Router exposes a Resolver over HTTP:
//
//	GET  /               snapshot installed by the last reload
//	POST /reload         reload the snapshot from the data source
//	GET  /{key}          resolve a flag; ?nocache=true skips the cache tier
//	GET  /{key}/status   on/off reading of a flag
//
// Mount it under a prefix such as /flags.
func Router(resolver Resolver, opts ...Option) chi.Router {
	h := &handler{
		resolver: resolver,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(logger.Component("flagapi"))

	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/reload", h.reload)
	r.Get("/{key}", h.get)
	r.Get("/{key}/status", h.status)
	return r
}

func (h *handler) list(w http.ResponseWriter, _ *http.Request) {
	records := h.resolver.Snapshot()
	if records == nil {
		records = []feature.Record{}
	}
	n := len(records)
	writeJSON(w, http.StatusOK, Response{Data: records, Meta: &Meta{Count: &n}})
}

func (h *handler) reload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.reloader != nil {
		if err := h.reloader.Reload(ctx); err != nil {
			h.log.ErrorContext(ctx, "flag source reload failed", logger.Error(err))
			writeError(w, http.StatusBadGateway, "reload_failed", err.Error())
			return
		}
	}

	records, err := h.resolver.LoadAll(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "flag snapshot reload failed", logger.Error(err))
		writeError(w, http.StatusBadGateway, "reload_failed", err.Error())
		return
	}
	n := len(records)
	writeJSON(w, http.StatusOK, Response{Meta: &Meta{Count: &n}})
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	res, warning, ok := h.resolve(w, r)
	if !ok {
		return
	}
	body := Response{Data: res}
	if warning != "" {
		body.Meta = &Meta{Warning: warning}
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	res, warning, ok := h.resolve(w, r)
	if !ok {
		return
	}
	body := Response{Data: Status{
		Key: res.Key,
		On:  feature.IsOn(res.Value),
		Off: feature.IsOff(res.Value),
	}}
	if warning != "" {
		body.Meta = &Meta{Warning: warning}
	}
	writeJSON(w, http.StatusOK, body)
}

// resolve looks the flag up and writes the error reply itself when there is nothing to serve.
// A failed cache write-back still serves the value, with a warning.
func (h *handler) resolve(w http.ResponseWriter, r *http.Request) (feature.Resolved, string, bool) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")

	var opts []feature.GetOption
	if noCache, _ := strconv.ParseBool(r.URL.Query().Get("nocache")); noCache {
		opts = append(opts, feature.NoCache())
	}

	res, found, err := h.resolver.Get(ctx, key, opts...)
	switch {
	case found && err != nil && errors.Is(err, feature.ErrCacheWrite):
		h.log.WarnContext(ctx, "flag served without cache write-back", logger.FlagKey(key), logger.Error(err))
		return res, "cache write-back failed", true
	case err != nil:
		h.log.ErrorContext(ctx, "flag lookup failed", logger.FlagKey(key), logger.Error(err))
		writeError(w, http.StatusBadGateway, "lookup_failed", err.Error())
		return feature.Resolved{}, "", false
	case !found:
		writeError(w, http.StatusNotFound, "not_found", "flag "+strconv.Quote(key)+" not found")
		return feature.Resolved{}, "", false
	}
	return res, "", true
}
