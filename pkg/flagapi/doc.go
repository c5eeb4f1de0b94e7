// Package flagapi serves a feature.Resolver over HTTP with a chi router.
//
//	r := chi.NewRouter()
//	r.Mount("/flags", flagapi.Router(resolver, flagapi.WithLogger(log)))
//
// Replies use one JSON envelope: {"data": ..., "meta": ..., "error": {...}}.
// A missing flag answers 404 with code "not_found"; adapter failures answer
// 502. When the value was resolved but writing it back to the cache failed,
// the value is still served with meta.warning set.
package flagapi
