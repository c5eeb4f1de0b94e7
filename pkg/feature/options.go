package feature

import "log/slog"

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache sets the cache tier consulted between memory and the data source.
func WithCache(c Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

// WithMemory replaces the LoadAll snapshot with a self-expiring memory tier.
// The Resolver fills it after every cache or data hit.
func WithMemory(m *Memory) Option {
	return func(r *Resolver) { r.memory = m }
}

// WithLogger sets the logger. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithAsyncCacheWrite makes cache population after a data-tier hit
// fire-and-forget. Write failures are logged instead of returned.
func WithAsyncCacheWrite() Option {
	return func(r *Resolver) { r.asyncWrite = true }
}

// GetOption tunes a single query.
type GetOption func(*getOptions)

type getOptions struct {
	noCache bool
}

// NoCache skips the cache tier for this query. Memory is still consulted
// first and the cache is still populated on a data-tier hit.
func NoCache() GetOption {
	return func(o *getOptions) { o.noCache = true }
}
