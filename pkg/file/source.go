package file

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

// Source serves flags parsed from a JSON or YAML document.
// It implements feature.DataSource and is safe for concurrent use.
type Source struct {
	loader Loader
	format Format
	doc    atomic.Pointer[document]
}

type document struct {
	records []feature.Record
	index   map[string]int
}

// Option configures a Source.
type Option func(*Source)

// WithFormat forces the document format instead of guessing it from the loader name.
func WithFormat(f Format) Option {
	return func(s *Source) {
		s.format = f
	}
}

// New loads and parses the document once. Use Reload to pick up changes.
func New(ctx context.Context, loader Loader, opts ...Option) (*Source, error) {
	if loader == nil {
		return nil, ErrNilLoader
	}

	s := &Source{loader: loader, format: FormatOf(loader.Name())}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the document and swaps it in atomically.
// On failure the previously loaded flags stay in place.
func (s *Source) Reload(ctx context.Context) error {
	data, err := s.loader.Load(ctx)
	if err != nil {
		return errors.Join(ErrLoad, err)
	}

	records, err := parse(data, s.format)
	if err != nil {
		return err
	}

	// later duplicates win, matching the resolver snapshot
	index := make(map[string]int, len(records))
	for i, rec := range records {
		index[rec.Key] = i
	}
	s.doc.Store(&document{records: records, index: index})
	return nil
}

// Get returns the flag stored under key.
func (s *Source) Get(ctx context.Context, key string) (feature.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return feature.Record{}, false, err
	}
	doc := s.doc.Load()
	i, ok := doc.index[key]
	if !ok {
		return feature.Record{}, false, nil
	}
	return doc.records[i], true, nil
}

// GetAll returns a copy of every flag in document order.
func (s *Source) GetAll(ctx context.Context) ([]feature.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.doc.Load().records), nil
}

// Len reports the number of records in the loaded document.
func (s *Source) Len() int {
	return len(s.doc.Load().records)
}
