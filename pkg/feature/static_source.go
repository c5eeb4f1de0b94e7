package feature

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// StaticSource is an in-memory implementation of the DataSource interface.
// It's useful for testing, bootstrapping defaults and simple applications.
type StaticSource struct {
	records []Record
	index   map[string]int
	mu      sync.RWMutex
}

// NewStaticSource creates a data source holding the given records in order.
// A repeated key replaces the earlier record in place.
func NewStaticSource(records ...Record) (*StaticSource, error) {
	s := &StaticSource{
		records: make([]Record, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, rec := range records {
		if rec.Key == "" {
			return nil, errors.Join(ErrInvalidRecord, errors.New("flag key cannot be empty"))
		}
		s.put(rec)
	}
	return s, nil
}

// Get returns the record stored under key.
func (s *StaticSource) Get(_ context.Context, key string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[key]
	if !ok {
		return Record{}, false, nil
	}
	return s.records[i], true, nil
}

// GetAll returns a copy of every record in insertion order.
func (s *StaticSource) GetAll(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records), nil
}

// Put adds rec or replaces the record with the same key.
func (s *StaticSource) Put(rec Record) error {
	if rec.Key == "" {
		return errors.Join(ErrInvalidRecord, errors.New("flag key cannot be empty"))
	}
	s.mu.Lock()
	s.put(rec)
	s.mu.Unlock()
	return nil
}

// Delete removes key and reports whether it existed.
func (s *StaticSource) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[key]
	if !ok {
		return false
	}
	s.records = slices.Delete(s.records, i, i+1)
	delete(s.index, key)
	for j := i; j < len(s.records); j++ {
		s.index[s.records[j].Key] = j
	}
	return true
}

// Must be called with lock held.
func (s *StaticSource) put(rec Record) {
	if i, ok := s.index[rec.Key]; ok {
		s.records[i] = rec
		return
	}
	s.index[rec.Key] = len(s.records)
	s.records = append(s.records, rec)
}
