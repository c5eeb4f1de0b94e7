package feature

import (
	"slices"
	"sync/atomic"
)

// snapshot holds the fully loaded flag set. The slice behind the pointer is
// never mutated after it is stored, so readers need no lock.
type snapshot struct {
	records atomic.Pointer[[]Record]
}

// replace installs records as the new generation.
func (s *snapshot) replace(records []Record) {
	s.records.Store(&records)
}

// lookup scans the current generation. When keys repeat, the record loaded last wins.
func (s *snapshot) lookup(key string) (Record, bool) {
	p := s.records.Load()
	if p == nil {
		return Record{}, false
	}
	records := *p
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Key == key {
			return records[i], true
		}
	}
	return Record{}, false
}

// list returns a copy of the current generation, or nil if nothing was loaded.
func (s *snapshot) list() []Record {
	p := s.records.Load()
	if p == nil {
		return nil
	}
	return slices.Clone(*p)
}
