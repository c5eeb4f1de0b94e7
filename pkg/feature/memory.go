package feature

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// Memory is a self-expiring in-process flag tier.
// Entries expire lifetime after they were set. Expired entries are removed
// lazily on read; there is no background sweeper.
type Memory struct {
	lifetime time.Duration
	now      func() time.Time
	entries  map[string]memoryEntry
	gen      uint64
	mu       sync.RWMutex
}

type memoryEntry struct {
	record    Record
	expiresAt time.Time
	gen       uint64
}

// MemoryOption configures a Memory tier.
type MemoryOption func(*Memory)

// WithClock replaces time.Now as the time source. Nil is ignored.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates a memory tier whose entries live for lifetime.
func NewMemory(lifetime time.Duration, opts ...MemoryOption) (*Memory, error) {
	if lifetime <= 0 {
		return nil, ErrInvalidLifetime
	}
	m := &Memory{
		lifetime: lifetime,
		now:      time.Now,
		entries:  make(map[string]memoryEntry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Lifetime returns the configured entry lifetime.
func (m *Memory) Lifetime() time.Duration { return m.lifetime }

// Set stores record under key, replacing any previous entry and restarting its lifetime.
func (m *Memory) Set(key string, record Record) {
	m.mu.Lock()
	m.gen++
	m.entries[key] = memoryEntry{record: record, expiresAt: m.now().Add(m.lifetime), gen: m.gen}
	m.mu.Unlock()
}

// Replace drops every entry and stores records in their place, each with a
// fresh lifetime. When keys repeat, the record that comes last wins.
func (m *Memory) Replace(records []Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiresAt := m.now().Add(m.lifetime)
	entries := make(map[string]memoryEntry, len(records))
	for _, rec := range records {
		m.gen++
		entries[rec.Key] = memoryEntry{record: rec, expiresAt: expiresAt, gen: m.gen}
	}
	m.entries = entries
}

// List returns the unexpired records ordered by key, or nil when there are none.
func (m *Memory) List() []Record {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, entry := range m.entries {
		if now.Before(entry.expiresAt) {
			out = append(out, entry.record)
		}
	}
	slices.SortFunc(out, func(a, b Record) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// Get returns the record stored under key if it has not expired.
func (m *Memory) Get(key string) (Record, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return Record{}, false
	}

	if !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		// Another writer may have stored a fresh entry in between.
		if current, ok := m.entries[key]; ok && current.gen == entry.gen {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return Record{}, false
	}

	return entry.record, true
}

// Delete removes key. Missing keys are ignored.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Clear removes every entry.
func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
}

// Len returns the number of stored entries, including expired ones not yet read.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
