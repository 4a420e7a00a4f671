package ratelimit

import "time"

// Entry tracks admissions for one key within the current fixed window.
type Entry struct {
	Count   int
	ResetAt time.Time
}

// Store is the backing state for the limiter. Implementations do not need to
// be safe for concurrent use; the Limiter serializes all access so the
// read-modify-write in Consume stays a single critical section.
//
// The in-memory store is the single-instance default. A shared backend (e.g.
// an external cache) can be swapped in for multi-instance deployments without
// touching the window algorithm.
type Store interface {
	Get(key string) (Entry, bool)
	Set(key string, entry Entry)
	Delete(key string)
	Len() int
	Range(fn func(key string, entry Entry) bool)
}

// MemoryStore keeps entries in a process-local map. State resets on process
// restart, an accepted tradeoff for this workload.
type MemoryStore struct {
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Get(key string) (Entry, bool) {
	entry, ok := s.entries[key]
	return entry, ok
}

func (s *MemoryStore) Set(key string, entry Entry) {
	s.entries[key] = entry
}

func (s *MemoryStore) Delete(key string) {
	delete(s.entries, key)
}

func (s *MemoryStore) Len() int {
	return len(s.entries)
}

func (s *MemoryStore) Range(fn func(key string, entry Entry) bool) {
	for key, entry := range s.entries {
		if !fn(key, entry) {
			return
		}
	}
}
