package logging

import "sync"

// DefaultCapacity is the number of entries kept when no capacity is configured.
const DefaultCapacity = 50

// EntryStore holds the most recent rendered entries in insertion order.
// Once full, each push evicts the oldest entry. It is thread-safe.
type EntryStore struct {
	mu      sync.RWMutex
	entries []*RenderedEntry
	head    int
	size    int
}

// NewEntryStore creates a store holding at most capacity entries.
// A non-positive capacity selects DefaultCapacity.
func NewEntryStore(capacity int) *EntryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &EntryStore{
		entries: make([]*RenderedEntry, capacity),
	}
}

// Push appends an entry and returns the entry it evicted, if any.
func (s *EntryStore) Push(entry *RenderedEntry) (evicted *RenderedEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tail := (s.head + s.size) % len(s.entries)
	if s.size == len(s.entries) {
		evicted = s.entries[s.head]
		s.entries[s.head] = entry
		s.head = (s.head + 1) % len(s.entries)
		return evicted
	}
	s.entries[tail] = entry
	s.size++
	return nil
}

// Len returns the number of entries held.
func (s *EntryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Capacity returns the maximum number of entries held.
func (s *EntryStore) Capacity() int {
	return len(s.entries)
}

// GetAll returns a copy of all entries, oldest first.
func (s *EntryStore) GetAll() []*RenderedEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*RenderedEntry, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.entries[(s.head+i)%len(s.entries)]
	}
	return out
}
