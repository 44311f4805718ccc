package server

import (
	"sync"

	"github.com/katalvlaran/flowtrace/flow"
)

// Store keeps the most recent traces in memory, keyed by trace ID. Once full,
// adding a trace evicts the oldest one.
type Store struct {
	mu    sync.RWMutex
	limit int
	order []string
	items map[string]*flow.Trace
}

// NewStore returns a store holding at most limit traces (minimum 1).
func NewStore(limit int) *Store {
	return &Store{
		limit: max(limit, 1),
		items: make(map[string]*flow.Trace, max(limit, 1)),
	}
}

// Put stores t and reports the ID evicted to make room, if any.
func (s *Store) Put(t *flow.Trace) (evicted string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[t.ID]; ok {
		s.items[t.ID] = t
		return ""
	}
	if len(s.order) >= s.limit {
		evicted, s.order = s.order[0], s.order[1:]
		delete(s.items, evicted)
	}
	s.order = append(s.order, t.ID)
	s.items[t.ID] = t

	return evicted
}

// Get returns the trace stored under id.
func (s *Store) Get(id string) (*flow.Trace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.items[id]

	return t, ok
}

// Len returns the number of stored traces.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}
