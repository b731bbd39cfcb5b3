package explorer

import (
	"sync"

	"github.com/thatbeautifuldream/local-first-explorer/internal/fs"
)

// Listener is called after every dispatched event with the new snapshot.
type Listener func(State, Event)

// Store owns the current state snapshot. Reduce runs under the lock;
// listeners run outside it.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []Listener
}

// NewStore creates a store with an empty entry mapping and no tree.
func NewStore() *Store {
	return &Store{
		state: State{Entries: make(map[string]fs.Handle)},
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies an event and notifies listeners with the result.
func (s *Store) Dispatch(ev Event) State {
	s.mu.Lock()
	s.state = Reduce(s.state, ev)
	st := s.state
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(st, ev)
	}
	return st
}

// Subscribe registers a listener for future events.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}
