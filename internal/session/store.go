package session

import "sync"

// Store serializes dispatches so no two transitions interleave on one state.
type Store struct {
	mu      sync.Mutex
	reducer Reducer
	state   State
}

func NewStore(reducer Reducer, initial State) *Store {
	return &Store{reducer: reducer, state: initial}
}

func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.reducer.Reduce(s.state, action)
	return s.state
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
