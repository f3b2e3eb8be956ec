package process

import "sync"

// Store is a single-slot, mutex-guarded container for the backend Handle.
// The startup path fills it and the shutdown path drains it; the two may
// run on different goroutines.
type Store struct {
	mu     sync.Mutex
	handle Handle
}

// Put stores h, returning whatever it displaced.
func (s *Store) Put(h Handle) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.handle
	s.handle = h
	return prev
}

// Take removes and returns the occupant. An empty store returns (nil, false).
func (s *Store) Take() (Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.handle
	s.handle = nil
	return h, h != nil
}

// Peek returns the occupant without removing it.
func (s *Store) Peek() (Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle, s.handle != nil
}
