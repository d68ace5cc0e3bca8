// Package keylock provides mutual exclusion scoped to a string key.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Set hands out one mutex per key. Entries are reference counted and removed
// once no goroutine holds or waits for them, so the set does not grow with
// the number of keys ever seen.
type Set struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Set {
	return &Set{entries: make(map[string]*entry)}
}

// Lock blocks until the caller owns key. The returned func releases it and
// must be called exactly once.
func (s *Set) Lock(key string) (unlock func()) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.refs++
	s.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		s.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(s.entries, key)
		}
		s.mu.Unlock()
	}
}

// Len returns the number of keys currently held or awaited.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
