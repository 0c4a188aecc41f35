// Package state holds the shared view state as independent named slots.
// Each slot is a single value with subscribe/set semantics; a write fans out
// synchronously to every subscriber. Containers are built explicitly and
// handed to whoever needs them, so there are no ambient singletons.
package state

import "sync"

// Slot holds one piece of shared view state.
type Slot[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

// NewSlot creates a slot holding initial.
func NewSlot[T any](initial T) *Slot[T] {
	return &Slot[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (s *Slot[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores v and notifies every subscriber before returning. Subscribers
// run outside the slot lock, so they may read any slot freely.
func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn to run on every subsequent Set. The returned cancel
// removes the registration; it is safe to call more than once.
func (s *Slot[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
