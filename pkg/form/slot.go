package form

import (
	"fmt"
	"sync"
)

type slotState uint8

const (
	slotPending slotState = iota
	slotReady
	slotConsumed
)

// slot holds a validated value until it is taken. Every handle of a field,
// including duplicates, points at the same slot.
type slot[T any] struct {
	mu    sync.Mutex
	state slotState
	value T
}

func newSlot[T any]() *slot[T] {
	return &slot[T]{}
}

func (s *slot[T]) store(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.state = slotReady
}

// take moves the value out of the slot.
func (s *slot[T]) take(field string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	switch s.state {
	case slotReady:
		v := s.value
		s.value = zero
		s.state = slotConsumed
		return v, nil
	case slotConsumed:
		return zero, fmt.Errorf("%w: field %q", ErrAlreadyConsumed, field)
	default:
		return zero, fmt.Errorf("%w: field %q", ErrNotValidated, field)
	}
}

func (s *slot[T]) ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == slotReady
}

// mustTake panics on misuse. Reading a field that was not validated is a
// programming error in the form driver, not a user input problem.
func (s *slot[T]) mustTake(field string) T {
	v, err := s.take(field)
	if err != nil {
		panic(err)
	}
	return v
}
