package form

import "slices"

// Shape converts an ordered list of raw elements E into the target type T and
// declares whether missing input is acceptable.
//
// Drain returns false only when the shape cannot be built from raw, which in
// practice means a required shape was given nothing. Items flattens a value
// back into its elements.
type Shape[E, T any] interface {
	Drain(raw []E) (T, bool)
	Optional() bool
	Items(v T) []E
}

// One requires exactly one element and keeps the first one submitted.
func One[E any]() Shape[E, E] { return one[E]{} }

// Maybe accepts zero or one element. Missing input yields a nil pointer.
func Maybe[E any]() Shape[E, *E] { return maybe[E]{} }

// All requires at least one element and keeps every element in arrival order.
func All[E any]() Shape[E, []E] { return all[E]{} }

// MaybeAll keeps every element in arrival order. Missing input yields a nil slice.
func MaybeAll[E any]() Shape[E, []E] { return maybeAll[E]{} }

type one[E any] struct{}

func (one[E]) Drain(raw []E) (E, bool) {
	if len(raw) == 0 {
		var zero E
		return zero, false
	}
	return raw[0], true
}

func (one[E]) Optional() bool { return false }
func (one[E]) Items(v E) []E { return []E{v} }

type maybe[E any] struct{}

func (maybe[E]) Drain(raw []E) (*E, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	v := raw[0]
	return &v, true
}

func (maybe[E]) Optional() bool { return true }

func (maybe[E]) Items(v *E) []E {
	if v == nil {
		return nil
	}
	return []E{*v}
}

type all[E any] struct{}

func (all[E]) Drain(raw []E) ([]E, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	return slices.Clone(raw), true
}

func (all[E]) Optional() bool { return false }
func (all[E]) Items(v []E) []E { return v }

type maybeAll[E any] struct{}

func (maybeAll[E]) Drain(raw []E) ([]E, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	return slices.Clone(raw), true
}

func (maybeAll[E]) Optional() bool { return true }
func (maybeAll[E]) Items(v []E) []E { return v }
