package value

import "unsafe"

// InlineThreshold is the storage-size cutoff (in bytes) the source
// adapter uses to decide between inline and boxed storage for a
// tagged-union alternative (spec: "if the storage size of T exceeds a
// threshold (16 bytes), S(T) is an owning indirection").
const InlineThreshold = 16

// ShouldBox reports whether an alternative of type T exceeds
// [InlineThreshold] and should therefore be stored behind a [Box]
// rather than inline in the surrounding tagged union.
func ShouldBox[T any]() bool {
	var zero T

	return unsafe.Sizeof(zero) > InlineThreshold
}

// Box is an owning indirection for a large tagged-union alternative. It
// is always non-nil once constructed via [NewBox]; the zero Box is
// empty and most methods on it panic, matching the source's treatment
// of an adapter in the "no value" state as a contract violation rather
// than a silently-tolerated nil.
type Box[T any] struct {
	p *T
}

// NewBox returns a [Box] owning a copy of v.
func NewBox[T any](v T) Box[T] {
	cp := v
	return Box[T]{p: &cp}
}

// Valid reports whether b owns a value.
func (b Box[T]) Valid() bool { return b.p != nil }

// Get returns the boxed value. It panics if b is empty.
func (b Box[T]) Get() T {
	if b.p == nil {
		panic("value: Box.Get on empty box")
	}

	return *b.p
}

// Set replaces the boxed value in place; mutation through Set (or
// through [Box.Ptr]) is visible to every holder of a copy of b, since
// all copies of a Box share the same backing pointer -- matching the
// adapter invariant "mutation through the access handle mutates the
// owned T" regardless of whether T happens to be boxed.
func (b Box[T]) Set(v T) {
	if b.p == nil {
		panic("value: Box.Set on empty box")
	}

	*b.p = v
}

// Ptr returns a pointer to the boxed value for in-place mutation. It
// panics if b is empty.
func (b Box[T]) Ptr() *T {
	if b.p == nil {
		panic("value: Box.Ptr on empty box")
	}

	return b.p
}

// Clone returns a new [Box] that owns an independent copy of b's value,
// the adapter's "deep copy is explicit" escape hatch from the default
// behavior, in which copies of a Box share one pointer.
func (b Box[T]) Clone() Box[T] {
	if b.p == nil {
		return Box[T]{}
	}

	return NewBox(*b.p)
}
