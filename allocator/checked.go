package allocator

import "sync"

// Shared is the bookkeeping a [Checked] allocator needs to detect leaks
// and, optionally, to simulate allocation failure after a fixed number
// of calls. Passing the same [*Shared] to two [Checked] allocators of
// different element types (see package doc) makes them share one
// outstanding-allocation count, mirroring the source's
// `checked_allocator::m_state`.
type Shared struct {
	mu          sync.Mutex
	outstanding int64
	calls       int64
	failAfter   int64 // negative disables failure injection
}

// NewShared returns a [*Shared] with failure injection disabled.
func NewShared() *Shared {
	return &Shared{failAfter: -1}
}

// FailAfter arms failure injection: the n+1th call to Allocate across
// every [Checked] allocator sharing this state returns
// [ErrAllocationFailed] instead of succeeding.
func (s *Shared) FailAfter(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failAfter = n
}

// Outstanding returns the number of elements allocated but not yet
// deallocated across every allocator sharing this state. A value other
// than zero after a container goes out of scope indicates a leak.
func (s *Shared) Outstanding() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.outstanding
}

// Checked is a test allocator that tracks outstanding allocations (via
// its [*Shared] state) and compares equal to other [Checked] allocators
// that carry the same ID, independent of element type. It is the Go
// rendition of original_source/test/checked_allocator.hpp, simplified to
// a single leak counter since Go's garbage collector removes the
// double-free/use-after-free concerns that drove the source's pointer
// ownership set.
type Checked[T any] struct {
	id    int
	spec  Propagation
	state *Shared
}

// NewChecked returns a [Checked] allocator identified by id, sharing
// state with shared. Two [Checked] allocators (of any element type)
// with the same id compare [Checked.Equal]. Propagation defaults to
// propagate on copy, move, and swap; use [Checked.WithPropagation] to
// exercise the non-propagating paths.
func NewChecked[T any](id int, shared *Shared) *Checked[T] {
	if shared == nil {
		shared = NewShared()
	}

	return &Checked[T]{
		id: id,
		spec: Propagation{
			OnCopyAssign: true,
			OnMoveAssign: true,
			OnSwap:       true,
		},
		state: shared,
	}
}

// WithPropagation overrides the propagation flags and returns c for
// chaining.
func (c *Checked[T]) WithPropagation(p Propagation) *Checked[T] {
	c.spec = p
	return c
}

// Shared returns the state backing c, for constructing a sibling
// allocator of a different element type that shares the same leak
// counter.
func (c *Checked[T]) Shared() *Shared { return c.state }

// ID returns the identity used by [Checked.Equal].
func (c *Checked[T]) ID() int { return c.id }

func (c *Checked[T]) Allocate(n int) ([]T, error) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	c.state.calls++
	if c.state.failAfter >= 0 && c.state.calls > c.state.failAfter {
		return nil, ErrAllocationFailed
	}

	c.state.outstanding += int64(n)

	return make([]T, n), nil
}

func (c *Checked[T]) Deallocate(buf []T) {
	if buf == nil {
		return
	}

	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	c.state.outstanding -= int64(len(buf))
}

func (c *Checked[T]) Construct(dst *T, value T) {
	*dst = value
}

func (c *Checked[T]) Destroy(dst *T) {
	var zero T
	*dst = zero
}

func (c *Checked[T]) Propagation() Propagation {
	return c.spec
}

func (c *Checked[T]) Equal(other Allocator[T]) bool {
	o, ok := other.(*Checked[T])
	return ok && o.id == c.id
}
