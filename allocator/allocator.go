package allocator

import "errors"

// ErrAllocationFailed is returned by [Allocator.Allocate] when storage
// cannot be provided. Callers must release any partial state they hold;
// this module's containers never leak on this path.
var ErrAllocationFailed = errors.New("allocator: allocation failed")

// Propagation describes how an allocator behaves across the three
// operations where a container must decide whether to keep its own
// allocator or adopt another one: copy-assignment, move-assignment, and
// swap. It also carries an "always compare equal" fast path for
// stateless allocators, which lets containers skip the Equal call
// entirely when both sides advertise it.
//
// Containers never infer these flags from allocator identity; they are
// queried explicitly via [Allocator.Propagation].
type Propagation struct {
	// OnCopyAssign reports whether copy-assignment replaces the
	// target's allocator with the source's.
	OnCopyAssign bool
	// OnMoveAssign reports whether move-assignment replaces the
	// target's allocator with the source's.
	OnMoveAssign bool
	// OnSwap reports whether swap exchanges allocators along with
	// storage. If false and the two allocators compare unequal, a
	// container must not swap storage directly (contract violation);
	// it falls back to element-wise exchange.
	OnSwap bool
	// AlwaysEqual reports whether every instance of this allocator
	// type compares equal to every other instance, making Equal a
	// constant-true fast path.
	AlwaysEqual bool
}

// Allocator is the capability set containers consume. T is the element
// type being allocated; a container that stores a different type
// internally (for example tree nodes wrapping a key/value pair) is
// handed an allocator for that type; see the rebinding note below.
type Allocator[T any] interface {
	// Allocate returns a slice of length n whose elements are zero
	// value, ready for [Allocator.Construct]. It returns
	// [ErrAllocationFailed] (never panics) when storage cannot be
	// provided.
	Allocate(n int) ([]T, error)
	// Deallocate releases storage previously returned by Allocate.
	// Deallocating a nil slice is a no-op; each slice is deallocated
	// at most once.
	Deallocate(buf []T)
	// Construct initializes *dst with value. Containers call this
	// instead of a bare assignment so that allocators which track
	// construction (see [Checked]) observe every live object.
	Construct(dst *T, value T)
	// Destroy finalizes *dst. Panicking inside Destroy during a
	// container operation is a contract violation (spec: "Emitting
	// exceptions from a destructor ... is a contract violation").
	Destroy(dst *T)
	// Propagation reports this allocator's propagation capabilities.
	Propagation() Propagation
	// Equal reports whether two allocators are interchangeable, i.e.
	// storage allocated by one may be deallocated by the other. Used
	// only when the relevant Propagation flag is false.
	Equal(other Allocator[T]) bool
}

// Rebinding. The source models a per-type `rebind<U>()` operation on the
// allocator trait; Go's generics have no higher-kinded type parameters,
// so a single generic `Rebind[U, T]` function cannot recover a stateful
// allocator's configuration from an `Allocator[T]` value without a type
// switch over every concrete allocator in this package. Instead, each
// stateful allocator exposes its shareable configuration as a concrete,
// non-generic type ([*Shared] for [Checked]) that a caller passes
// explicitly when constructing the sibling allocator for a different
// element type:
//
//	values := allocator.NewChecked[int](1, allocator.NewShared())
//	nodes  := allocator.NewChecked[treeNode[int]](1, values.Shared())
//
// [Std] needs no such handle since it is stateless: [NewStd] works for
// any element type directly.
