package buffer

import (
	"errors"
	"math/bits"

	"github.com/student/leviathan/allocator"
)

// ErrEmpty is the value [Buffer.PopBack] panics with on an empty
// buffer, where the source treats the condition as a contract violation
// (assert).
var ErrEmpty = errors.New("buffer: empty")

// Buffer is a growable contiguous sequence of T. The zero value is an
// empty buffer with zero capacity, as is the one [New] returns. The
// buffer holds no allocator: every mutating call takes one explicitly.
type Buffer[T any] struct {
	data []T
}

// New returns an empty [Buffer] with no storage allocated yet.
func New[T any]() *Buffer[T] {
	return &Buffer[T]{}
}

// Len returns the number of elements currently stored.
func (b *Buffer[T]) Len() int { return len(b.data) }

// Cap returns the current capacity, always zero or a power of two.
func (b *Buffer[T]) Cap() int { return cap(b.data) }

// Empty reports whether the buffer holds no elements.
func (b *Buffer[T]) Empty() bool { return len(b.data) == 0 }

// At returns the element at index i. It panics if i is out of range,
// matching the source's assert-guarded `operator[]`.
func (b *Buffer[T]) At(i int) T {
	return b.data[i]
}

// Set overwrites the element at index i. It panics if i is out of
// range.
func (b *Buffer[T]) Set(i int, v T) {
	b.data[i] = v
}

// Slice returns the live elements as a slice backed by the buffer's own
// storage. Callers must not retain it across a mutating call.
func (b *Buffer[T]) Slice() []T { return b.data }

// nextPow2 returns the smallest power of two >= n, with nextPow2(0) == 0.
func nextPow2(n int) int {
	if n <= 0 {
		return 0
	}

	return 1 << bits.Len(uint(n-1))
}

// growIfFull reallocates to the smallest power of two capacity that is
// at least needed, if the current capacity is below needed. It offers
// the strong guarantee: on allocator failure the existing buffer is
// untouched.
func (b *Buffer[T]) growIfFull(alloc allocator.Allocator[T], needed int) error {
	if needed <= cap(b.data) {
		return nil
	}

	return b.growTo(alloc, nextPow2(needed))
}

func (b *Buffer[T]) growTo(alloc allocator.Allocator[T], newCap int) error {
	newData, allocErr := alloc.Allocate(newCap)
	if allocErr != nil {
		return allocErr
	}

	// Guard: if moving an element panics partway through (a
	// user-defined T could misbehave even though plain assignment
	// cannot), dispose of the partially filled new storage and leave
	// the original buffer intact, then re-raise. This mirrors the
	// source's unique_ptr-based deleter guard around
	// expand_unchecked_capacity.
	committed := false

	defer func() {
		if !committed {
			alloc.Deallocate(newData)

			if r := recover(); r != nil {
				panic(r)
			}
		}
	}()

	n := len(b.data)
	for i := 0; i < n; i++ {
		alloc.Construct(&newData[i], b.data[i])
	}

	old := b.data
	newData = newData[:n]
	committed = true
	b.data = newData

	if old != nil {
		alloc.Deallocate(old[:cap(old)])
	}

	return nil
}

// Reserve ensures capacity for at least n elements, growing if
// necessary.
func (b *Buffer[T]) Reserve(alloc allocator.Allocator[T], n int) error {
	if n <= cap(b.data) {
		return nil
	}

	return b.growTo(alloc, nextPow2(n))
}

// PushBack materializes v into a scratch slot, growing first if the
// buffer is full, then appends it.
func (b *Buffer[T]) PushBack(alloc allocator.Allocator[T], v T) error {
	_, err := b.EmplaceBack(alloc, v)
	return err
}

// EmplaceBack is [Buffer.PushBack] returning the index the element was
// placed at, matching the source's `emplace_back` returning a pointer to
// the new element.
func (b *Buffer[T]) EmplaceBack(alloc allocator.Allocator[T], v T) (int, error) {
	if err := b.growIfFull(alloc, len(b.data)+1); err != nil {
		return 0, err
	}

	b.data = b.data[:len(b.data)+1]
	alloc.Construct(&b.data[len(b.data)-1], v)

	return len(b.data) - 1, nil
}

// Insert materializes v into a scratch slot, grows if necessary, then
// shifts [pos, len) right by one and places v at pos. pos must be in
// [0, Len()]; pos == Len() behaves exactly like [Buffer.EmplaceBack].
func (b *Buffer[T]) Insert(alloc allocator.Allocator[T], pos int, v T) error {
	if pos < 0 || pos > len(b.data) {
		panic("buffer: insert position out of range")
	}

	if pos == len(b.data) {
		return b.PushBack(alloc, v)
	}

	if err := b.growIfFull(alloc, len(b.data)+1); err != nil {
		return err
	}

	b.data = b.data[:len(b.data)+1]

	copy(b.data[pos+1:], b.data[pos:len(b.data)-1])
	alloc.Construct(&b.data[pos], v)

	return nil
}

// Erase removes the element at pos, shifting subsequent elements left.
func (b *Buffer[T]) Erase(alloc allocator.Allocator[T], pos int) {
	b.EraseRange(alloc, pos, pos+1)
}

// EraseRange removes elements in [lo, hi), shifting subsequent elements
// left.
func (b *Buffer[T]) EraseRange(alloc allocator.Allocator[T], lo, hi int) {
	if lo < 0 || hi > len(b.data) || lo > hi {
		panic("buffer: erase range out of range")
	}

	n := copy(b.data[lo:], b.data[hi:])
	tail := lo + n

	for i := tail; i < len(b.data); i++ {
		alloc.Destroy(&b.data[i])
	}

	b.data = b.data[:tail]
}

// PopBack removes the last element. It panics on an empty buffer,
// matching the source's assert-guarded contract violation.
func (b *Buffer[T]) PopBack(alloc allocator.Allocator[T]) {
	if len(b.data) == 0 {
		panic(ErrEmpty)
	}

	alloc.Destroy(&b.data[len(b.data)-1])
	b.data = b.data[:len(b.data)-1]
}

// Clear destroys every element, leaving capacity untouched.
func (b *Buffer[T]) Clear(alloc allocator.Allocator[T]) {
	for i := range b.data {
		alloc.Destroy(&b.data[i])
	}

	b.data = b.data[:0]
}

// Dispose clears and releases all storage. The buffer does not own its
// allocator, so callers must call Dispose explicitly before discarding
// a buffer, matching the source's `~buffer()`-equivalent `dispose`.
func (b *Buffer[T]) Dispose(alloc allocator.Allocator[T]) {
	if b.data == nil {
		return
	}

	b.Clear(alloc)
	alloc.Deallocate(b.data[:cap(b.data)])
	b.data = nil
}

// Swap exchanges contents with other in constant time.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	b.data, other.data = other.data, b.data
}

// Range calls fn for each element in order, stopping early if fn
// returns false.
func (b *Buffer[T]) Range(fn func(i int, v T) bool) {
	for i, v := range b.data {
		if !fn(i, v) {
			return
		}
	}
}

// ReverseRange calls fn for each element from last to first, stopping
// early if fn returns false.
func (b *Buffer[T]) ReverseRange(fn func(i int, v T) bool) {
	for i := len(b.data) - 1; i >= 0; i-- {
		if !fn(i, b.data[i]) {
			return
		}
	}
}
