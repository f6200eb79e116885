package avltree

// Iterator is a bidirectional cursor into a [Tree]. The zero value is
// not usable; obtain one from [Tree.Begin], [Tree.End], [Tree.Find],
// or a bound/range query.
type Iterator[K, V any] struct {
	tree *Tree[K, V]
	n    *node[K, V]
}

// Valid reports whether it refers to a live entry rather than the
// past-the-end position.
func (it Iterator[K, V]) Valid() bool { return it.n != nil && !it.n.isHeader }

// Key returns the entry's key. It panics if it is not [Iterator.Valid].
func (it Iterator[K, V]) Key() K {
	if !it.Valid() {
		panic("avltree: Key on invalid iterator")
	}

	return it.n.key()
}

// Value returns the entry's value. It panics if it is not
// [Iterator.Valid].
func (it Iterator[K, V]) Value() V {
	if !it.Valid() {
		panic("avltree: Value on invalid iterator")
	}

	return it.n.val()
}

// SetValue replaces the entry's value in place. It panics if it is not
// [Iterator.Valid].
func (it Iterator[K, V]) SetValue(v V) {
	if !it.Valid() {
		panic("avltree: SetValue on invalid iterator")
	}

	it.n.setVal(v)
}

// Next returns the in-order successor, wrapping to End() from the
// rightmost entry.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{tree: it.tree, n: increment(it.n)}
}

// Prev returns the in-order predecessor. Called on End() it yields the
// rightmost entry (the reverse-iteration convention this package's
// header-sentinel design provides for free).
func (it Iterator[K, V]) Prev() Iterator[K, V] {
	return Iterator[K, V]{tree: it.tree, n: decrement(it.n)}
}

// Equal reports whether it and other refer to the same position.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool { return it.n == other.n }
