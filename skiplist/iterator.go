package skiplist

// Iterator is a bidirectional cursor into a [SkipList]. The zero value
// is not usable; obtain one from [SkipList.Begin], [SkipList.End], or
// [SkipList.Find]/[SkipList.LowerBound].
type Iterator[K, V any] struct {
	s *SkipList[K, V]
	n *node[K, V]
}

// Valid reports whether it refers to a live entry rather than the
// past-the-end position.
func (it Iterator[K, V]) Valid() bool { return it.n != nil && it.n != it.s.header }

// Key returns the entry's key. It panics if it is not [Iterator.Valid].
func (it Iterator[K, V]) Key() K {
	if !it.Valid() {
		panic("skiplist: Key on invalid iterator")
	}

	return it.n.key()
}

// Value returns the entry's value. It panics if it is not
// [Iterator.Valid].
func (it Iterator[K, V]) Value() V {
	if !it.Valid() {
		panic("skiplist: Value on invalid iterator")
	}

	return it.n.val()
}

// SetValue replaces the entry's value in place. It panics if it is not
// [Iterator.Valid].
func (it Iterator[K, V]) SetValue(v V) {
	if !it.Valid() {
		panic("skiplist: SetValue on invalid iterator")
	}

	it.n.setVal(v)
}

// Next advances along the bottom level's cyclic doubly-linked list,
// wrapping to End() from the highest-keyed entry.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{s: it.s, n: it.n.forward[0]}
}

// Prev steps backward along the bottom level. Called on End() it
// yields the highest-keyed entry.
func (it Iterator[K, V]) Prev() Iterator[K, V] {
	return Iterator[K, V]{s: it.s, n: it.n.prev}
}

// Equal reports whether it and other refer to the same position.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool { return it.n == other.n }
