package avltree

import "github.com/student/leviathan/allocator"

// NodeHandle owns a single extracted node's storage, detached from any
// tree, grounded on
// original_source/leviathan/collections/node_handle.hpp. It carries the
// allocator that constructed its node's entry, mirroring the source's
// "(owned node pointer, allocator)" pairing so a handle can be disposed
// or reinserted without guessing which allocator its storage came from.
// Obtain one from [Tree.Extract] and consume it with [Tree.InsertNode];
// the zero value is empty.
type NodeHandle[K, V any] struct {
	n     *node[K, V]
	alloc allocator.Allocator[Entry[K, V]]
}

// Empty reports whether h owns no node (either the zero value, or a
// handle released by [NodeHandle.Dispose]). [Tree.InsertNode] takes the
// handle by value, so it does not empty the caller's copy.
func (h NodeHandle[K, V]) Empty() bool { return h.n == nil }

// Key returns the owned entry's key. It panics if h is
// [NodeHandle.Empty].
func (h NodeHandle[K, V]) Key() K {
	if h.n == nil {
		panic("avltree: Key on empty node handle")
	}

	return h.n.key()
}

// Value returns the owned entry's value. It panics if h is
// [NodeHandle.Empty].
func (h NodeHandle[K, V]) Value() V {
	if h.n == nil {
		panic("avltree: Value on empty node handle")
	}

	return h.n.val()
}

// SetValue replaces the owned entry's value in place. It panics if h
// is [NodeHandle.Empty].
func (h NodeHandle[K, V]) SetValue(v V) {
	if h.n == nil {
		panic("avltree: SetValue on empty node handle")
	}

	h.n.setVal(v)
}

// Dispose releases a handle that will never be reinserted, returning
// its node's entry to the allocator that constructed it. Calling
// [Tree.InsertNode] with h afterward is a contract violation.
func (h *NodeHandle[K, V]) Dispose() {
	if h.n == nil {
		return
	}

	h.alloc.Destroy(&h.n.entry[0])
	h.alloc.Deallocate(h.n.entry)
	h.n = nil
}
