package avltree

import "github.com/student/leviathan/allocator"

// Tree is an ordered, unique-keyed associative container backed by an
// AVL tree with header-sentinel iteration. The zero value is not
// usable; construct one with [New].
type Tree[K, V any] struct {
	header *node[K, V]
	less   func(a, b K) bool
	alloc  allocator.Allocator[Entry[K, V]]
	size   int
}

// New returns an empty [Tree] ordered by less, allocating every node's
// entry through alloc.
func New[K, V any](less func(a, b K) bool, alloc allocator.Allocator[Entry[K, V]]) *Tree[K, V] {
	return &Tree[K, V]{header: newHeader[K, V](), less: less, alloc: alloc}
}

// Size returns the number of entries in t.
func (t *Tree[K, V]) Size() int { return t.size }

// Empty reports whether t has no entries.
func (t *Tree[K, V]) Empty() bool { return t.size == 0 }

// newNode allocates and constructs a fresh live node through t.alloc.
// On allocation failure it returns the error with no node created and
// no tree pointers touched, so a failed insert leaves t unchanged.
func (t *Tree[K, V]) newNode(key K, val V) (*node[K, V], error) {
	buf, err := t.alloc.Allocate(1)
	if err != nil {
		return nil, err
	}

	t.alloc.Construct(&buf[0], Entry[K, V]{Key: key, Val: val})

	return &node[K, V]{entry: buf, height: 1}, nil
}

// destroyNode releases a detached node's entry back through t.alloc.
// n must already be unlinked from the tree.
func (t *Tree[K, V]) destroyNode(n *node[K, V]) {
	t.alloc.Destroy(&n.entry[0])
	t.alloc.Deallocate(n.entry)
	n.entry = nil
}

// Clear removes every entry from t, destroying each live node through
// t.alloc before resetting the header.
func (t *Tree[K, V]) Clear() {
	var walk func(n *node[K, V])

	walk = func(n *node[K, V]) {
		if n == nil {
			return
		}

		walk(n.left)
		walk(n.right)
		t.destroyNode(n)
	}

	walk(t.root())

	t.header = newHeader[K, V]()
	t.size = 0
}

func (t *Tree[K, V]) root() *node[K, V] { return t.header.parent }

// findNode returns the node with the given key, or nil.
func (t *Tree[K, V]) findNode(key K) *node[K, V] {
	n := t.root()
	for n != nil {
		switch {
		case t.less(key, n.key()):
			n = n.left
		case t.less(n.key(), key):
			n = n.right
		default:
			return n
		}
	}

	return nil
}

// Find returns an iterator to key, and true, or [Tree.End] and false.
func (t *Tree[K, V]) Find(key K) (Iterator[K, V], bool) {
	if n := t.findNode(key); n != nil {
		return Iterator[K, V]{tree: t, n: n}, true
	}

	return t.End(), false
}

// Contains reports whether key is present in t.
func (t *Tree[K, V]) Contains(key K) bool { return t.findNode(key) != nil }

// Count returns 1 if key is present, 0 otherwise (unique keys only).
func (t *Tree[K, V]) Count(key K) int {
	if t.Contains(key) {
		return 1
	}

	return 0
}

// LowerBound returns an iterator to the first entry whose key is not
// less than key.
func (t *Tree[K, V]) LowerBound(key K) Iterator[K, V] {
	n := t.root()
	result := t.header

	for n != nil {
		if !t.less(n.key(), key) {
			result = n
			n = n.left
		} else {
			n = n.right
		}
	}

	return Iterator[K, V]{tree: t, n: result}
}

// UpperBound returns an iterator to the first entry whose key is
// greater than key.
func (t *Tree[K, V]) UpperBound(key K) Iterator[K, V] {
	n := t.root()
	result := t.header

	for n != nil {
		if t.less(key, n.key()) {
			result = n
			n = n.left
		} else {
			n = n.right
		}
	}

	return Iterator[K, V]{tree: t, n: result}
}

// EqualRange returns [LowerBound(key), UpperBound(key)).
func (t *Tree[K, V]) EqualRange(key K) (Iterator[K, V], Iterator[K, V]) {
	return t.LowerBound(key), t.UpperBound(key)
}

// FindFunc performs a transparent lookup using cmp in place of t's
// comparator: cmp must return a negative number if the sought value
// orders before a key, zero if equal, and positive if after, and must
// be consistent with t's ordering. This is Go's substitute for the
// source's transparent-comparator template parameterization, which has
// no direct equivalent on a generic type's methods -- a closure over
// the probe value plays the same role.
func (t *Tree[K, V]) FindFunc(cmp func(K) int) (Iterator[K, V], bool) {
	n := t.root()
	for n != nil {
		switch c := cmp(n.key()); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return Iterator[K, V]{tree: t, n: n}, true
		}
	}

	return t.End(), false
}

// Begin returns an iterator to the leftmost entry, or [Tree.End] if t
// is empty.
func (t *Tree[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{tree: t, n: t.header.left}
}

// End returns the past-the-end iterator.
func (t *Tree[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{tree: t, n: t.header}
}

// insertAt links a freshly allocated leaf n under parent, updating the
// header's leftmost/rightmost cache, then retraces for rebalancing.
func (t *Tree[K, V]) insertAt(parent *node[K, V], n *node[K, V], goLeft bool) {
	n.parent = parent

	if parent.isHeader {
		t.header.parent = n
		t.header.left = n
		t.header.right = n
	} else if goLeft {
		parent.left = n
		if parent == t.header.left {
			t.header.left = n
		}
	} else {
		parent.right = n
		if parent == t.header.right {
			t.header.right = n
		}
	}

	t.size++
	retraceInsert(parent, t.header)
}

// Insert inserts key/val if key is not already present. It returns an
// iterator to the (possibly pre-existing) entry and whether insertion
// happened. On allocator failure t is left unchanged and the error is
// returned.
func (t *Tree[K, V]) Insert(key K, val V) (Iterator[K, V], bool, error) {
	if t.Empty() {
		n, err := t.newNode(key, val)
		if err != nil {
			return Iterator[K, V]{}, false, err
		}

		t.insertAt(t.header, n, false)

		return Iterator[K, V]{tree: t, n: n}, true, nil
	}

	cur := t.root()

	var parent *node[K, V]

	goLeft := false

	for cur != nil {
		parent = cur

		switch {
		case t.less(key, cur.key()):
			goLeft = true
			cur = cur.left
		case t.less(cur.key(), key):
			goLeft = false
			cur = cur.right
		default:
			return Iterator[K, V]{tree: t, n: cur}, false, nil
		}
	}

	n, err := t.newNode(key, val)
	if err != nil {
		return Iterator[K, V]{}, false, err
	}

	t.insertAt(parent, n, goLeft)

	return Iterator[K, V]{tree: t, n: n}, true, nil
}

// Emplace is an alias for Insert; Go has no placement-construction
// distinction from a value insert.
func (t *Tree[K, V]) Emplace(key K, val V) (Iterator[K, V], bool, error) {
	return t.Insert(key, val)
}

// EmplaceHint inserts key/val using hint as a starting point, avoiding
// a full root-to-leaf descent when hint immediately follows the
// insertion point (the common case for ascending sequential insertion,
// including hint == [Tree.End] to append a new maximum). It falls back
// to an ordinary descent when the hint does not apply.
func (t *Tree[K, V]) EmplaceHint(hint Iterator[K, V], key K, val V) (Iterator[K, V], bool, error) {
	if hint.n == nil {
		return t.Insert(key, val)
	}

	if hint.n.isHeader {
		if !t.Empty() {
			maxNode := t.header.right
			if t.less(maxNode.key(), key) {
				n, err := t.newNode(key, val)
				if err != nil {
					return Iterator[K, V]{}, false, err
				}

				t.insertAt(maxNode, n, false)

				return Iterator[K, V]{tree: t, n: n}, true, nil
			}
		}
	} else if hint.n.left == nil {
		prev := decrement(hint.n)
		if (prev.isHeader || t.less(prev.key(), key)) && t.less(key, hint.n.key()) {
			n, err := t.newNode(key, val)
			if err != nil {
				return Iterator[K, V]{}, false, err
			}

			t.insertAt(hint.n, n, true)

			return Iterator[K, V]{tree: t, n: n}, true, nil
		}
	}

	return t.Insert(key, val)
}

// eraseNode physically unlinks n (after swapping its entry with its
// in-order successor's if n has two children) and retraces for
// rebalancing. It returns the struct that ended up physically
// detached, which is n itself unless n had two children, in which case
// the successor's struct is detached and n's struct is left in place
// holding the successor's former entry.
func (t *Tree[K, V]) eraseNode(n *node[K, V]) *node[K, V] {
	if n.left != nil && n.right != nil {
		succ := minimum(n.right)
		n.entry[0] = succ.entry[0]
		n = succ
	}

	child := n.left
	if child == nil {
		child = n.right
	}

	parent := n.parent

	if child != nil {
		child.parent = parent
	}

	if parent.isHeader {
		t.header.parent = child
	} else if n == parent.left {
		parent.left = child
	} else {
		parent.right = child
	}

	if t.header.left == n {
		if child != nil {
			t.header.left = minimum(child)
		} else {
			t.header.left = parent
		}
	}

	if t.header.right == n {
		if child != nil {
			t.header.right = maximum(child)
		} else {
			t.header.right = parent
		}
	}

	t.size--
	retraceErase(parent, t.header)

	return n
}

// Erase removes the entry at it, returning an iterator to the next
// entry. The removed node's entry is released through t.alloc.
func (t *Tree[K, V]) Erase(it Iterator[K, V]) Iterator[K, V] {
	n := it.n
	next := increment(n)
	detached := t.eraseNode(n)

	if detached != n {
		// The successor's entry moved into n's node.
		next = n
	}

	t.destroyNode(detached)

	return Iterator[K, V]{tree: t, n: next}
}

// EraseKey removes key if present, reporting whether it was. The
// removed node's entry is released through t.alloc.
func (t *Tree[K, V]) EraseKey(key K) bool {
	n := t.findNode(key)
	if n == nil {
		return false
	}

	t.destroyNode(t.eraseNode(n))

	return true
}

// EraseRange removes every entry in [first, last), returning an
// iterator to the entry last referred to (which may now live in a
// different node, if last's entry was moved up to replace an erased
// node with two children). Every removed node's entry is released
// through t.alloc.
func (t *Tree[K, V]) EraseRange(first, last Iterator[K, V]) Iterator[K, V] {
	for first.n != last.n {
		n := first.n
		next := increment(n)
		detached := t.eraseNode(n)

		if detached != n {
			// The successor's entry moved into n's node.
			next = n
			if last.n == detached {
				last.n = n
			}
		}

		t.destroyNode(detached)
		first = Iterator[K, V]{tree: t, n: next}
	}

	return last
}

// Extract removes the entry at it from t and returns it as a
// [NodeHandle], reusing the underlying node storage rather than
// allocating a fresh copy. The handle can be reinserted into t or
// another [Tree] with the same key/value types via [Tree.InsertNode].
func (t *Tree[K, V]) Extract(it Iterator[K, V]) NodeHandle[K, V] {
	n := it.n
	entry := Entry[K, V]{Key: n.key(), Val: n.val()}

	detached := t.eraseNode(n)
	detached.entry[0] = entry
	detached.parent, detached.left, detached.right = nil, nil, nil
	detached.height = 1

	return NodeHandle[K, V]{n: detached, alloc: t.alloc}
}

// InsertNode reinserts a [NodeHandle] previously obtained from
// [Tree.Extract]. If an entry with the handle's key already exists in
// t, insertion fails, h is left holding its node (unchanged), and the
// returned iterator refers to the existing entry.
func (t *Tree[K, V]) InsertNode(h NodeHandle[K, V]) (Iterator[K, V], bool) {
	if h.Empty() {
		panic("avltree: InsertNode on empty handle")
	}

	n := h.n

	if t.Empty() {
		t.insertAt(t.header, n, false)

		return Iterator[K, V]{tree: t, n: n}, true
	}

	cur := t.root()

	var parent *node[K, V]

	goLeft := false

	for cur != nil {
		parent = cur

		switch {
		case t.less(n.key(), cur.key()):
			goLeft = true
			cur = cur.left
		case t.less(cur.key(), n.key()):
			goLeft = false
			cur = cur.right
		default:
			return Iterator[K, V]{tree: t, n: cur}, false
		}
	}

	t.insertAt(parent, n, goLeft)

	return Iterator[K, V]{tree: t, n: n}, true
}

// Swap exchanges the contents of t and other in constant time,
// including their allocators so every node stays matched with whichever
// allocator originally constructed it.
func (t *Tree[K, V]) Swap(other *Tree[K, V]) {
	t.header, other.header = other.header, t.header
	t.size, other.size = other.size, t.size
	t.alloc, other.alloc = other.alloc, t.alloc
}

// CheckInvariant walks every node and reports whether the AVL balance
// invariant |h(left) - h(right)| <= 1 holds everywhere. It exists for
// tests; production code never needs it since rebalancing maintains
// the invariant on every mutation.
func (t *Tree[K, V]) CheckInvariant() bool {
	var walk func(n *node[K, V]) bool

	walk = func(n *node[K, V]) bool {
		if n == nil {
			return true
		}

		bf := balanceFactor(n)
		if bf > 1 || bf < -1 {
			return false
		}

		return walk(n.left) && walk(n.right)
	}

	return walk(t.root())
}
