package skiplist

import (
	"math/rand/v2"

	"github.com/student/leviathan/allocator"
)

const (
	// DefaultMaxLevel is the source's default clamp on node level.
	DefaultMaxLevel = 24
	// DefaultRatio is the source's default reciprocal promotion
	// probability (1/Ratio per level).
	DefaultRatio = 4
)

// SkipList is an ordered, unique-keyed associative container backed by
// a probabilistic multi-level linked list.
type SkipList[K, V any] struct {
	header   *node[K, V]
	less     func(a, b K) bool
	alloc    allocator.Allocator[Entry[K, V]]
	rnd      *rand.Rand
	level    int
	size     int
	maxLevel int
	ratio    int
}

// Option configures a [SkipList] constructed via [New].
type Option[K, V any] func(*SkipList[K, V])

// WithMaxLevel overrides [DefaultMaxLevel].
func WithMaxLevel[K, V any](n int) Option[K, V] {
	return func(s *SkipList[K, V]) { s.maxLevel = n }
}

// WithRatio overrides [DefaultRatio].
func WithRatio[K, V any](n int) Option[K, V] {
	if n <= 1 {
		panic("skiplist: ratio must be greater than 1")
	}

	return func(s *SkipList[K, V]) { s.ratio = n }
}

// WithSource overrides the random source used for level assignment,
// the Go equivalent of the source's RandomNumberGenerator template
// parameter.
func WithSource[K, V any](rnd *rand.Rand) Option[K, V] {
	return func(s *SkipList[K, V]) { s.rnd = rnd }
}

// New returns an empty [SkipList] ordered by less, allocating every
// node's entry through alloc.
func New[K, V any](less func(a, b K) bool, alloc allocator.Allocator[Entry[K, V]], opts ...Option[K, V]) *SkipList[K, V] {
	s := &SkipList[K, V]{
		less:     less,
		alloc:    alloc,
		maxLevel: DefaultMaxLevel,
		ratio:    DefaultRatio,
		level:    1,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(1, 1))
	}

	h := &node[K, V]{forward: make([]*node[K, V], s.maxLevel)}
	for i := range h.forward {
		h.forward[i] = h
	}

	h.prev = h
	s.header = h

	return s
}

// Size returns the number of entries in s.
func (s *SkipList[K, V]) Size() int { return s.size }

// Empty reports whether s has no entries.
func (s *SkipList[K, V]) Empty() bool { return s.size == 0 }

// CurrentLevel returns the highest level any node currently occupies.
func (s *SkipList[K, V]) CurrentLevel() int { return s.level }

// newNode allocates and constructs a fresh live node through s.alloc.
// On allocation failure it returns the error with no node created.
func (s *SkipList[K, V]) newNode(key K, val V, level int) (*node[K, V], error) {
	buf, err := s.alloc.Allocate(1)
	if err != nil {
		return nil, err
	}

	s.alloc.Construct(&buf[0], Entry[K, V]{Key: key, Val: val})

	return &node[K, V]{entry: buf, forward: make([]*node[K, V], level)}, nil
}

// destroyNode releases a detached node's entry back through s.alloc.
// n must already be unlinked from the list.
func (s *SkipList[K, V]) destroyNode(n *node[K, V]) {
	s.alloc.Destroy(&n.entry[0])
	s.alloc.Deallocate(n.entry)
	n.entry = nil
}

// Clear removes every entry from s, destroying each live node through
// s.alloc.
func (s *SkipList[K, V]) Clear() {
	for n := s.header.forward[0]; n != s.header; {
		next := n.forward[0]
		s.destroyNode(n)
		n = next
	}

	h := s.header
	for i := range h.forward {
		h.forward[i] = h
	}

	h.prev = h
	s.level = 1
	s.size = 0
}

func (s *SkipList[K, V]) randomLevel() int {
	level := 1
	threshold := 1.0 / float64(s.ratio)

	for level < s.maxLevel && s.rnd.Float64() < threshold {
		level++
	}

	return level
}

// findWithPredecessors descends from the top occupied level, recording
// the last node at each level whose key is less than key, and returns
// the node immediately following that predecessor at level 0 along
// with whether it holds an equal key.
func (s *SkipList[K, V]) findWithPredecessors(key K) (pred []*node[K, V], found *node[K, V], exists bool) {
	cur := s.header
	pred = make([]*node[K, V], s.maxLevel)

	for i := range pred {
		pred[i] = s.header
	}

	for i := s.level - 1; i >= 0; i-- {
		for cur.forward[i] != s.header && s.less(cur.forward[i].key(), key) {
			cur = cur.forward[i]
		}

		pred[i] = cur
	}

	next := cur.forward[0]
	if next != s.header && !s.less(key, next.key()) {
		return pred, next, true
	}

	return pred, next, false
}

// Find returns an iterator to key, and true, or [SkipList.End] and
// false.
func (s *SkipList[K, V]) Find(key K) (Iterator[K, V], bool) {
	_, n, ok := s.findWithPredecessors(key)
	if !ok {
		return s.End(), false
	}

	return Iterator[K, V]{s: s, n: n}, true
}

// Contains reports whether key is present in s.
func (s *SkipList[K, V]) Contains(key K) bool {
	_, _, ok := s.findWithPredecessors(key)
	return ok
}

// LowerBound returns an iterator to the first entry whose key is not
// less than key.
func (s *SkipList[K, V]) LowerBound(key K) Iterator[K, V] {
	_, n, _ := s.findWithPredecessors(key)
	return Iterator[K, V]{s: s, n: n}
}

// Begin returns an iterator to the lowest-keyed entry, or
// [SkipList.End] if s is empty.
func (s *SkipList[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{s: s, n: s.header.forward[0]}
}

// End returns the past-the-end iterator.
func (s *SkipList[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{s: s, n: s.header}
}

// Insert inserts key/val if key is not already present. It returns an
// iterator to the (possibly pre-existing) entry and whether insertion
// happened. Allocation failure aborts before any pointer is rewired,
// leaving s unchanged, and the error is returned.
func (s *SkipList[K, V]) Insert(key K, val V) (Iterator[K, V], bool, error) {
	pred, existing, exists := s.findWithPredecessors(key)
	if exists {
		return Iterator[K, V]{s: s, n: existing}, false, nil
	}

	level := s.randomLevel()

	n, err := s.newNode(key, val, level)
	if err != nil {
		return Iterator[K, V]{}, false, err
	}

	oldNext := pred[0].forward[0]
	n.prev = pred[0]
	oldNext.prev = n

	for i := 0; i < level; i++ {
		if i >= s.level {
			n.forward[i] = s.header
			s.header.forward[i] = n
		} else {
			n.forward[i] = pred[i].forward[i]
			pred[i].forward[i] = n
		}
	}

	if level > s.level {
		s.level = level
	}

	s.size++

	return Iterator[K, V]{s: s, n: n}, true, nil
}

// Emplace is an alias for Insert.
func (s *SkipList[K, V]) Emplace(key K, val V) (Iterator[K, V], bool, error) {
	return s.Insert(key, val)
}

// eraseNode physically unlinks n, given its per-level predecessors,
// and shrinks the current level if the topmost levels emptied out.
func (s *SkipList[K, V]) eraseNode(pred []*node[K, V], n *node[K, V]) {
	for i := 0; i < n.level(); i++ {
		pred[i].forward[i] = n.forward[i]
	}

	n.forward[0].prev = pred[0]

	newLevel := s.level
	for newLevel > 1 && s.header.forward[newLevel-1] == s.header {
		newLevel--
	}

	s.level = newLevel
	s.size--
}

// Erase removes the entry at it, returning an iterator to the next
// entry. The removed node's entry is released through s.alloc.
func (s *SkipList[K, V]) Erase(it Iterator[K, V]) Iterator[K, V] {
	pred, n, exists := s.findWithPredecessors(it.n.key())
	if !exists {
		panic("skiplist: Erase on stale iterator")
	}

	next := Iterator[K, V]{s: s, n: n.forward[0]}
	s.eraseNode(pred, n)
	s.destroyNode(n)

	return next
}

// EraseKey removes key if present, reporting whether it was. The
// removed node's entry is released through s.alloc.
func (s *SkipList[K, V]) EraseKey(key K) bool {
	pred, n, exists := s.findWithPredecessors(key)
	if !exists {
		return false
	}

	s.eraseNode(pred, n)
	s.destroyNode(n)

	return true
}

// EraseRange removes every entry in [first, last).
func (s *SkipList[K, V]) EraseRange(first, last Iterator[K, V]) Iterator[K, V] {
	if first.n == s.header.forward[0] && last.n == s.header {
		s.Clear()
		return last
	}

	for first.n != last.n {
		next := first.Next()
		s.EraseKey(first.n.key())
		first = next
	}

	return last
}
