package pyhash

import (
	"github.com/student/leviathan/allocator"
	"github.com/student/leviathan/buffer"
)

const (
	unused  = -1
	deleted = -2

	// DefaultCapacity is the source's default_hash_size.
	DefaultCapacity = 8

	// growthThreshold is the used/capacity ratio past which a table
	// doubles on its next insert.
	growthThreshold = 2.0 / 3.0
)

type Entry[K, V any] struct {
	hash uint64
	key  K
	val  V
}

// Table is an open-addressing, unique-keyed hash table. The zero
// value is not usable; construct one with [New]. Entries live in a
// [buffer.Buffer] allocated through alloc; indices is a plain side
// table of offsets into it, never itself allocator-managed.
type Table[K, V any] struct {
	hash     func(K) uint64
	eq       func(a, b K) bool
	alloc    allocator.Allocator[Entry[K, V]]
	indices  []int
	slots    *buffer.Buffer[Entry[K, V]]
	size     int
	used     int
	capacity int
}

// New returns an empty [Table] hashing keys with hash and comparing
// them with eq, allocating every slot through alloc.
func New[K, V any](hash func(K) uint64, eq func(a, b K) bool, alloc allocator.Allocator[Entry[K, V]]) *Table[K, V] {
	return &Table[K, V]{hash: hash, eq: eq, alloc: alloc, slots: buffer.New[Entry[K, V]]()}
}

// Size returns the number of live entries.
func (t *Table[K, V]) Size() int { return t.size }

// Empty reports whether t has no entries.
func (t *Table[K, V]) Empty() bool { return t.size == 0 }

// Capacity returns the current number of index slots (always a power
// of two, zero before the first insert).
func (t *Table[K, V]) Capacity() int { return t.capacity }

func (t *Table[K, V]) checkEqual(hash uint64, pos int, key K) bool {
	s := t.slots.At(pos)
	return s.hash == hash && t.eq(key, s.key)
}

func (t *Table[K, V]) growIfNeeded() error {
	if t.capacity == 0 {
		return t.resize(DefaultCapacity)
	}

	if float64(t.used)/float64(t.capacity) > growthThreshold {
		return t.resize(t.capacity * 2)
	}

	return nil
}

// resize rebuilds the table at newCapacity, reinserting every live
// entry (tombstones are dropped) using the same probe sequence a fresh
// insert would use, so lookups are unaffected by how many times a
// table has grown. Allocation failure for the new slot storage leaves
// t unchanged and returns the error.
func (t *Table[K, V]) resize(newCapacity int) error {
	oldIndices := t.indices
	oldSlots := t.slots
	oldCapacity := t.capacity

	newSlots := buffer.New[Entry[K, V]]()
	if err := newSlots.Reserve(t.alloc, newCapacity); err != nil {
		return err
	}

	newIndices := make([]int, newCapacity)
	for i := range newIndices {
		newIndices[i] = unused
	}

	t.indices = newIndices
	t.slots = newSlots
	t.capacity = newCapacity
	t.size = 0
	t.used = 0

	for i := 0; i < oldCapacity; i++ {
		pos := oldIndices[i]
		if pos == unused || pos == deleted {
			continue
		}

		s := oldSlots.At(pos)
		if err := t.rehashInsert(s.key, s.val, s.hash); err != nil {
			return err
		}
	}

	oldSlots.Dispose(t.alloc)

	return nil
}

// rehashInsert places a known-unique entry during resize: every probed
// slot is guaranteed empty or occupied by something that will
// eventually free up, never by the entry itself, so there is no
// equality check.
func (t *Table[K, V]) rehashInsert(key K, val V, hash uint64) error {
	p := newProbe(hash, t.capacity)
	offset := p.first()

	for t.indices[offset] != unused {
		offset = p.next()
	}

	idx, err := t.slots.EmplaceBack(t.alloc, Entry[K, V]{hash: hash, key: key, val: val})
	if err != nil {
		return err
	}

	t.indices[offset] = idx
	t.used++
	t.size++

	return nil
}

// insertWithHashCode probes for key, inserting val at the first unused
// slot it finds, or returning the existing position's index-array
// offset if key is already present. On allocation failure no index or
// slot is touched.
func (t *Table[K, V]) insertWithHashCode(key K, val V, hash uint64) (offset int, exists bool, err error) {
	p := newProbe(hash, t.capacity)
	offset = p.first()

	for {
		state := t.indices[offset]

		if state == unused {
			idx, allocErr := t.slots.EmplaceBack(t.alloc, Entry[K, V]{hash: hash, key: key, val: val})
			if allocErr != nil {
				return 0, false, allocErr
			}

			t.indices[offset] = idx
			t.used++
			t.size++

			return offset, false, nil
		}

		if state != deleted && t.checkEqual(hash, state, key) {
			return offset, true, nil
		}

		offset = p.next()
	}
}

func (t *Table[K, V]) findSlotByKeyAux(key K, hash uint64) int {
	p := newProbe(hash, t.capacity)
	offset := p.first()

	for {
		pos := t.indices[offset]
		if pos != deleted && (pos == unused || t.checkEqual(hash, pos, key)) {
			return offset
		}

		offset = p.next()
	}
}

func (t *Table[K, V]) findSlotByKey(key K) (offset int, found bool) {
	if t.capacity == 0 {
		return 0, false
	}

	off := t.findSlotByKeyAux(key, t.hash(key))
	if t.indices[off] == unused {
		return 0, false
	}

	return off, true
}

// Insert inserts key/val if key is not already present, reporting
// whether insertion happened. On allocation failure t is left
// unchanged and the error is returned.
func (t *Table[K, V]) Insert(key K, val V) (bool, error) {
	if err := t.growIfNeeded(); err != nil {
		return false, err
	}

	_, exists, err := t.insertWithHashCode(key, val, t.hash(key))
	if err != nil {
		return false, err
	}

	return !exists, nil
}

// TryEmplace inserts key/val only if key is absent. It returns the
// value now associated with key (the existing one on a no-op, val on
// insertion) and whether insertion happened.
func (t *Table[K, V]) TryEmplace(key K, val V) (V, bool, error) {
	if err := t.growIfNeeded(); err != nil {
		var zero V
		return zero, false, err
	}

	offset, exists, err := t.insertWithHashCode(key, val, t.hash(key))
	if err != nil {
		var zero V
		return zero, false, err
	}

	if exists {
		return t.slots.At(t.indices[offset]).val, false, nil
	}

	return val, true, nil
}

// InsertOrAssign inserts key/val, overwriting any existing value for
// key. It reports whether key was already present.
func (t *Table[K, V]) InsertOrAssign(key K, val V) (bool, error) {
	if err := t.growIfNeeded(); err != nil {
		return false, err
	}

	offset, exists, err := t.insertWithHashCode(key, val, t.hash(key))
	if err != nil {
		return false, err
	}

	if exists {
		s := t.slots.At(t.indices[offset])
		s.val = val
		t.slots.Set(t.indices[offset], s)

		return true, nil
	}

	return false, nil
}

// Find returns the value for key, and true, or the zero value and
// false.
func (t *Table[K, V]) Find(key K) (V, bool) {
	offset, ok := t.findSlotByKey(key)
	if !ok {
		var zero V
		return zero, false
	}

	return t.slots.At(t.indices[offset]).val, true
}

// At returns the value for key. It panics if key is absent.
func (t *Table[K, V]) At(key K) V {
	v, ok := t.Find(key)
	if !ok {
		panic("pyhash: At on missing key")
	}

	return v
}

// Contains reports whether key is present in t.
func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.findSlotByKey(key)
	return ok
}

// EraseKey tombstones key's slot if present, reporting whether it was.
// The underlying slot value is left alive until the next rehash, which
// is the only point a tombstoned slot's entry is actually destroyed.
func (t *Table[K, V]) EraseKey(key K) bool {
	offset, ok := t.findSlotByKey(key)
	if !ok {
		return false
	}

	t.indices[offset] = deleted
	t.size--

	return true
}

// Erase tombstones the entry at it, returning an iterator to the next
// live entry.
func (t *Table[K, V]) Erase(it Iterator[K, V]) Iterator[K, V] {
	if !it.Valid() {
		panic("pyhash: Erase on invalid iterator")
	}

	next := it.Next()
	t.indices[it.idx] = deleted
	t.size--

	return next
}

// Clear removes every entry from t, destroying the elements first,
// then dropping the indices side table, then releasing the slots'
// main storage back to alloc.
func (t *Table[K, V]) Clear() {
	t.slots.Clear(t.alloc)
	t.indices = nil
	t.slots.Dispose(t.alloc)
	t.capacity = 0
	t.size = 0
	t.used = 0
}

// Swap exchanges the contents of t and other in constant time.
func (t *Table[K, V]) Swap(other *Table[K, V]) {
	t.hash, other.hash = other.hash, t.hash
	t.eq, other.eq = other.eq, t.eq
	t.alloc, other.alloc = other.alloc, t.alloc
	t.indices, other.indices = other.indices, t.indices
	t.slots, other.slots = other.slots, t.slots
	t.size, other.size = other.size, t.size
	t.used, other.used = other.used, t.used
	t.capacity, other.capacity = other.capacity, t.capacity
}

// Range calls fn for each entry in probe-sequence order (the order
// [Table.Begin] iterates), stopping early if fn returns false.
func (t *Table[K, V]) Range(fn func(key K, val V) bool) {
	for it := t.Begin(); it.Valid(); it = it.Next() {
		if !fn(it.Key(), it.Value()) {
			return
		}
	}
}
