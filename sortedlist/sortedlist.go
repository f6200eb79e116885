package sortedlist

import (
	"github.com/student/leviathan/allocator"
	"github.com/student/leviathan/buffer"
)

// DefaultTruckSize is the source's default truck size T; a truck is
// split once it holds more than 2*T items.
const DefaultTruckSize = 1024

type truck[T any] struct {
	items *buffer.Buffer[T]
}

func newTruck[T any]() *truck[T] {
	return &truck[T]{items: buffer.New[T]()}
}

// List is an ordered sequence of unique keys, chunked into trucks of
// bounded size. The zero value is not usable; construct one with
// [New].
type List[T, K any] struct {
	less      func(a, b K) bool
	keyOf     func(T) K
	alloc     allocator.Allocator[T]
	trucks    []*truck[T]
	size      int
	truckSize int
}

// Option configures a [List] constructed via [New].
type Option[T, K any] func(*List[T, K])

// WithTruckSize overrides [DefaultTruckSize].
func WithTruckSize[T, K any](n int) Option[T, K] {
	if n <= 0 {
		panic("sortedlist: truck size must be positive")
	}

	return func(l *List[T, K]) { l.truckSize = n }
}

// New returns an empty [List] ordered by less over keys extracted from
// elements by keyOf, using alloc for every truck's backing storage.
func New[T, K any](less func(a, b K) bool, keyOf func(T) K, alloc allocator.Allocator[T], opts ...Option[T, K]) *List[T, K] {
	l := &List[T, K]{
		less:      less,
		keyOf:     keyOf,
		alloc:     alloc,
		truckSize: DefaultTruckSize,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Size returns the number of elements in l.
func (l *List[T, K]) Size() int { return l.size }

// Empty reports whether l has no elements.
func (l *List[T, K]) Empty() bool { return l.size == 0 }

// TruckCount returns the number of trucks currently allocated, mostly
// useful for tests asserting the split/merge invariant.
func (l *List[T, K]) TruckCount() int { return len(l.trucks) }

// locate returns the truck and in-truck index of the lower-bound
// position for key: the first position whose key is not less than
// key. found reports whether that position holds key exactly.
func (l *List[T, K]) locate(key K) (truckIdx, itemIdx int, found bool) {
	if len(l.trucks) == 0 {
		return 0, 0, false
	}

	lo, hi := 0, len(l.trucks)
	for lo < hi {
		mid := (lo + hi) / 2

		t := l.trucks[mid]
		truckMax := l.keyOf(t.items.At(t.items.Len() - 1))

		if l.less(truckMax, key) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo == len(l.trucks) {
		last := l.trucks[len(l.trucks)-1]
		return len(l.trucks) - 1, last.items.Len(), false
	}

	t := l.trucks[lo]

	ilo, ihi := 0, t.items.Len()
	for ilo < ihi {
		mid := (ilo + ihi) / 2
		if l.less(l.keyOf(t.items.At(mid)), key) {
			ilo = mid + 1
		} else {
			ihi = mid
		}
	}

	exists := ilo < t.items.Len() && !l.less(key, l.keyOf(t.items.At(ilo))) && !l.less(l.keyOf(t.items.At(ilo)), key)

	return lo, ilo, exists
}

// Find returns the element with the given key and true, or the zero
// value and false.
func (l *List[T, K]) Find(key K) (T, bool) {
	var zero T

	if l.Empty() {
		return zero, false
	}

	ti, ii, found := l.locate(key)
	if !found {
		return zero, false
	}

	return l.trucks[ti].items.At(ii), true
}

// Contains reports whether key is present in l.
func (l *List[T, K]) Contains(key K) bool {
	_, ok := l.Find(key)
	return ok
}

// Insert inserts v if its key is not already present, reporting
// whether insertion happened. On allocator failure l is left
// unchanged and the error is returned.
func (l *List[T, K]) Insert(v T) (bool, error) {
	key := l.keyOf(v)

	if len(l.trucks) == 0 {
		t := newTruck[T]()
		if err := t.items.PushBack(l.alloc, v); err != nil {
			return false, err
		}

		l.trucks = append(l.trucks, t)
		l.size++

		return true, nil
	}

	ti, ii, found := l.locate(key)
	if found {
		return false, nil
	}

	t := l.trucks[ti]
	if err := t.items.Insert(l.alloc, ii, v); err != nil {
		return false, err
	}

	l.size++
	l.expand(ti)

	return true, nil
}

// expand splits the truck at ti into two if it has grown beyond
// 2*truckSize, preserving order: the first truckSize items stay, the
// remainder move into a freshly inserted truck immediately after ti.
func (l *List[T, K]) expand(ti int) {
	t := l.trucks[ti]

	n := t.items.Len()
	if n <= 2*l.truckSize {
		return
	}

	half := newTruck[T]()
	for i := l.truckSize; i < n; i++ {
		half.items.PushBack(l.alloc, t.items.At(i))
	}

	t.items.EraseRange(l.alloc, l.truckSize, n)

	l.trucks = append(l.trucks, nil)
	copy(l.trucks[ti+2:], l.trucks[ti+1:])
	l.trucks[ti+1] = half
}

// merge removes the truck at ti if an erase left it empty, so no truck
// is ever empty; a truck that is merely underfull is left as it is, not
// folded into a neighbor.
func (l *List[T, K]) merge(ti int) {
	if l.trucks[ti].items.Len() > 0 {
		return
	}

	l.trucks = append(l.trucks[:ti], l.trucks[ti+1:]...)
}

// EraseKey removes key if present, reporting whether it was.
func (l *List[T, K]) EraseKey(key K) bool {
	if l.Empty() {
		return false
	}

	ti, ii, found := l.locate(key)
	if !found {
		return false
	}

	l.trucks[ti].items.Erase(l.alloc, ii)
	l.size--
	l.merge(ti)

	return true
}

// Range calls fn for each element in ascending key order, stopping
// early if fn returns false.
func (l *List[T, K]) Range(fn func(v T) bool) {
	for _, t := range l.trucks {
		cont := true

		t.items.Range(func(_ int, v T) bool {
			if !fn(v) {
				cont = false
				return false
			}

			return true
		})

		if !cont {
			return
		}
	}
}

// CheckInvariant reports whether every truck is non-empty, holds at
// most 2*truckSize items, is internally sorted, and truck maxima are
// non-decreasing across trucks. It exists for tests.
func (l *List[T, K]) CheckInvariant() bool {
	prevMax, havePrevMax := *new(K), false

	for _, t := range l.trucks {
		n := t.items.Len()
		if n == 0 || n > 2*l.truckSize {
			return false
		}

		for i := 1; i < n; i++ {
			if l.less(l.keyOf(t.items.At(i)), l.keyOf(t.items.At(i-1))) {
				return false
			}
		}

		max := l.keyOf(t.items.At(n - 1))
		if havePrevMax && l.less(max, prevMax) {
			return false
		}

		prevMax, havePrevMax = max, true
	}

	return true
}
