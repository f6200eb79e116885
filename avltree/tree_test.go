package avltree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student/leviathan/allocator"
	"github.com/student/leviathan/avltree"
)

func intLess(a, b int) bool { return a < b }

func newIntTree[V any]() *avltree.Tree[int, V] {
	return avltree.New[int, V](intLess, allocator.NewStd[avltree.Entry[int, V]]())
}

func inorderKeys(t *avltree.Tree[int, string]) []int {
	keys := make([]int, 0, t.Size())
	for it := t.Begin(); it.Valid(); it = it.Next() {
		keys = append(keys, it.Key())
	}

	return keys
}

func TestInsertFindContains(t *testing.T) {
	t.Parallel()

	tr := newIntTree[string]()

	_, inserted, err := tr.Insert(5, "five")
	require.NoError(t, err)
	assert.True(t, inserted)

	_, inserted, err = tr.Insert(5, "also-five")
	require.NoError(t, err)
	assert.False(t, inserted, "duplicate key must not insert")

	it, ok := tr.Find(5)
	require.True(t, ok)
	assert.Equal(t, "five", it.Value())
	assert.True(t, tr.Contains(5))
	assert.False(t, tr.Contains(6))
	assert.Equal(t, 1, tr.Size())
}

// TestInsertEraseScenario exercises the spec's concrete AVL scenario:
// insert [5,3,8,1,4,7,9,6], erase 5, then assert in-order traversal
// and the height-balance invariant at every node.
func TestInsertEraseScenario(t *testing.T) {
	t.Parallel()

	tr := newIntTree[string]()

	for _, k := range []int{5, 3, 8, 1, 4, 7, 9, 6} {
		_, inserted, err := tr.Insert(k, "")
		require.NoError(t, err)
		require.True(t, inserted)
		assert.True(t, tr.CheckInvariant(), "unbalanced after inserting %d", k)
	}

	assert.True(t, tr.EraseKey(5))
	assert.True(t, tr.CheckInvariant(), "unbalanced after erasing 5")

	assert.Equal(t, []int{1, 3, 4, 6, 7, 8, 9}, inorderKeys(tr))
	assert.Equal(t, 7, tr.Size())
}

func TestBalanceInvariantUnderSequentialInsert(t *testing.T) {
	t.Parallel()

	tr := newIntTree[int]()

	for i := 0; i < 500; i++ {
		_, inserted, err := tr.Insert(i, i*i)
		require.NoError(t, err)
		require.True(t, inserted)
		require.True(t, tr.CheckInvariant(), "unbalanced after inserting %d", i)
	}

	assert.Equal(t, 500, tr.Size())

	for i := 0; i < 500; i++ {
		it, ok := tr.Find(i)
		require.True(t, ok)
		assert.Equal(t, i*i, it.Value())
	}
}

func TestBalanceInvariantUnderRandomErase(t *testing.T) {
	t.Parallel()

	tr := newIntTree[int]()
	for i := 0; i < 200; i++ {
		tr.Insert(i, i)
	}

	// Erase every third key in a pattern that forces both leaf removals
	// and two-child removals requiring successor promotion.
	for i := 0; i < 200; i += 3 {
		require.True(t, tr.EraseKey(i))
		require.True(t, tr.CheckInvariant(), "unbalanced after erasing %d", i)
	}

	assert.Equal(t, 200-len(rangeStep(0, 200, 3)), tr.Size())

	for i := 0; i < 200; i++ {
		want := i%3 != 0
		assert.Equal(t, want, tr.Contains(i), "key %d", i)
	}
}

func rangeStep(start, stop, step int) []int {
	var out []int
	for i := start; i < stop; i += step {
		out = append(out, i)
	}

	return out
}

func TestLowerUpperBoundAndEqualRange(t *testing.T) {
	t.Parallel()

	tr := newIntTree[int]()
	for _, k := range []int{10, 20, 30, 40} {
		tr.Insert(k, k)
	}

	lb := tr.LowerBound(25)
	require.True(t, lb.Valid())
	assert.Equal(t, 30, lb.Key())

	ub := tr.UpperBound(30)
	require.True(t, ub.Valid())
	assert.Equal(t, 40, ub.Key())

	first, last := tr.EqualRange(20)
	assert.Equal(t, 20, first.Key())
	assert.Equal(t, 30, last.Key())

	assert.False(t, tr.UpperBound(40).Valid(), "upper bound of max key is end()")
}

func TestIteratorWrapsFromEndToRbeginAndBack(t *testing.T) {
	t.Parallel()

	tr := newIntTree[int]()
	for _, k := range []int{1, 2, 3} {
		tr.Insert(k, k)
	}

	end := tr.End()
	assert.False(t, end.Valid())

	last := end.Prev()
	require.True(t, last.Valid())
	assert.Equal(t, 3, last.Key())

	assert.True(t, last.Next().Equal(end))

	begin := tr.Begin()
	assert.Equal(t, 1, begin.Key())
}

func TestEraseRange(t *testing.T) {
	t.Parallel()

	tr := newIntTree[int]()
	for i := 1; i <= 10; i++ {
		tr.Insert(i, i)
	}

	first := tr.LowerBound(3)
	last := tr.LowerBound(7)
	tr.EraseRange(first, last)

	got := make([]int, 0, tr.Size())
	for it := tr.Begin(); it.Valid(); it = it.Next() {
		got = append(got, it.Key())
	}

	assert.Equal(t, []int{1, 2, 7, 8, 9, 10}, got)
}

func TestExtractAndInsertNodeMovesBetweenTrees(t *testing.T) {
	t.Parallel()

	src := newIntTree[string]()
	src.Insert(1, "a")
	src.Insert(2, "b")
	src.Insert(3, "c")

	it, ok := src.Find(2)
	require.True(t, ok)

	handle := src.Extract(it)
	assert.False(t, handle.Empty())
	assert.Equal(t, 2, handle.Key())
	assert.Equal(t, "b", handle.Value())
	assert.False(t, src.Contains(2))
	assert.Equal(t, 2, src.Size())
	assert.True(t, src.CheckInvariant())

	dst := newIntTree[string]()
	dst.Insert(10, "x")

	resultIt, inserted := dst.InsertNode(handle)
	assert.True(t, inserted)
	assert.Equal(t, "b", resultIt.Value())
	assert.True(t, dst.Contains(2))
	assert.Equal(t, 2, dst.Size())
	assert.True(t, dst.CheckInvariant())
}

func TestInsertNodeDuplicateKeyFails(t *testing.T) {
	t.Parallel()

	src := newIntTree[string]()
	src.Insert(1, "a")
	src.Insert(2, "b")

	it, _ := src.Find(2)
	handle := src.Extract(it)

	dst := newIntTree[string]()
	dst.Insert(2, "existing")

	_, inserted := dst.InsertNode(handle)
	assert.False(t, inserted)

	handle.Dispose()
}

func TestClearAndSwap(t *testing.T) {
	t.Parallel()

	a := newIntTree[int]()
	a.Insert(1, 1)
	a.Insert(2, 2)

	b := newIntTree[int]()
	b.Insert(9, 9)

	a.Swap(b)
	assert.Equal(t, 1, a.Size())
	assert.Equal(t, 2, b.Size())
	assert.True(t, a.Contains(9))
	assert.True(t, b.Contains(1))

	a.Clear()
	assert.True(t, a.Empty())
	assert.Equal(t, 0, a.Size())
}

func TestFindFuncTransparentLookup(t *testing.T) {
	t.Parallel()

	tr := avltree.New[string, int](func(a, b string) bool { return a < b }, allocator.NewStd[avltree.Entry[string, int]]())
	tr.Insert("apple", 1)
	tr.Insert("banana", 2)
	tr.Insert("cherry", 3)

	it, ok := tr.FindFunc(func(k string) int {
		switch {
		case "banana" < k:
			return -1
		case "banana" > k:
			return 1
		default:
			return 0
		}
	})
	require.True(t, ok)
	assert.Equal(t, 2, it.Value())

	_, ok = tr.FindFunc(func(k string) int {
		switch {
		case "missing" < k:
			return -1
		case "missing" > k:
			return 1
		default:
			return 0
		}
	})
	assert.False(t, ok)
}

func TestEmplaceHintSequentialInsertStaysBalanced(t *testing.T) {
	t.Parallel()

	tr := newIntTree[int]()

	hint := tr.End()
	for i := 0; i < 100; i++ {
		it, inserted, err := tr.EmplaceHint(hint, i, i)
		require.NoError(t, err)
		require.True(t, inserted)

		hint = it.Next()
	}

	assert.True(t, tr.CheckInvariant())
	assert.Equal(t, 100, tr.Size())

	for i := 0; i < 100; i++ {
		it, ok := tr.Find(i)
		require.True(t, ok)
		assert.Equal(t, i, it.Value())
	}
}

func TestAllocationFailureLeavesTreeUnchanged(t *testing.T) {
	t.Parallel()

	shared := allocator.NewShared()
	alloc := allocator.NewChecked[avltree.Entry[int, int]](1, shared)

	tr := avltree.New[int, int](intLess, alloc)
	_, inserted, err := tr.Insert(1, 1)
	require.NoError(t, err)
	require.True(t, inserted)

	shared.FailAfter(0)

	_, inserted, err = tr.Insert(2, 2)
	require.Error(t, err)
	assert.False(t, inserted)
	assert.Equal(t, 1, tr.Size())
	assert.False(t, tr.Contains(2))
}

func TestExtractEraseClearReleaseThroughAllocator(t *testing.T) {
	t.Parallel()

	shared := allocator.NewShared()
	alloc := allocator.NewChecked[avltree.Entry[int, int]](1, shared)

	tr := avltree.New[int, int](intLess, alloc)
	for i := 0; i < 5; i++ {
		tr.Insert(i, i)
	}

	assert.Equal(t, int64(5), shared.Outstanding())

	tr.EraseKey(0)
	assert.Equal(t, int64(4), shared.Outstanding())

	it, _ := tr.Find(1)
	handle := tr.Extract(it)
	assert.Equal(t, int64(4), shared.Outstanding(), "extract reuses the node's storage rather than freeing it")

	handle.Dispose()
	assert.Equal(t, int64(3), shared.Outstanding())

	tr.Clear()
	assert.Equal(t, int64(0), shared.Outstanding())
}
