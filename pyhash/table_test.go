package pyhash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student/leviathan/allocator"
	"github.com/student/leviathan/pyhash"
)

func intHash(k int) uint64 { return uint64(k) * 2654435761 }
func intEq(a, b int) bool  { return a == b }

func newTable() *pyhash.Table[int, string] {
	return pyhash.New[int, string](intHash, intEq, allocator.NewStd[pyhash.Entry[int, string]]())
}

func TestInsertFindContains(t *testing.T) {
	t.Parallel()

	tb := newTable()

	inserted, err := tb.Insert(5, "five")
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = tb.Insert(5, "also-five")
	require.NoError(t, err)
	assert.False(t, inserted, "duplicate key must not insert")

	v, ok := tb.Find(5)
	require.True(t, ok)
	assert.Equal(t, "five", v)
	assert.True(t, tb.Contains(5))
	assert.False(t, tb.Contains(6))
	assert.Equal(t, 1, tb.Size())
}

// TestInsertGrowthAndContainsThroughout exercises the spec's concrete
// hash-table scenario: insert 0..N, asserting size/contains hold at
// every step, and observe that capacity grows (rehashes) along the
// way.
func TestInsertGrowthAndContainsThroughout(t *testing.T) {
	t.Parallel()

	tb := newTable()

	const n = 200

	capacities := map[int]bool{}

	for i := 0; i < n; i++ {
		inserted, err := tb.Insert(i, "v")
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.Equal(t, i+1, tb.Size())

		for j := 0; j <= i; j++ {
			require.True(t, tb.Contains(j), "missing %d after inserting up to %d", j, i)
		}

		capacities[tb.Capacity()] = true
	}

	assert.Greater(t, len(capacities), 1, "expected at least one rehash growing capacity")
	assert.LessOrEqual(t, float64(n)/float64(tb.Capacity()), 2.0/3.0+1e-9)
}

func TestEraseTombstonesWithoutReclaimingUntilRehash(t *testing.T) {
	t.Parallel()

	tb := newTable()
	for i := 0; i < 20; i++ {
		tb.Insert(i, "v")
	}

	capBefore := tb.Capacity()

	for i := 0; i < 20; i += 2 {
		require.True(t, tb.EraseKey(i))
	}

	assert.Equal(t, 10, tb.Size())
	assert.Equal(t, capBefore, tb.Capacity(), "erase alone must not trigger a rehash")

	for i := 0; i < 20; i++ {
		assert.Equal(t, i%2 != 0, tb.Contains(i), "key %d", i)
	}
}

func TestIterationCoversEveryLiveEntry(t *testing.T) {
	t.Parallel()

	tb := newTable()
	want := map[int]string{1: "a", 2: "b", 3: "c"}

	for k, v := range want {
		tb.Insert(k, v)
	}

	got := map[int]string{}
	for it := tb.Begin(); it.Valid(); it = it.Next() {
		got[it.Key()] = it.Value()
	}

	assert.Equal(t, want, got)
}

func TestEraseByIterator(t *testing.T) {
	t.Parallel()

	tb := newTable()
	tb.Insert(1, "a")
	tb.Insert(2, "b")

	it := tb.Begin()
	for it.Valid() && it.Key() != 1 {
		it = it.Next()
	}
	require.True(t, it.Valid())

	_ = tb.Erase(it)
	assert.Equal(t, 1, tb.Size())
	assert.False(t, tb.Contains(1))
	assert.True(t, tb.Contains(2))
}

func TestTryEmplaceAndInsertOrAssign(t *testing.T) {
	t.Parallel()

	tb := newTable()

	v, inserted, err := tb.TryEmplace(1, "a")
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, "a", v)

	v, inserted, err = tb.TryEmplace(1, "b")
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, "a", v, "TryEmplace must not overwrite an existing entry")

	existed, err := tb.InsertOrAssign(1, "c")
	require.NoError(t, err)
	assert.True(t, existed)

	v, _ = tb.Find(1)
	assert.Equal(t, "c", v)

	existed, err = tb.InsertOrAssign(2, "d")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestAtPanicsOnMissingKey(t *testing.T) {
	t.Parallel()

	tb := newTable()
	assert.Panics(t, func() { tb.At(99) })
}

func TestSwap(t *testing.T) {
	t.Parallel()

	a := newTable()
	a.Insert(1, "a")

	b := newTable()
	b.Insert(2, "b")
	b.Insert(3, "c")

	a.Swap(b)

	assert.Equal(t, 2, a.Size())
	assert.Equal(t, 1, b.Size())
	assert.True(t, a.Contains(2))
	assert.True(t, b.Contains(1))
}

func TestClear(t *testing.T) {
	t.Parallel()

	tb := newTable()
	for i := 0; i < 10; i++ {
		tb.Insert(i, "v")
	}

	tb.Clear()
	assert.True(t, tb.Empty())
	assert.Equal(t, 0, tb.Capacity())
	assert.False(t, tb.Contains(0))
}

func TestAllocationFailureLeavesTableUnchanged(t *testing.T) {
	t.Parallel()

	shared := allocator.NewShared()
	alloc := allocator.NewChecked[pyhash.Entry[int, string]](1, shared)

	tb := pyhash.New[int, string](intHash, intEq, alloc)

	// The very first insert triggers the initial resize, which is the
	// only Allocate call a table with no prior entries has made.
	shared.FailAfter(0)

	inserted, err := tb.Insert(1, "a")
	require.Error(t, err)
	assert.False(t, inserted)
	assert.Equal(t, 0, tb.Size())
	assert.Equal(t, 0, tb.Capacity())
	assert.False(t, tb.Contains(1))
}

func TestClearReleasesThroughAllocator(t *testing.T) {
	t.Parallel()

	shared := allocator.NewShared()
	alloc := allocator.NewChecked[pyhash.Entry[int, string]](1, shared)

	tb := pyhash.New[int, string](intHash, intEq, alloc)
	for i := 0; i < 10; i++ {
		tb.Insert(i, "v")
	}

	// Outstanding tracks allocated slot capacity, not live element
	// count: each rehash reserves the slots buffer at the table's index
	// capacity and releases the old one.
	assert.Equal(t, int64(tb.Capacity()), shared.Outstanding())

	tb.Clear()
	assert.Equal(t, int64(0), shared.Outstanding())
}
