package sortedlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student/leviathan/allocator"
	"github.com/student/leviathan/sortedlist"
)

func intIdentity(v int) int { return v }

func newList(opts ...sortedlist.Option[int, int]) *sortedlist.List[int, int] {
	return sortedlist.New[int, int](func(a, b int) bool { return a < b }, intIdentity, allocator.NewStd[int](), opts...)
}

func TestInsertFindContains(t *testing.T) {
	t.Parallel()

	l := newList()

	ok, err := l.Insert(5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Insert(5)
	require.NoError(t, err)
	assert.False(t, ok, "duplicate key must not insert")

	v, ok := l.Find(5)
	require.True(t, ok)
	assert.Equal(t, 5, v)
	assert.True(t, l.Contains(5))
	assert.False(t, l.Contains(6))
	assert.Equal(t, 1, l.Size())
}

func TestInsertMaintainsOrderAcrossTrucks(t *testing.T) {
	t.Parallel()

	l := newList(sortedlist.WithTruckSize[int, int](4))

	order := []int{50, 10, 90, 30, 70, 20, 80, 40, 60, 0, 15, 25, 35, 45, 55, 65}
	for _, k := range order {
		ok, err := l.Insert(k)
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, l.CheckInvariant(), "invariant broken after inserting %d", k)
	}

	assert.Equal(t, len(order), l.Size())
	assert.Greater(t, l.TruckCount(), 1, "expected at least one split with truck size 4")

	var got []int
	for it := l.Begin(); it.Valid(); it = it.Next() {
		got = append(got, it.Value())
	}

	assert.Equal(t, []int{0, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60, 65, 70, 80, 90}, got)
}

func TestSplitBoundary(t *testing.T) {
	t.Parallel()

	l := newList(sortedlist.WithTruckSize[int, int](4))

	for i := 0; i < 9; i++ {
		ok, err := l.Insert(i)
		require.NoError(t, err)
		require.True(t, ok)
	}

	assert.True(t, l.CheckInvariant())
	assert.Equal(t, 9, l.Size())
}

func TestEraseKeepsInvariantAndMergesEmptyTrucks(t *testing.T) {
	t.Parallel()

	l := newList(sortedlist.WithTruckSize[int, int](4))
	for i := 0; i < 40; i++ {
		_, err := l.Insert(i)
		require.NoError(t, err)
	}

	for i := 0; i < 40; i += 2 {
		require.True(t, l.EraseKey(i))
		require.True(t, l.CheckInvariant(), "invariant broken after erasing %d", i)
	}

	assert.Equal(t, 20, l.Size())

	for i := 0; i < 40; i++ {
		assert.Equal(t, i%2 != 0, l.Contains(i), "key %d", i)
	}
}

func TestEraseKeyMissingReturnsFalse(t *testing.T) {
	t.Parallel()

	l := newList()
	_, err := l.Insert(1)
	require.NoError(t, err)

	assert.False(t, l.EraseKey(99))
}

func TestIteratorWrapsEndToLastAndBack(t *testing.T) {
	t.Parallel()

	l := newList(sortedlist.WithTruckSize[int, int](4))
	for _, k := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9} {
		_, err := l.Insert(k)
		require.NoError(t, err)
	}

	end := l.End()
	assert.False(t, end.Valid())

	last := end.Prev()
	require.True(t, last.Valid())
	assert.Equal(t, 9, last.Value())
}

func TestRange(t *testing.T) {
	t.Parallel()

	l := newList(sortedlist.WithTruckSize[int, int](4))
	for i := 0; i < 20; i++ {
		_, err := l.Insert(i)
		require.NoError(t, err)
	}

	var got []int

	l.Range(func(v int) bool {
		got = append(got, v)
		return v < 10
	})

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, got, "Range must stop as soon as fn returns false")
}
