package skiplist_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student/leviathan/allocator"
	"github.com/student/leviathan/skiplist"
)

func intLess(a, b int) bool { return a < b }

func deterministic() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func newIntSkipList[V any](opts ...skiplist.Option[int, V]) *skiplist.SkipList[int, V] {
	return skiplist.New[int, V](intLess, allocator.NewStd[skiplist.Entry[int, V]](), opts...)
}

func TestInsertFindContains(t *testing.T) {
	t.Parallel()

	s := newIntSkipList[string](skiplist.WithSource[int, string](deterministic()))

	_, inserted, err := s.Insert(5, "five")
	require.NoError(t, err)
	assert.True(t, inserted)

	_, inserted, err = s.Insert(5, "also-five")
	require.NoError(t, err)
	assert.False(t, inserted)

	it, ok := s.Find(5)
	require.True(t, ok)
	assert.Equal(t, "five", it.Value())
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(6))
	assert.Equal(t, 1, s.Size())
}

func TestBottomLevelStaysSortedUnderRandomInsertOrder(t *testing.T) {
	t.Parallel()

	s := newIntSkipList[int](skiplist.WithSource[int, int](deterministic()))

	order := []int{50, 10, 90, 30, 70, 20, 80, 40, 60, 0}
	for _, k := range order {
		_, inserted, err := s.Insert(k, k*k)
		require.NoError(t, err)
		require.True(t, inserted)
	}

	assert.Equal(t, len(order), s.Size())

	var got []int
	for it := s.Begin(); it.Valid(); it = it.Next() {
		got = append(got, it.Key())
	}

	assert.Equal(t, []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}, got)

	for _, k := range order {
		it, ok := s.Find(k)
		require.True(t, ok)
		assert.Equal(t, k*k, it.Value())
	}
}

func TestIteratorWrapsEndToLastAndBack(t *testing.T) {
	t.Parallel()

	s := newIntSkipList[int](skiplist.WithSource[int, int](deterministic()))
	for _, k := range []int{1, 2, 3} {
		s.Insert(k, k)
	}

	end := s.End()
	assert.False(t, end.Valid())

	last := end.Prev()
	require.True(t, last.Valid())
	assert.Equal(t, 3, last.Key())
	assert.True(t, last.Next().Equal(end))
}

func TestEraseKeyUnlinksAcrossAllLevels(t *testing.T) {
	t.Parallel()

	s := newIntSkipList[int](skiplist.WithSource[int, int](deterministic()))
	for i := 0; i < 100; i++ {
		s.Insert(i, i)
	}

	for i := 0; i < 100; i += 2 {
		require.True(t, s.EraseKey(i))
	}

	assert.Equal(t, 50, s.Size())

	for i := 0; i < 100; i++ {
		assert.Equal(t, i%2 != 0, s.Contains(i), "key %d", i)
	}

	var got []int
	for it := s.Begin(); it.Valid(); it = it.Next() {
		got = append(got, it.Key())
	}

	require.Len(t, got, 50)

	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i])
	}
}

func TestCurrentLevelShrinksAfterEmptyingTopLevels(t *testing.T) {
	t.Parallel()

	s := newIntSkipList[int](skiplist.WithSource[int, int](deterministic()))
	for i := 0; i < 64; i++ {
		s.Insert(i, i)
	}

	topBefore := s.CurrentLevel()
	require.Greater(t, topBefore, 1)

	for i := 0; i < 64; i++ {
		s.EraseKey(i)
	}

	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 1, s.CurrentLevel())
}

func TestLowerBound(t *testing.T) {
	t.Parallel()

	s := newIntSkipList[int](skiplist.WithSource[int, int](deterministic()))
	for _, k := range []int{10, 20, 30, 40} {
		s.Insert(k, k)
	}

	lb := s.LowerBound(25)
	require.True(t, lb.Valid())
	assert.Equal(t, 30, lb.Key())

	assert.False(t, s.LowerBound(41).Valid())
}

func TestEraseRangeFullClearsAndPartialSplices(t *testing.T) {
	t.Parallel()

	s := newIntSkipList[int](skiplist.WithSource[int, int](deterministic()))
	for i := 1; i <= 10; i++ {
		s.Insert(i, i)
	}

	first := s.LowerBound(3)
	last := s.LowerBound(7)
	s.EraseRange(first, last)

	var got []int
	for it := s.Begin(); it.Valid(); it = it.Next() {
		got = append(got, it.Key())
	}

	assert.Equal(t, []int{1, 2, 7, 8, 9, 10}, got)

	s.EraseRange(s.Begin(), s.End())
	assert.True(t, s.Empty())
}

func TestRandomLevelRespectsMaxLevel(t *testing.T) {
	t.Parallel()

	s := newIntSkipList[int](
		skiplist.WithMaxLevel[int, int](4),
		skiplist.WithRatio[int, int](2),
		skiplist.WithSource[int, int](rand.New(rand.NewPCG(1, 1))),
	)

	for i := 0; i < 1000; i++ {
		s.Insert(i, i)
	}

	assert.LessOrEqual(t, s.CurrentLevel(), 4)
}

func TestWithRatioPanicsOnInvalidValue(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		newIntSkipList[int](skiplist.WithRatio[int, int](1))
	})
}

func TestAllocationFailureLeavesSkipListUnchanged(t *testing.T) {
	t.Parallel()

	shared := allocator.NewShared()
	alloc := allocator.NewChecked[skiplist.Entry[int, int]](1, shared)

	s := skiplist.New[int, int](intLess, alloc, skiplist.WithSource[int, int](deterministic()))

	_, inserted, err := s.Insert(1, 1)
	require.NoError(t, err)
	require.True(t, inserted)

	shared.FailAfter(0)

	_, inserted, err = s.Insert(2, 2)
	require.Error(t, err)
	assert.False(t, inserted)
	assert.Equal(t, 1, s.Size())
	assert.False(t, s.Contains(2))
}

func TestEraseAndClearReleaseThroughAllocator(t *testing.T) {
	t.Parallel()

	shared := allocator.NewShared()
	alloc := allocator.NewChecked[skiplist.Entry[int, int]](1, shared)

	s := skiplist.New[int, int](intLess, alloc, skiplist.WithSource[int, int](deterministic()))
	for i := 0; i < 5; i++ {
		s.Insert(i, i)
	}

	assert.Equal(t, int64(5), shared.Outstanding())

	s.EraseKey(0)
	assert.Equal(t, int64(4), shared.Outstanding())

	s.Clear()
	assert.Equal(t, int64(0), shared.Outstanding())
}
