package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/student/leviathan/value"
)

type small struct {
	a, b int32
}

type large struct {
	a, b, c, d int64
}

func TestShouldBox(t *testing.T) {
	t.Parallel()

	assert.False(t, value.ShouldBox[bool]())
	assert.False(t, value.ShouldBox[int64]())
	assert.False(t, value.ShouldBox[string]())
	assert.False(t, value.ShouldBox[small]())
	assert.True(t, value.ShouldBox[large]())
}

func TestBoxGetSet(t *testing.T) {
	t.Parallel()

	b := value.NewBox(large{a: 1})
	assert.True(t, b.Valid())
	assert.Equal(t, int64(1), b.Get().a)

	b.Set(large{a: 2})
	assert.Equal(t, int64(2), b.Get().a)
}

func TestBoxSharesBackingPointer(t *testing.T) {
	t.Parallel()

	b1 := value.NewBox(large{a: 1})
	b2 := b1 // copy: both should observe mutation through either handle

	b2.Ptr().a = 99
	assert.Equal(t, int64(99), b1.Get().a)
}

func TestBoxCloneIsIndependent(t *testing.T) {
	t.Parallel()

	b1 := value.NewBox(large{a: 1})
	b2 := b1.Clone()

	b2.Ptr().a = 99
	assert.Equal(t, int64(1), b1.Get().a)
	assert.Equal(t, int64(99), b2.Get().a)
}

func TestEmptyBoxPanics(t *testing.T) {
	t.Parallel()

	var b value.Box[large]
	assert.False(t, b.Valid())
	assert.Panics(t, func() { b.Get() })
}
