package toml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student/leviathan/toml"
)

func TestValueConstructorsAndAccessors(t *testing.T) {
	t.Parallel()

	b := toml.Boolean(true)
	bv, ok := b.AsBoolean()
	require.True(t, ok)
	assert.True(t, bv)

	i := toml.Integer(42)
	iv, ok := i.AsInteger()
	require.True(t, ok)
	assert.EqualValues(t, 42, iv)

	f := toml.Float(3.5)
	fv, ok := f.AsFloat()
	require.True(t, ok)
	assert.InDelta(t, 3.5, fv, 1e-9)

	s := toml.String("hi")
	sv, ok := s.AsString()
	require.True(t, ok)
	assert.Equal(t, "hi", sv)

	arr := toml.ArrayValue([]toml.Value{toml.Integer(1), toml.Integer(2)}, true)
	a, ok := arr.AsArray()
	require.True(t, ok)
	assert.True(t, a.IsArray())
	assert.False(t, a.IsTableArray())
	assert.Len(t, a.Elems(), 2)

	tbl := toml.TableValue(map[string]toml.Value{"x": toml.Integer(1)})
	tv, ok := tbl.AsTable()
	require.True(t, ok)
	assert.False(t, tv.IsInlineTable())

	inl := toml.InlineTableValue(map[string]toml.Value{"x": toml.Integer(1)})
	iv2, ok := inl.AsTable()
	require.True(t, ok)
	assert.True(t, iv2.IsInlineTable())
}

func TestValueFieldAndPath(t *testing.T) {
	t.Parallel()

	inner := toml.TableValue(map[string]toml.Value{"b": toml.Integer(9)})
	root := toml.TableValue(map[string]toml.Value{"a": inner})

	v, ok := root.Path("a", "b")
	require.True(t, ok)

	iv, ok := v.AsInteger()
	require.True(t, ok)
	assert.EqualValues(t, 9, iv)

	_, ok = root.Path("a", "missing")
	assert.False(t, ok)
}

func TestValueIndex(t *testing.T) {
	t.Parallel()

	arr := toml.ArrayValue([]toml.Value{toml.String("x"), toml.String("y")}, true)

	v, ok := arr.Index(1)
	require.True(t, ok)

	s, _ := v.AsString()
	assert.Equal(t, "y", s)

	_, ok = arr.Index(5)
	assert.False(t, ok)
}

func TestValueEqual(t *testing.T) {
	t.Parallel()

	a := toml.TableValue(map[string]toml.Value{"x": toml.ArrayValue([]toml.Value{toml.Integer(1), toml.Float(2.5)}, true)})
	b := toml.TableValue(map[string]toml.Value{"x": toml.ArrayValue([]toml.Value{toml.Integer(1), toml.Float(2.5)}, true)})
	assert.True(t, a.Equal(b))

	c := toml.TableValue(map[string]toml.Value{"x": toml.ArrayValue([]toml.Value{toml.Integer(1), toml.Float(2.6)}, true)})
	assert.False(t, a.Equal(c))

	assert.False(t, toml.Integer(1).Equal(toml.Float(1)), "cross-kind values are never equal")
}

func TestValueVisit(t *testing.T) {
	t.Parallel()

	var sawInteger, sawTable bool

	toml.Integer(7).Visit(toml.Visitor{
		Integer: func(i int64) { sawInteger = true; assert.EqualValues(t, 7, i) },
	})
	assert.True(t, sawInteger)

	toml.TableValue(nil).Visit(toml.Visitor{
		Table: func(tbl *toml.Table) { sawTable = true },
	})
	assert.True(t, sawTable)
}
