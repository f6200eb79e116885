package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student/leviathan/convert"
	"github.com/student/leviathan/json"
	"github.com/student/leviathan/toml"
)

func TestToJSONScalars(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   toml.Value
		want json.Value
	}{
		{"boolean", toml.Boolean(true), json.Bool(true)},
		{"integer", toml.Integer(7), json.Int(7)},
		{"float", toml.Float(2.5), json.Float(2.5)},
		{"string", toml.String("hi"), json.String("hi")},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tc.want.Equal(convert.ToJSON(tc.in)))
		})
	}
}

func TestToJSONDatetimeBecomesString(t *testing.T) {
	t.Parallel()

	v, err := toml.Parse("d = 1979-05-27T07:32:00Z\n")
	require.NoError(t, err)

	d, ok := v.Field("d")
	require.True(t, ok)

	jv := convert.ToJSON(d)
	require.True(t, jv.IsString())

	s, _ := jv.AsString()
	assert.Equal(t, "1979-05-27T07:32:00Z", s)
}

func TestToJSONArrayAndTable(t *testing.T) {
	t.Parallel()

	tv := toml.TableValue(map[string]toml.Value{
		"nums": toml.ArrayValue([]toml.Value{toml.Integer(1), toml.Integer(2)}, true),
		"name": toml.String("widget"),
	})

	jv := convert.ToJSON(tv)
	require.True(t, jv.IsObject())

	nums, ok := jv.Field("nums")
	require.True(t, ok)

	elems, ok := nums.AsArray()
	require.True(t, ok)
	require.Len(t, elems, 2)

	name, ok := jv.Field("name")
	require.True(t, ok)
	ns, _ := name.AsString()
	assert.Equal(t, "widget", ns)
}

func TestToTOMLNullBecomesStringNull(t *testing.T) {
	t.Parallel()

	tv := convert.ToTOML(json.Null())
	require.True(t, tv.IsString())

	s, _ := tv.AsString()
	assert.Equal(t, "null", s)
}

func TestToTOMLScalarsAndContainers(t *testing.T) {
	t.Parallel()

	jv := json.Object(map[string]json.Value{
		"flag": json.Bool(true),
		"list": json.Array(json.Int(1), json.Float(1.5)),
	})

	tv := convert.ToTOML(jv)
	require.True(t, tv.IsTable())

	flag, ok := tv.Field("flag")
	require.True(t, ok)
	fb, _ := flag.AsBoolean()
	assert.True(t, fb)

	list, ok := tv.Field("list")
	require.True(t, ok)

	arr, ok := list.AsArray()
	require.True(t, ok)
	require.Len(t, arr.Elems(), 2)

	first, _ := arr.Elems()[0].AsInteger()
	assert.EqualValues(t, 1, first)

	second, _ := arr.Elems()[1].AsFloat()
	assert.InDelta(t, 1.5, second, 1e-9)
}

func TestRoundTripTOMLViaJSON(t *testing.T) {
	t.Parallel()

	src := "name = \"widget\"\ncount = 3\nnested = { a = 1 }\n"

	original, err := toml.Parse(src)
	require.NoError(t, err)

	roundTripped := convert.ToTOML(convert.ToJSON(original))

	assert.True(t, original.Equal(roundTripped),
		"round trip through json must preserve structure for a document with no null/datetime")
}
