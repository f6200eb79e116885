package convert

import (
	"github.com/student/leviathan/json"
	"github.com/student/leviathan/toml"
)

// ToJSON folds a TOML value into the JSON value model: boolean/string
// pass through, integer/float become the matching json.Number subkind,
// array/table become json array/object, and datetime becomes its RFC
// 3339 string rendering.
func ToJSON(tv toml.Value) json.Value {
	var out json.Value

	tv.Visit(toml.Visitor{
		Boolean: func(b bool) { out = json.Bool(b) },
		Integer: func(i int64) { out = json.Int(i) },
		Float:   func(f float64) { out = json.Float(f) },
		String:  func(s string) { out = json.String(s) },
		Array: func(a *toml.Array) {
			elems := make([]json.Value, 0, len(a.Elems()))
			for _, e := range a.Elems() {
				elems = append(elems, ToJSON(e))
			}

			out = json.Array(elems...)
		},
		Table: func(t *toml.Table) {
			fields := make(map[string]json.Value, len(t.Fields()))
			for k, v := range t.Fields() {
				fields[k] = ToJSON(v)
			}

			out = json.Object(fields)
		},
		Datetime: func(dt toml.DateTime) { out = json.String(dt.String()) },
	})

	return out
}

// ToTOML folds a JSON value into the TOML value model: null becomes
// the string "null" (TOML has no null alternative), boolean/string pass
// through, a number picks the TOML integer or float alternative
// matching its subkind, array becomes a locked (non-table-array) TOML
// array, and object becomes a non-inline TOML table.
func ToTOML(jv json.Value) toml.Value {
	var out toml.Value

	jv.Visit(json.Visitor{
		Null: func() { out = toml.String("null") },
		Bool: func(b bool) { out = toml.Boolean(b) },
		Number: func(n json.Number) {
			if n.IsFloat() {
				out = toml.Float(n.AsFloat64())
			} else {
				out = toml.Integer(n.AsInt64())
			}
		},
		String: func(s string) { out = toml.String(s) },
		Array: func(elems []json.Value) {
			items := make([]toml.Value, 0, len(elems))
			for _, e := range elems {
				items = append(items, ToTOML(e))
			}

			out = toml.ArrayValue(items, true)
		},
		Object: func(fields map[string]json.Value) {
			members := make(map[string]toml.Value, len(fields))
			for k, v := range fields {
				members[k] = ToTOML(v)
			}

			out = toml.TableValue(members)
		},
		Error: func(ec json.ErrorCode) { out = toml.String("null") },
	})

	return out
}
