package toml

import "github.com/student/leviathan/value"

// Kind is the tag of the alternative a [Value] currently holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindArray
	KindTable
	KindDatetime
)

// Table is a TOML table: a string-keyed mapping plus the two flags the
// grammar needs to track across a document. It is always handled
// through a pointer so the flags a [Collector] flips after
// construction (defining a super-table, locking an inline table) are
// visible through every Value that references the same table.
//
// Grounded on
// original_source/leviathan/config_parser/toml/table.hpp's
// toml_table_base (m_locked/m_defined).
type Table struct {
	fields  map[string]Value
	locked  bool // inline table: frozen, cannot be extended afterward
	defined bool // explicitly declared via [section], vs. implicit from a dotted key
}

func newTable() *Table {
	return &Table{fields: map[string]Value{}}
}

// IsInlineTable reports whether t was written as `{ ... }`.
func (t *Table) IsInlineTable() bool { return t.locked }

// IsDefined reports whether t was explicitly declared with `[section]`.
func (t *Table) IsDefined() bool { return t.defined }

// Fields returns t's members. The returned map is shared with t.
func (t *Table) Fields() map[string]Value { return t.fields }

// Get returns the member named key and whether it was present.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.fields[key]
	return v, ok
}

// Array is a TOML array: an ordered sequence of Values plus the flag
// distinguishing a static/inline array from a growable array-of-tables
// target.
//
// Grounded on
// original_source/leviathan/config_parser/toml/array.hpp's
// toml_array_base (m_locked).
type Array struct {
	elems  []Value
	locked bool // true: fixed/inline array; false: array-of-tables target
}

// IsArray reports whether a is a plain (non-table) array.
func (a *Array) IsArray() bool { return a.locked }

// IsTableArray reports whether a is an array-of-tables target.
func (a *Array) IsTableArray() bool { return !a.locked }

// Elems returns a's elements. The returned slice is shared with a.
func (a *Array) Elems() []Value { return a.elems }

// Append adds v to the end of a.
func (a *Array) Append(v Value) { a.elems = append(a.elems, v) }

// Value is the TOML tagged union: exactly one alternative is active at
// a time, selected by Kind. The zero Value is [KindInvalid], the
// "nothing was ever parsed" sentinel a failed [Parse] returns.
//
// table/array are already reference types ([Table]/[Array] are always
// behind a pointer) so they are kept inline without a [value.Box];
// datetime exceeds [value.InlineThreshold] and is boxed.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	str  string
	arr  *Array
	tbl  *Table
	dt   value.Box[DateTime]
}

// Boolean returns a Value holding b.
func Boolean(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Integer returns a Value holding i.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float returns a Value holding f.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a Value holding s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// ArrayValue returns a Value holding elems. locked distinguishes a
// fixed/inline array (true) from an array-of-tables target (false).
func ArrayValue(elems []Value, locked bool) Value {
	return Value{kind: KindArray, arr: &Array{elems: elems, locked: locked}}
}

// tableValue wraps an existing *Table, sharing its identity (and thus
// its locked/defined flags) with the caller.
func tableValue(t *Table) Value { return Value{kind: KindTable, tbl: t} }

// TableValue returns a Value holding fields as a (non-inline) table.
func TableValue(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}

	return tableValue(&Table{fields: fields})
}

// InlineTableValue returns a Value holding fields as a frozen inline
// table.
func InlineTableValue(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}

	return tableValue(&Table{fields: fields, locked: true, defined: true})
}

// DatetimeValue returns a Value holding dt.
func DatetimeValue(dt DateTime) Value { return Value{kind: KindDatetime, dt: value.NewBox(dt)} }

// Kind reports which alternative v holds.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a real alternative rather than the
// zero-value sentinel a failed parse leaves behind.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

func (v Value) IsBoolean() bool  { return v.kind == KindBoolean }
func (v Value) IsInteger() bool  { return v.kind == KindInteger }
func (v Value) IsFloat() bool    { return v.kind == KindFloat }
func (v Value) IsString() bool   { return v.kind == KindString }
func (v Value) IsArray() bool    { return v.kind == KindArray }
func (v Value) IsTable() bool    { return v.kind == KindTable }
func (v Value) IsDatetime() bool { return v.kind == KindDatetime }

// AsBoolean returns v's boolean and whether v held one.
func (v Value) AsBoolean() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}

	return v.b, true
}

// AsInteger returns v's integer and whether v held one.
func (v Value) AsInteger() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}

	return v.i, true
}

// AsFloat returns v's float and whether v held one.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}

	return v.f, true
}

// AsString returns v's string and whether v held one.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.str, true
}

// AsArray returns v's backing [Array] and whether v held one.
func (v Value) AsArray() (*Array, bool) {
	if v.kind != KindArray {
		return nil, false
	}

	return v.arr, true
}

// AsTable returns v's backing [Table] and whether v held one.
func (v Value) AsTable() (*Table, bool) {
	if v.kind != KindTable {
		return nil, false
	}

	return v.tbl, true
}

// AsDatetime returns v's [DateTime] and whether v held one.
func (v Value) AsDatetime() (DateTime, bool) {
	if v.kind != KindDatetime {
		return DateTime{}, false
	}

	return v.dt.Get(), true
}

// Field returns the named table member and whether it was present.
func (v Value) Field(key string) (Value, bool) {
	t, ok := v.AsTable()
	if !ok {
		return Value{}, false
	}

	return t.Get(key)
}

// Path walks a chain of table-member keys, returning the Value found
// at the end and whether every key along the way resolved.
func (v Value) Path(keys ...string) (Value, bool) {
	cur := v

	for _, k := range keys {
		next, ok := cur.Field(k)
		if !ok {
			return Value{}, false
		}

		cur = next
	}

	return cur, true
}

// Index returns the i'th array element and whether v was an array with
// an element at i.
func (v Value) Index(i int) (Value, bool) {
	a, ok := v.AsArray()
	if !ok || i < 0 || i >= len(a.elems) {
		return Value{}, false
	}

	return a.elems[i], true
}

// Visitor supplies one callback per [Kind] a [Value] can hold. Visit
// calls whichever field matches v's active alternative; a nil field is
// simply skipped.
type Visitor struct {
	Boolean  func(b bool)
	Integer  func(i int64)
	Float    func(f float64)
	String   func(s string)
	Array    func(a *Array)
	Table    func(t *Table)
	Datetime func(dt DateTime)
}

// Visit dispatches to the Visitor field matching v's [Kind].
func (v Value) Visit(visitor Visitor) {
	switch v.kind {
	case KindBoolean:
		if visitor.Boolean != nil {
			visitor.Boolean(v.b)
		}
	case KindInteger:
		if visitor.Integer != nil {
			visitor.Integer(v.i)
		}
	case KindFloat:
		if visitor.Float != nil {
			visitor.Float(v.f)
		}
	case KindString:
		if visitor.String != nil {
			visitor.String(v.str)
		}
	case KindArray:
		if visitor.Array != nil {
			visitor.Array(v.arr)
		}
	case KindTable:
		if visitor.Table != nil {
			visitor.Table(v.tbl)
		}
	case KindDatetime:
		if visitor.Datetime != nil {
			visitor.Datetime(v.dt.Get())
		}
	}
}

// Equal reports structural equality. Two values of different kinds are
// never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindBoolean:
		return v.b == other.b
	case KindInteger:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.str == other.str
	case KindArray:
		a, b := v.arr.elems, other.arr.elems
		if len(a) != len(b) {
			return false
		}

		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}

		return true
	case KindTable:
		ta, tb := v.tbl.fields, other.tbl.fields
		if len(ta) != len(tb) {
			return false
		}

		for k, fv := range ta {
			ov, ok := tb[k]
			if !ok || !fv.Equal(ov) {
				return false
			}
		}

		return true
	case KindDatetime:
		return v.dt.Get().String() == other.dt.Get().String()
	default:
		return true
	}
}
