package json

import (
	"github.com/student/leviathan/value"
)

// Kind is the tag of the alternative a [Value] currently holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindInvalid
)

// Value is the JSON tagged union: exactly one alternative is active at
// a time, selected by Kind. The zero Value holds null ([KindNull]);
// [Value.Path] treats such a value as an empty slot.
//
// Per the adapter policy in package value, the array alternative
// (a Go slice header, 24 bytes) exceeds [value.InlineThreshold] and is
// stored behind a [value.Box]; object is already a small reference
// (a bare map header) and is kept inline.
type Value struct {
	kind Kind
	b    bool
	num  Number
	str  string
	arr  value.Box[[]Value]
	obj  map[string]*Value
	ec   ErrorCode
}

// Null returns a Value holding the JSON null literal.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Value holding b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// FromNumber returns a Value holding n.
func FromNumber(n Number) Value { return Value{kind: KindNumber, num: n} }

// Int returns a Value holding a signed-integer [Number].
func Int(i int64) Value { return FromNumber(NewInt64(i)) }

// Uint returns a Value holding an unsigned-integer [Number].
func Uint(u uint64) Value { return FromNumber(NewUint64(u)) }

// Float returns a Value holding a floating-point [Number].
func Float(f float64) Value { return FromNumber(NewFloat64(f)) }

// String returns a Value holding s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns a Value holding elems as a JSON array. elems is taken
// by reference; callers that need an independent copy should clone
// first.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: value.NewBox(elems)}
}

// Object returns a Value holding fields as a JSON object. fields is
// copied; the returned Value owns its own member storage.
func Object(fields map[string]Value) Value {
	obj := make(map[string]*Value, len(fields))

	for k, fv := range fields {
		fv := fv
		obj[k] = &fv
	}

	return Value{kind: KindObject, obj: obj}
}

// FromError returns a Value holding ec, the "empty/invalid" alternative.
func FromError(ec ErrorCode) Value { return Value{kind: KindInvalid, ec: ec} }

// Kind reports which alternative v holds.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a real value rather than an error
// code, the source's explicit operator bool().
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// ErrorCode returns v's error code, or [OK] if v is [IsValid].
func (v Value) ErrorCode() ErrorCode {
	if v.kind != KindInvalid {
		return OK
	}

	return v.ec
}

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsObject() bool { return v.kind == KindObject }

// IsInteger reports whether v holds a number whose subkind is one of
// the two integer alternatives.
func (v Value) IsInteger() bool { return v.kind == KindNumber && v.num.IsInteger() }

// AsBool returns v's boolean and whether v held one.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}

	return v.b, true
}

// AsNumber returns v's number and whether v held one.
func (v Value) AsNumber() (Number, bool) {
	if v.kind != KindNumber {
		return Number{}, false
	}

	return v.num, true
}

// AsString returns v's string and whether v held one.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.str, true
}

// AsArray returns v's elements and whether v held an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}

	return v.arr.Get(), true
}

// AsObject returns a copy of v's fields and whether v held an object.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}

	return copyFields(v.obj), true
}

func copyFields(obj map[string]*Value) map[string]Value {
	out := make(map[string]Value, len(obj))
	for k, p := range obj {
		out[k] = *p
	}

	return out
}

// Index returns the i'th array element and whether v was an array with
// an element at i.
func (v Value) Index(i int) (Value, bool) {
	arr, ok := v.AsArray()
	if !ok || i < 0 || i >= len(arr) {
		return Value{}, false
	}

	return arr[i], true
}

// Field returns the named object member and whether it was present.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	f, ok := v.obj[key]
	if !ok {
		return Value{}, false
	}

	return *f, true
}

// Path walks a chain of object-member keys, auto-vivifying a missing
// key, or an unset ([KindInvalid]/[KindNull]) value standing in its
// way, as an empty object, and returns a pointer to the live Value at
// the end of the chain so the caller can read or overwrite it in
// place. It panics if a key along the way names an existing value of
// a concrete non-object kind, since there is no missing slot there to
// create.
func (v *Value) Path(keys ...string) *Value {
	cur := v

	for _, k := range keys {
		switch cur.kind {
		case KindObject:
		case KindInvalid, KindNull:
			*cur = Object(nil)
		default:
			panic("json: Path through non-object value")
		}

		child, ok := cur.obj[k]
		if !ok {
			child = &Value{}
			cur.obj[k] = child
		}

		cur = child
	}

	return cur
}

// Visitor supplies one callback per [Kind] a [Value] can hold. Visit
// calls whichever field matches v's active alternative; a nil field is
// simply skipped. This mirrors the source's visit-style dispatch over
// its variant, offered here alongside the typed As* accessors.
type Visitor struct {
	Null   func()
	Bool   func(b bool)
	Number func(n Number)
	String func(s string)
	Array  func(elems []Value)
	Object func(fields map[string]Value)
	Error  func(ec ErrorCode)
}

// Visit dispatches to the Visitor field matching v's [Kind].
func (v Value) Visit(visitor Visitor) {
	switch v.kind {
	case KindNull:
		if visitor.Null != nil {
			visitor.Null()
		}
	case KindBool:
		if visitor.Bool != nil {
			visitor.Bool(v.b)
		}
	case KindNumber:
		if visitor.Number != nil {
			visitor.Number(v.num)
		}
	case KindString:
		if visitor.String != nil {
			visitor.String(v.str)
		}
	case KindArray:
		if visitor.Array != nil {
			visitor.Array(v.arr.Get())
		}
	case KindObject:
		if visitor.Object != nil {
			visitor.Object(copyFields(v.obj))
		}
	default:
		if visitor.Error != nil {
			visitor.Error(v.ec)
		}
	}
}

// Equal reports structural equality. Two values of different kinds are
// never equal; number comparison follows [Number.Equal]'s epsilon and
// cross-subkind rules.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num.Equal(other.num)
	case KindString:
		return v.str == other.str
	case KindArray:
		a, b := v.arr.Get(), other.arr.Get()
		if len(a) != len(b) {
			return false
		}

		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}

		for k, fv := range v.obj {
			ov, ok := other.obj[k]
			if !ok || !fv.Equal(*ov) {
				return false
			}
		}

		return true
	default:
		return v.ec == other.ec
	}
}
