package json

import "math"

// NumberKind distinguishes the three alternatives a [Number] can hold.
type NumberKind int

const (
	Int64 NumberKind = iota
	Uint64
	Float64Kind
)

// numberEqualEpsilon is the fixed tolerance the source uses for
// floating comparison ("Is Ok?" in the original, kept as-is).
const numberEqualEpsilon = 1e-5

// Number is a tagged union over {int64, uint64, float64}, the preferred
// representation for a JSON number: a parse tries int64 first, then
// uint64, then float64, keeping whichever succeeds.
type Number struct {
	kind NumberKind
	i    int64
	u    uint64
	f    float64
}

// NewInt64 returns a [Number] holding a signed integer.
func NewInt64(i int64) Number { return Number{kind: Int64, i: i} }

// NewUint64 returns a [Number] holding an unsigned integer.
func NewUint64(u uint64) Number { return Number{kind: Uint64, u: u} }

// NewFloat64 returns a [Number] holding a floating-point value.
func NewFloat64(f float64) Number { return Number{kind: Float64Kind, f: f} }

// Kind reports which alternative n holds.
func (n Number) Kind() NumberKind { return n.kind }

// IsSignedInteger reports whether n holds an int64.
func (n Number) IsSignedInteger() bool { return n.kind == Int64 }

// IsUnsignedInteger reports whether n holds a uint64.
func (n Number) IsUnsignedInteger() bool { return n.kind == Uint64 }

// IsInteger reports whether n holds either integer alternative.
func (n Number) IsInteger() bool { return n.kind != Float64Kind }

// IsFloat reports whether n holds a float64.
func (n Number) IsFloat() bool { return n.kind == Float64Kind }

// AsFloat64 converts n to float64 regardless of which alternative is
// active.
func (n Number) AsFloat64() float64 {
	switch n.kind {
	case Float64Kind:
		return n.f
	case Int64:
		return float64(n.i)
	default:
		return float64(n.u)
	}
}

// AsInt64 converts n to int64 regardless of which alternative is
// active.
func (n Number) AsInt64() int64 {
	switch n.kind {
	case Float64Kind:
		return int64(n.f)
	case Int64:
		return n.i
	default:
		return int64(n.u)
	}
}

// AsUint64 converts n to uint64 regardless of which alternative is
// active.
func (n Number) AsUint64() uint64 {
	switch n.kind {
	case Float64Kind:
		return uint64(n.f)
	case Int64:
		return uint64(n.i)
	default:
		return n.u
	}
}

// Equal compares n and other across kinds: if either holds a float, both
// sides are compared as float64 within the source's fixed epsilon; if
// both hold integers, they compare equal whenever they denote the same
// integer regardless of signedness (Int64(5) == Uint64(5)).
func (n Number) Equal(other Number) bool {
	if n.IsFloat() || other.IsFloat() {
		return math.Abs(n.AsFloat64()-other.AsFloat64()) < numberEqualEpsilon
	}

	if n.negative() || other.negative() {
		if n.kind == Uint64 || other.kind == Uint64 {
			return false
		}

		return n.i == other.i
	}

	return n.AsUint64() == other.AsUint64()
}

// negative reports whether n holds a signed integer with a negative
// value, the only case where comparing integers as uint64 would
// corrupt the result.
func (n Number) negative() bool {
	return n.kind == Int64 && n.i < 0
}
