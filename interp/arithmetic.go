package interp

import (
	"math"

	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

// isStringPrimitive reports whether v is a pointer to something that
// already holds primitive string data (spec.md §4.2's `+` string-
// concatenation special case, and the abstract-equality/relational
// comparisons that treat strings specially).
func isStringPrimitive(v value.TaggedValue) bool {
	if !v.IsPointer() {
		return false
	}
	_, ok := v.AsHeap().(value.StringHeap)
	return ok
}

// plus implements `+`: both Int32 takes the checked-overflow integer
// fast path; otherwise both operands go through ToPrimitive and, if
// either side is a string, are concatenated; otherwise both are coerced
// with ToNumber and added as doubles (spec.md §4.2).
func plus(a, b value.TaggedValue) value.TaggedValue {
	if a.IsInt32() && b.IsInt32() {
		sum := int64(a.AsInt32()) + int64(b.AsInt32())
		if sum >= math.MinInt32 && sum <= math.MaxInt32 {
			return value.Int32(int32(sum))
		}
		return value.Double(float64(sum))
	}
	pa := value.ToPrimitive(a, value.HintDefault)
	pb := value.ToPrimitive(b, value.HintDefault)
	if isStringPrimitive(pa) || isStringPrimitive(pb) {
		return value.Pointer(object.NewStringPrimitive(value.ToStringValue(pa) + value.ToStringValue(pb)))
	}
	return value.NumberFromFloat64(value.ToNumber(pa) + value.ToNumber(pb))
}

// minus implements `-` with the same checked-overflow Int32 fast path.
func minus(a, b value.TaggedValue) value.TaggedValue {
	if a.IsInt32() && b.IsInt32() {
		d := int64(a.AsInt32()) - int64(b.AsInt32())
		if d >= math.MinInt32 && d <= math.MaxInt32 {
			return value.Int32(int32(d))
		}
		return value.Double(float64(d))
	}
	return value.NumberFromFloat64(value.ToNumber(a) - value.ToNumber(b))
}

// multiply implements `*` with the same checked-overflow Int32 fast path.
func multiply(a, b value.TaggedValue) value.TaggedValue {
	if a.IsInt32() && b.IsInt32() {
		p := int64(a.AsInt32()) * int64(b.AsInt32())
		if p >= math.MinInt32 && p <= math.MaxInt32 {
			return value.Int32(int32(p))
		}
		return value.Double(float64(p))
	}
	return value.NumberFromFloat64(value.ToNumber(a) * value.ToNumber(b))
}

// division implements `/`: always a double operation, matching ECMA-262
// §12.7.3 (an integral result still narrows back to Int32 through
// NumberFromFloat64).
func division(a, b value.TaggedValue) value.TaggedValue {
	return value.NumberFromFloat64(value.ToNumber(a) / value.ToNumber(b))
}

// mod implements `%` matching ECMA-262 §11.5.3's NEVER_INLINE helper: an
// integer fast path guarded by intLeft > 0 (the engine's own documented
// quirk, kept intentionally — see DESIGN.md), falling back to the NaN
// cases and signed double remainder otherwise.
func mod(a, b value.TaggedValue) value.TaggedValue {
	if a.IsInt32() && b.IsInt32() && b.AsInt32() != 0 && a.AsInt32() > 0 {
		return value.Int32(a.AsInt32() % b.AsInt32())
	}
	left, right := value.ToNumber(a), value.ToNumber(b)
	switch {
	case math.IsNaN(left), math.IsNaN(right), math.IsInf(left, 0), right == 0:
		return value.Double(math.NaN())
	case math.IsInf(right, 0):
		return value.NumberFromFloat64(left)
	default:
		return value.NumberFromFloat64(math.Mod(left, right))
	}
}

// increment/decrement preserve Int32 vs Double across the operation,
// spilling to Double only on overflow (spec.md §4.4: "ToNumber,
// Increment, Decrement, UnaryMinus: preserve Int32 vs Double").
func increment(v value.TaggedValue) value.TaggedValue {
	if v.IsInt32() && v.AsInt32() != math.MaxInt32 {
		return value.Int32(v.AsInt32() + 1)
	}
	return value.NumberFromFloat64(value.ToNumber(v) + 1)
}

func decrement(v value.TaggedValue) value.TaggedValue {
	if v.IsInt32() && v.AsInt32() != math.MinInt32 {
		return value.Int32(v.AsInt32() - 1)
	}
	return value.NumberFromFloat64(value.ToNumber(v) - 1)
}

func unaryMinus(v value.TaggedValue) value.TaggedValue {
	if v.IsInt32() && v.AsInt32() != math.MinInt32 {
		return value.Int32(-v.AsInt32())
	}
	return value.NumberFromFloat64(-value.ToNumber(v))
}

func bitwiseAnd(a, b value.TaggedValue) value.TaggedValue {
	return value.Int32(value.ToInt32(a) & value.ToInt32(b))
}

func bitwiseOr(a, b value.TaggedValue) value.TaggedValue {
	return value.Int32(value.ToInt32(a) | value.ToInt32(b))
}

func bitwiseXor(a, b value.TaggedValue) value.TaggedValue {
	return value.Int32(value.ToInt32(a) ^ value.ToInt32(b))
}

func bitwiseNot(v value.TaggedValue) value.TaggedValue {
	return value.Int32(^value.ToInt32(v))
}

func leftShift(a, b value.TaggedValue) value.TaggedValue {
	return value.Int32(value.ToInt32(a) << (value.ToUint32(b) & 31))
}

func signedRightShift(a, b value.TaggedValue) value.TaggedValue {
	return value.Int32(value.ToInt32(a) >> (value.ToUint32(b) & 31))
}

func unsignedRightShift(a, b value.TaggedValue) value.TaggedValue {
	u := value.ToUint32(a) >> (value.ToUint32(b) & 31)
	return value.NumberFromFloat64(float64(u))
}

// looseEqual implements the `==` abstract equality comparison
// (ECMA-262 §7.2.13).
func looseEqual(a, b value.TaggedValue) bool {
	if a.Tag() == b.Tag() {
		return a.Equal(b)
	}
	switch {
	case a.IsNullOrUndefined() && b.IsNullOrUndefined():
		return true
	case a.IsNullOrUndefined() || b.IsNullOrUndefined():
		return false
	case a.IsNumber() && isStringPrimitive(b):
		return a.AsFloat64() == value.ToNumber(b)
	case isStringPrimitive(a) && b.IsNumber():
		return value.ToNumber(a) == b.AsFloat64()
	case a.IsBoolean():
		return looseEqual(value.NumberFromFloat64(value.ToNumber(a)), b)
	case b.IsBoolean():
		return looseEqual(a, value.NumberFromFloat64(value.ToNumber(b)))
	case (a.IsNumber() || isStringPrimitive(a)) && b.IsPointer():
		return looseEqual(a, value.ToPrimitive(b, value.HintDefault))
	case a.IsPointer() && (b.IsNumber() || isStringPrimitive(b)):
		return looseEqual(value.ToPrimitive(a, value.HintDefault), b)
	default:
		return false
	}
}

// abstractLessThan implements ECMA-262's Abstract Relational Comparison,
// whose result can be "undefined" (neither operand relation holds, e.g.
// when either side is NaN) — callers of the four surface operators
// interpret undef per ECMA-262 §7.2.14.
func abstractLessThan(x, y value.TaggedValue) (less, undef bool) {
	px := value.ToPrimitive(x, value.HintNumber)
	py := value.ToPrimitive(y, value.HintNumber)
	if isStringPrimitive(px) && isStringPrimitive(py) {
		return value.ToStringValue(px) < value.ToStringValue(py), false
	}
	nx, ny := value.ToNumber(px), value.ToNumber(py)
	if math.IsNaN(nx) || math.IsNaN(ny) {
		return false, true
	}
	return nx < ny, false
}

func lessThan(a, b value.TaggedValue) bool {
	r, _ := abstractLessThan(a, b)
	return r
}

func greaterThan(a, b value.TaggedValue) bool {
	r, _ := abstractLessThan(b, a)
	return r
}

func lessThanOrEqual(a, b value.TaggedValue) bool {
	r, undef := abstractLessThan(b, a)
	if undef {
		return false
	}
	return !r
}

func greaterThanOrEqual(a, b value.TaggedValue) bool {
	r, undef := abstractLessThan(a, b)
	if undef {
		return false
	}
	return !r
}

// typeOf implements the `typeof` table of spec.md §4.2/§8: exhaustive
// over the engine's 6 tags plus the function/object split on pointers.
func typeOf(v value.TaggedValue) string {
	switch v.Tag() {
	case value.TagUndefined:
		return "undefined"
	case value.TagNull:
		return "object"
	case value.TagBoolean:
		return "boolean"
	case value.TagInt32, value.TagDouble:
		return "number"
	case value.TagPointer:
		if v.AsHeap().IsCallable() {
			return "function"
		}
		if isStringPrimitive(v) {
			return "string"
		}
		return "object"
	default:
		return "undefined"
	}
}
