package value

import (
	"math"
	"strconv"
)

// PrimitiveHint selects the preferred result type for ToPrimitive, per
// ECMAScript's [[DefaultValue]] algorithm.
type PrimitiveHint int

const (
	HintDefault PrimitiveHint = iota
	HintNumber
	HintString
)

// StringHeap is implemented by heap values that already hold primitive
// string data (interned strings, string objects). ToString/ToPrimitive
// use it to avoid re-deriving a Go string from scratch.
type StringHeap interface {
	Heap
	StringValue() string
}

// Primitive is implemented by heap objects that can reduce themselves to
// a primitive TaggedValue (the ECMAScript OrdinaryToPrimitive algorithm,
// driven here by a single method rather than a two-method valueOf/
// toString protocol — callers needing the full protocol implement it on
// top of this hook).
type Primitive interface {
	Heap
	ToPrimitive(hint PrimitiveHint) TaggedValue
}

// ToPrimitive implements the ECMAScript ToPrimitive abstract operation.
// Non-pointer values are already primitive.
func ToPrimitive(v TaggedValue, hint PrimitiveHint) TaggedValue {
	if v.tag != TagPointer {
		return v
	}
	if p, ok := v.ptr.(Primitive); ok {
		return p.ToPrimitive(hint)
	}
	// StringHeap values are already primitive; anything else without a
	// Primitive hook is returned as-is (best effort — a full valueOf/
	// toString protocol is out of scope, spec.md §1).
	return v
}

// ToBoolean implements the ECMAScript ToBoolean abstract operation.
func ToBoolean(v TaggedValue) bool {
	switch v.tag {
	case TagUndefined, TagNull:
		return false
	case TagBoolean:
		return v.b
	case TagInt32:
		return v.i != 0
	case TagDouble:
		return v.f != 0 && !math.IsNaN(v.f)
	case TagPointer:
		if s, ok := v.ptr.(StringHeap); ok {
			return len(s.StringValue()) != 0
		}
		return true
	default:
		return false
	}
}

// ToNumber implements the ECMAScript ToNumber abstract operation,
// returning the result as a float64 (the interpreter's arithmetic fast
// paths decide separately whether the result can narrow to Int32).
func ToNumber(v TaggedValue) float64 {
	switch v.tag {
	case TagUndefined:
		return math.NaN()
	case TagNull:
		return 0
	case TagBoolean:
		if v.b {
			return 1
		}
		return 0
	case TagInt32:
		return float64(v.i)
	case TagDouble:
		return v.f
	case TagPointer:
		prim := ToPrimitive(v, HintNumber)
		if prim.tag == TagPointer {
			if s, ok := prim.ptr.(StringHeap); ok {
				return stringToNumber(s.StringValue())
			}
			return math.NaN()
		}
		return ToNumber(prim)
	default:
		return math.NaN()
	}
}

// ToInt32 implements the ECMAScript ToInt32 abstract operation: ToNumber
// followed by modulo-2^32 truncation toward zero, per ECMA-262 §7.1.5.
func ToInt32(v TaggedValue) int32 {
	f := ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0
	}
	n := math.Trunc(f)
	m := math.Mod(n, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	if m >= 2147483648 {
		m -= 4294967296
	}
	return int32(m)
}

// ToUint32 implements the ECMAScript ToUint32 abstract operation.
func ToUint32(v TaggedValue) uint32 {
	f := ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0
	}
	n := math.Trunc(f)
	m := math.Mod(n, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

// ToStringValue implements the ECMAScript ToString abstract operation on
// a primitive/coercible TaggedValue, returning a plain Go string. Boxing
// this back into a TaggedValue (an interned or heap string) is the
// caller's (object package's) responsibility — value has no allocator.
func ToStringValue(v TaggedValue) string {
	switch v.tag {
	case TagUndefined:
		return "undefined"
	case TagNull:
		return "null"
	case TagBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case TagInt32:
		return strconv.FormatInt(int64(v.i), 10)
	case TagDouble:
		return numberToString(v.f)
	case TagPointer:
		if s, ok := v.ptr.(StringHeap); ok {
			return s.StringValue()
		}
		prim := ToPrimitive(v, HintString)
		if prim.tag == TagPointer {
			return "[object]"
		}
		return ToStringValue(prim)
	default:
		return ""
	}
}

func numberToString(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == 0 {
		if isNegativeZero(f) {
			return "0" // ToString(-0) is "0" per ECMA-262 §7.1.12.1
		}
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func stringToNumber(s string) float64 {
	trimmed := trimWhitespace(s)
	if trimmed == "" {
		return 0
	}
	if trimmed == "Infinity" || trimmed == "+Infinity" {
		return math.Inf(1)
	}
	if trimmed == "-Infinity" {
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func trimWhitespace(s string) string {
	start, end := 0, len(s)
	for start < end && isWhitespace(s[start]) {
		start++
	}
	for end > start && isWhitespace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
