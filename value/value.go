package value

// Tag discriminates the variant a TaggedValue holds.
type Tag uint8

const (
	TagUndefined Tag = iota
	TagNull
	TagBoolean
	TagInt32
	TagDouble
	TagPointer
)

func (t Tag) String() string {
	switch t {
	case TagUndefined:
		return "undefined"
	case TagNull:
		return "null"
	case TagBoolean:
		return "boolean"
	case TagInt32:
		return "int32"
	case TagDouble:
		return "double"
	case TagPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// Heap is implemented by anything a Pointer-tagged TaggedValue can refer
// to (ordinary objects, arrays, string objects, function objects). It is
// defined here, rather than depending on the object package, so that
// value has no import of object — object depends on value for slot
// storage, not the other way around.
type Heap interface {
	// ClassName identifies the heap kind for typeof/instanceof/new
	// dispatch: "Object", "Array", "Function", "String", "Error", ...
	ClassName() string
	// IsCallable reports whether this heap value can appear as the
	// callee of CallJS/CallNewJS.
	IsCallable() bool
}

// TaggedValue is Escargot's dynamically typed value. Exactly one of the
// fields is meaningful, selected by Tag. isInt32 and isDouble are
// disjoint: any integer representable as int32 is stored as Int32, never
// as a Double (spec.md §3).
type TaggedValue struct {
	ptr Heap
	tag Tag
	b   bool
	i   int32
	f   float64
}

// Undefined is the TaggedValue for the `undefined` primitive.
var Undefined = TaggedValue{tag: TagUndefined}

// Null is the TaggedValue for the `null` primitive.
var Null = TaggedValue{tag: TagNull}

// True and False are the two Boolean TaggedValues.
var (
	True  = TaggedValue{tag: TagBoolean, b: true}
	False = TaggedValue{tag: TagBoolean, b: false}
)

// Bool returns the Boolean TaggedValue for b.
func Bool(b bool) TaggedValue {
	if b {
		return True
	}
	return False
}

// Int32 returns an Int32-tagged TaggedValue.
func Int32(i int32) TaggedValue {
	return TaggedValue{tag: TagInt32, i: i}
}

// Double returns a Double-tagged TaggedValue. Callers should prefer Int32
// when the value is exactly representable as one (see NumberFromFloat64).
func Double(f float64) TaggedValue {
	return TaggedValue{tag: TagDouble, f: f}
}

// Pointer returns a Pointer-tagged TaggedValue referring to h.
func Pointer(h Heap) TaggedValue {
	return TaggedValue{tag: TagPointer, ptr: h}
}

// NumberFromFloat64 builds the fast-path-preferred representation of a
// numeric result: Int32 when f is an exact, non-negative-zero int32
// value, Double otherwise. This is the single point the interpreter's
// arithmetic fast paths and the JIT's ConstantDouble-vs-ConstantInt
// rewrite both rely on to keep the Int32/Double invariant.
func NumberFromFloat64(f float64) TaggedValue {
	i := int32(f)
	if float64(i) == f && !(i == 0 && isNegativeZero(f)) {
		return Int32(i)
	}
	return Double(f)
}

func isNegativeZero(f float64) bool {
	return f == 0 && (1/f) < 0
}

// Tag returns the value's discriminant.
func (v TaggedValue) Tag() Tag { return v.tag }

func (v TaggedValue) IsUndefined() bool { return v.tag == TagUndefined }
func (v TaggedValue) IsNull() bool      { return v.tag == TagNull }
func (v TaggedValue) IsNullOrUndefined() bool {
	return v.tag == TagUndefined || v.tag == TagNull
}
func (v TaggedValue) IsBoolean() bool { return v.tag == TagBoolean }
func (v TaggedValue) IsInt32() bool   { return v.tag == TagInt32 }
func (v TaggedValue) IsDouble() bool  { return v.tag == TagDouble }
func (v TaggedValue) IsNumber() bool  { return v.tag == TagInt32 || v.tag == TagDouble }
func (v TaggedValue) IsPointer() bool { return v.tag == TagPointer }

// AsBool returns the boolean payload. Only meaningful when IsBoolean().
func (v TaggedValue) AsBool() bool { return v.b }

// AsInt32 returns the int32 payload. Only meaningful when IsInt32().
func (v TaggedValue) AsInt32() int32 { return v.i }

// AsDouble returns the float64 payload. Only meaningful when IsDouble().
func (v TaggedValue) AsDouble() float64 { return v.f }

// AsHeap returns the heap payload. Only meaningful when IsPointer().
func (v TaggedValue) AsHeap() Heap { return v.ptr }

// AsFloat64 widens Int32 or Double to a float64, regardless of which
// variant holds the number. Panics if the value isn't numeric; callers
// that accept non-number values must call ToNumber first.
func (v TaggedValue) AsFloat64() float64 {
	switch v.tag {
	case TagInt32:
		return float64(v.i)
	case TagDouble:
		return v.f
	default:
		panic("value: AsFloat64 called on non-numeric TaggedValue")
	}
}

// Equal implements the `===` operator (StrictEqual): no type coercion,
// Int32 and Double of the same mathematical value compare equal.
func (v TaggedValue) Equal(other TaggedValue) bool {
	if v.IsNumber() && other.IsNumber() {
		return v.AsFloat64() == other.AsFloat64()
	}
	if v.tag != other.tag {
		return false
	}
	switch v.tag {
	case TagUndefined, TagNull:
		return true
	case TagBoolean:
		return v.b == other.b
	case TagPointer:
		return v.ptr == other.ptr
	default:
		return false
	}
}
