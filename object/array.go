package object

import "github.com/escargot-js/escargot/value"

// ArrayObject is a HeapObject specialization carrying a fast-mode dense
// vector of TaggedValues indexed 0..length, alongside the ordinary
// property machinery (an array can still acquire named properties).
// While IsFastMode is true there are no holes and no accessor
// descriptors at numeric indices, and Length equals len(Dense). Falling
// out of fast mode is one-way for the object's lifetime (spec.md §3).
type ArrayObject struct {
	*Object
	dense     []value.TaggedValue
	fastMode  bool
}

// NewArrayObject allocates a fast-mode array of the given length, every
// slot initialized to Undefined (matching `new Array(n)`'s dense-but-
// unset-value semantics for the purposes of this engine — sparse holes
// are not separately modeled in fast mode, spec.md §4.2 `new`).
func NewArrayObject(shape *Shape, proto value.Heap, length int) *ArrayObject {
	a := &ArrayObject{
		Object:   NewObject(shape, proto),
		dense:    make([]value.TaggedValue, length),
		fastMode: true,
	}
	a.class = ClassArray
	for i := range a.dense {
		a.dense[i] = value.Undefined
	}
	return a
}

// NewArrayObjectFromValues builds a fast-mode array from literal elements
// (an array literal's InitArrayObject opcode, spec.md §3 ESIR family).
func NewArrayObjectFromValues(shape *Shape, proto value.Heap, elems []value.TaggedValue) *ArrayObject {
	a := &ArrayObject{
		Object:   NewObject(shape, proto),
		dense:    append([]value.TaggedValue(nil), elems...),
		fastMode: true,
	}
	a.class = ClassArray
	return a
}

// IsFastMode reports whether the array is still in its dense, hole-free
// regime.
func (a *ArrayObject) IsFastMode() bool { return a.fastMode }

// Length returns the array's current length.
func (a *ArrayObject) Length() int { return len(a.dense) }

// GetIndex returns (value, true) when idx is within the dense vector and
// the array is in fast mode — the indexed-read fast path of spec.md §4.2.
// Callers fall back to the generic Get for anything else.
func (a *ArrayObject) GetIndex(idx int) (value.TaggedValue, bool) {
	if !a.fastMode || idx < 0 || idx >= len(a.dense) {
		return value.Undefined, false
	}
	return a.dense[idx], true
}

// SetIndex writes idx in fast mode, growing the dense vector (and filling
// any intervening gap with Undefined) when idx == len(dense); writing
// further past the end falls out of fast mode permanently.
func (a *ArrayObject) SetIndex(idx int, v value.TaggedValue) {
	switch {
	case !a.fastMode:
		return
	case idx >= 0 && idx < len(a.dense):
		a.dense[idx] = v
	case idx == len(a.dense):
		a.dense = append(a.dense, v)
	default:
		a.fastMode = false
	}
}

// LeaveFastMode permanently disables the dense fast path, e.g. once a
// non-writable or accessor descriptor is defined at a numeric index.
func (a *ArrayObject) LeaveFastMode() { a.fastMode = false }

// Push appends to the end of the dense vector, preserving fast mode.
func (a *ArrayObject) Push(v value.TaggedValue) int {
	a.dense = append(a.dense, v)
	return len(a.dense)
}

// Dense exposes the backing vector read-only for enumeration/disassembly.
func (a *ArrayObject) Dense() []value.TaggedValue { return a.dense }
