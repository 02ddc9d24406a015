package interp

import (
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/escerr"
	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

// forInEnumerator is one for-in loop's key snapshot and cursor, pushed by
// OpEnumerateObject and advanced by OpEnumerateObjectKey. Snapshotting
// the key list up front is what gives "each key visited once even if the
// object's shape changes mid-iteration" (spec.md §4.2).
type forInEnumerator struct {
	keys   []*object.Interned
	cursor int
}

// objectOf extracts the embedded *object.Object from any heap kind that
// carries one. object.WriteCache.TryHit and object.RebuildWriteCache both
// require *object.Object directly; package object's own equivalent helper
// (asObject) is unexported, so the interpreter's write-side inline-cache
// path needs its own copy of the type switch.
func objectOf(h value.Heap) (*object.Object, bool) {
	switch t := h.(type) {
	case *object.Object:
		return t, true
	case *object.ArrayObject:
		return t.Object, true
	case *object.FunctionObject:
		return t.Object, true
	case *object.StringObject:
		if t.Object == nil {
			return nil, false
		}
		return t.Object, true
	default:
		return nil, false
	}
}

// arrayIndex reports whether v names a non-negative integer array index,
// the form ArrayObject's and StringObject's indexed fast paths test for
// before falling back to the generic string-keyed property machinery.
func arrayIndex(v value.TaggedValue) (int, bool) {
	switch {
	case v.IsInt32():
		if i := v.AsInt32(); i >= 0 {
			return int(i), true
		}
	case v.IsDouble():
		f := v.AsDouble()
		if i := int(f); float64(i) == f && i >= 0 {
			return i, true
		}
	}
	return 0, false
}

// getComputed implements a property read keyed by an already-evaluated
// value (OpGetObject / OpGetObjectWithPeeking): the ArrayObject/
// StringObject indexed fast paths are tried first, falling back to the
// generic hidden-class walk (spec.md §4.2).
func (it *Interpreter) getComputed(objv, keyv value.TaggedValue) (value.TaggedValue, error) {
	if !objv.IsPointer() {
		return value.Undefined, escerr.NotAnObject(escerr.PhaseInterpret, nil, "cannot read property of "+objv.Tag().String())
	}
	heap := objv.AsHeap()
	if idx, ok := arrayIndex(keyv); ok {
		switch h := heap.(type) {
		case *object.ArrayObject:
			if v, ok := h.GetIndex(idx); ok {
				return v, nil
			}
		case *object.StringObject:
			if s, ok := h.ByteAt(idx); ok {
				return value.Pointer(s), nil
			}
		}
	}
	key := it.Strings.Intern(value.ToStringValue(keyv))
	return object.Get(heap, key), nil
}

// putComputed implements a property write keyed by an already-evaluated
// value (OpPutInObject), mirroring getComputed's fast-path-then-generic
// shape.
func (it *Interpreter) putComputed(objv, keyv, val value.TaggedValue) error {
	if !objv.IsPointer() {
		return escerr.NotAnObject(escerr.PhaseInterpret, nil, "cannot set property of "+objv.Tag().String())
	}
	heap := objv.AsHeap()
	if idx, ok := arrayIndex(keyv); ok {
		if arr, ok := heap.(*object.ArrayObject); ok && arr.IsFastMode() && idx <= arr.Length() {
			arr.SetIndex(idx, val)
			return nil
		}
	}
	key := it.Strings.Intern(value.ToStringValue(keyv))
	if shadowed := object.Set(it.Strings, heap, key, val); shadowed {
		return escerr.PropertyNotWritable(nil, key.String())
	}
	return nil
}

// getNamedCached implements OpGetObjectPreComputedCase: consult the call
// site's read cache, rebuilding it on a miss (spec.md §4.5).
func (it *Interpreter) getNamedCached(ic *bytecode.ICSlot, objv value.TaggedValue, key *object.Interned) (value.TaggedValue, error) {
	if !objv.IsPointer() {
		return value.Undefined, escerr.NotAnObject(escerr.PhaseInterpret, nil, "cannot read property of "+objv.Tag().String())
	}
	heap := objv.AsHeap()
	if v, ok := ic.Read.TryHit(heap); ok {
		return v, nil
	}
	cache, v := object.RebuildReadCache(heap, key)
	ic.Read = cache
	return v, nil
}

// putNamedCached implements OpPutInObjectPreComputedCase, the write-side
// counterpart of getNamedCached.
func (it *Interpreter) putNamedCached(ic *bytecode.ICSlot, objv value.TaggedValue, key *object.Interned, val value.TaggedValue) error {
	if !objv.IsPointer() {
		return escerr.NotAnObject(escerr.PhaseInterpret, nil, "cannot set property of "+objv.Tag().String())
	}
	o, ok := objectOf(objv.AsHeap())
	if !ok {
		return escerr.NotAnObject(escerr.PhaseInterpret, nil, "receiver carries no property slots")
	}
	if ic.Write.TryHit(o, val) {
		return nil
	}
	cache, shadowed := object.RebuildWriteCache(it.Strings, o, key, val)
	if shadowed {
		return escerr.PropertyNotWritable(nil, key.String())
	}
	ic.Write = cache
	return nil
}

// stringIn implements the `in` operator: true iff key is found anywhere
// on obj's prototype chain.
func (it *Interpreter) stringIn(keyv, objv value.TaggedValue) (bool, error) {
	if !objv.IsPointer() {
		return false, escerr.NotAnObject(escerr.PhaseInterpret, nil, "cannot use 'in' operator on "+objv.Tag().String())
	}
	key := it.Strings.Intern(value.ToStringValue(keyv))
	_, _, _, found := object.FindProperty(objv.AsHeap(), key)
	return found, nil
}
