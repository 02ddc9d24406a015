package interp

import (
	"github.com/escargot-js/escargot/escerr"
	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

// invoke dispatches a call or new-expression to callee. isNew selects
// the object-allocating `new` protocol (allocate a receiver from
// callee's "prototype" property, call with it, keep the receiver unless
// the call itself returned an object) over a plain call (spec.md §4.2
// `new`).
func (it *Interpreter) invoke(callee, this value.TaggedValue, args []value.TaggedValue, isNew bool) (value.TaggedValue, error) {
	if !callee.IsPointer() || !callee.AsHeap().IsCallable() {
		return value.Undefined, escerr.NotAFunction(escerr.PhaseInterpret, nil)
	}
	fn, ok := callee.AsHeap().(*object.FunctionObject)
	if !ok {
		return value.Undefined, escerr.NotAFunction(escerr.PhaseInterpret, nil)
	}
	if !isNew {
		return fn.Call(this, args)
	}
	if !fn.Callable().IsConstructor() {
		return value.Undefined, escerr.NotAFunction(escerr.PhaseInterpret, nil)
	}
	protoVal := object.Get(fn, it.Strings.Intern(object.AtomPrototype))
	var proto value.Heap
	if protoVal.IsPointer() {
		proto = protoVal.AsHeap()
	}
	receiver := object.NewObject(object.RootShape(), proto)
	result, err := fn.Call(value.Pointer(receiver), args)
	if err != nil {
		return value.Undefined, err
	}
	if result.IsPointer() {
		return result, nil
	}
	return value.Pointer(receiver), nil
}

// instanceOf implements `x instanceof ctor`: walk x's prototype chain
// looking for pointer equality with ctor's "prototype" own property
// (spec.md §4.2, §8 property 8: transitive through the chain).
func (it *Interpreter) instanceOf(x, ctor value.TaggedValue) (bool, error) {
	if !ctor.IsPointer() || !ctor.AsHeap().IsCallable() {
		return false, escerr.BadInstanceofRHS()
	}
	protoVal := object.Get(ctor.AsHeap(), it.Strings.Intern(object.AtomPrototype))
	if !protoVal.IsPointer() {
		return false, escerr.BadInstanceofRHS()
	}
	target := protoVal.AsHeap()
	if !x.IsPointer() {
		return false, nil
	}
	cur, ok := protoOf(x.AsHeap())
	for ok {
		if cur == target {
			return true, nil
		}
		cur, ok = protoOf(cur)
	}
	return false, nil
}

// protoOf returns h's __proto__, or (nil, false) if h carries no Object
// machinery to ask.
func protoOf(h value.Heap) (value.Heap, bool) {
	o, ok := objectOf(h)
	if !ok {
		return nil, false
	}
	p := o.Proto()
	return p, p != nil
}
