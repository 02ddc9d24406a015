package object

import "github.com/escargot-js/escargot/value"

// Callable is implemented by whatever the interpreter's CallFunction/
// CallJS opcodes ultimately invoke: a compiled CodeBlock wrapper for
// script functions, or a Go closure for host functions (spec.md §6 "host
// call-out"). It is declared here, not in bytecode or interp, so that a
// FunctionObject can be constructed and stored in the object graph
// without those packages depending on each other.
type Callable interface {
	Call(this value.TaggedValue, args []value.TaggedValue) (value.TaggedValue, error)
	// IsConstructor reports whether `new` may target this callable.
	IsConstructor() bool
	Name() string
}

// FunctionObject is a HeapObject specialization wrapping a Callable. Its
// "prototype" own property (when present) seeds the receiver a `new`
// expression allocates (spec.md §4.2 `new`).
type FunctionObject struct {
	*Object
	callable Callable
}

// NewFunctionObject allocates a function object backed by callable.
func NewFunctionObject(shape *Shape, proto value.Heap, callable Callable) *FunctionObject {
	f := &FunctionObject{
		Object:   NewObject(shape, proto),
		callable: callable,
	}
	f.SetClassName(ClassFunction)
	return f
}

// ClassName implements value.Heap.
func (f *FunctionObject) ClassName() string { return ClassFunction }

// IsCallable implements value.Heap — shadows Object.IsCallable.
func (f *FunctionObject) IsCallable() bool { return true }

// Callable returns the wrapped callable.
func (f *FunctionObject) Callable() Callable { return f.callable }

// Call invokes the wrapped callable directly.
func (f *FunctionObject) Call(this value.TaggedValue, args []value.TaggedValue) (value.TaggedValue, error) {
	return f.callable.Call(this, args)
}
