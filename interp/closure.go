package interp

import (
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

// scriptFunction is the object.Callable a MakeClosure instruction
// constructs: a nested CodeBlock paired with the lexical environment in
// effect at the point the closure was created. Calling it re-enters
// Execute with that captured environment as parent, giving the function
// body access to its defining scope's bindings (spec.md §6 closures).
type scriptFunction struct {
	it   *Interpreter
	cb   *bytecode.CodeBlock
	env  *Environment
	name string
}

// Call implements object.Callable.
func (sf *scriptFunction) Call(this value.TaggedValue, args []value.TaggedValue) (value.TaggedValue, error) {
	return Execute(sf.it, sf.cb, sf.cb.ParamNames, sf.env, this, args)
}

// IsConstructor implements object.Callable: every script function may be
// targeted by `new` (spec.md §4.2); arrow functions, which this engine's
// generator never lowers to MakeClosure at a call site reachable from a
// `new` expression, are out of scope.
func (sf *scriptFunction) IsConstructor() bool { return true }

// Name implements object.Callable.
func (sf *scriptFunction) Name() string { return sf.name }

// makeClosure instantiates a FunctionObject wrapping child, capturing
// env as the closure's lexical parent, and seeds its own "prototype"
// property with a fresh plain object so `new` has a receiver to
// allocate from (spec.md §4.2 `new`; see interp.invoke).
func (f *frame) makeClosure(child *bytecode.CodeBlock, name string) value.TaggedValue {
	sf := &scriptFunction{it: f.it, cb: child, env: f.env, name: name}
	fn := object.NewFunctionObject(object.RootShape(), f.it.FunctionProto, sf)
	proto := object.NewObject(object.RootShape(), f.it.ObjectProto)
	fn.DefineOwn(f.it.Strings, f.it.Strings.Intern(object.AtomPrototype), value.Pointer(proto), object.FlagWritable|object.FlagConfigurable)
	return value.Pointer(fn)
}
