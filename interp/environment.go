package interp

import (
	"github.com/escargot-js/escargot/escerr"
	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

// Environment is one lexical frame: a hash-map of bindings plus a link
// to the enclosing scope. Function parameters and var/let declarations
// both resolve through CreateBinding/Get/Set here; spec.md §2 describes
// the environment chain as carrying "both integer-indexed slots and
// hash-map bindings" — this engine's generator currently always takes
// the hash-map path (see ast package), so Slots exists for the
// GetByIndex/PutByIndex opcodes a future slot-allocation pass would
// target, but is unused by any code this generator emits today.
type Environment struct {
	parent   *Environment
	bindings map[*object.Interned]value.TaggedValue
	Slots    []value.TaggedValue
}

// NewEnvironment creates a fresh lexical frame chained to parent (nil
// for the global/top-level frame).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, bindings: make(map[*object.Interned]value.TaggedValue, 8)}
}

// CreateBinding declares name in this frame, initialized to undefined if
// not already present. Redeclaring an existing binding (the `var`
// hoisting case) is a no-op, matching ECMAScript var semantics.
func (e *Environment) CreateBinding(name *object.Interned) {
	if _, ok := e.bindings[name]; ok {
		return
	}
	e.bindings[name] = value.Undefined
}

// Get resolves name by walking the environment chain outward, returning
// a ReferenceError if no frame declares it.
func (e *Environment) Get(name *object.Interned) (value.TaggedValue, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.bindings[name]; ok {
			return v, nil
		}
	}
	return value.Undefined, escerr.UnresolvedBinding(name.String())
}

// GetByIndex reads slot i directly in this frame — the lexical-slot fast
// path GetByIndex targets once a slot-allocation pass exists. Out-of-range
// reads return undefined rather than erroring, matching an uninitialized
// binding.
func (e *Environment) GetByIndex(i int) value.TaggedValue {
	if i < 0 || i >= len(e.Slots) {
		return value.Undefined
	}
	return e.Slots[i]
}

// PutByIndex writes slot i directly in this frame, growing Slots as
// needed.
func (e *Environment) PutByIndex(i int, v value.TaggedValue) {
	for i >= len(e.Slots) {
		e.Slots = append(e.Slots, value.Undefined)
	}
	e.Slots[i] = v
}

// Set assigns name to v in the nearest enclosing frame that declares it.
// Assigning an undeclared name is a ReferenceError (this engine does not
// implicitly create global bindings on write, unlike sloppy-mode
// ECMAScript — see SPEC_FULL.md's non-goals).
func (e *Environment) Set(name *object.Interned, v value.TaggedValue) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.bindings[name]; ok {
			env.bindings[name] = v
			return nil
		}
	}
	return escerr.UnresolvedBinding(name.String())
}
