package vm

import "github.com/escargot-js/escargot/value"

// HostFunction adapts a Go function into an object.Callable, the
// cooperative call-out boundary CallFunction/CallJS terminate on when no
// script-level CodeBlock backs a callee (spec.md §6). It is never a
// constructor: `new` against a host intrinsic is a TypeError the same way
// interp.invoke already rejects any non-constructible Callable.
type HostFunction struct {
	FnName string
	Fn     func(this value.TaggedValue, args []value.TaggedValue) (value.TaggedValue, error)
}

// Call implements object.Callable.
func (h *HostFunction) Call(this value.TaggedValue, args []value.TaggedValue) (value.TaggedValue, error) {
	return h.Fn(this, args)
}

// IsConstructor implements object.Callable.
func (h *HostFunction) IsConstructor() bool { return false }

// Name implements object.Callable.
func (h *HostFunction) Name() string { return h.FnName }
