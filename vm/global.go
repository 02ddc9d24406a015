package vm

import (
	"fmt"
	"strings"

	"github.com/escargot-js/escargot/interp"
	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

// newGlobalEnvironment builds the top-level lexical frame every CodeBlock
// the VM runs at program scope chains to as its parent (SPEC_FULL.md §4):
// a minimal global record, not the full built-in library, giving
// GetGlobalVar/PutGlobalVar somewhere real to resolve through and
// inline-cache sites a real shape to miss/hit against. Its one seeded
// binding is "console", an object exposing a single "log" method.
func (vm *VM) newGlobalEnvironment() *interp.Environment {
	env := interp.NewEnvironment(nil)

	console := object.NewObject(object.RootShape(), vm.it.ObjectProto)
	logFn := object.NewFunctionObject(object.RootShape(), vm.it.FunctionProto, &HostFunction{
		FnName: "log",
		Fn:     vm.consoleLog,
	})
	console.DefineOwn(vm.it.Strings, vm.it.Strings.Intern("log"), value.Pointer(logFn), object.DefaultDataFlags)

	consoleKey := vm.it.Strings.Intern("console")
	env.CreateBinding(consoleKey)
	_ = env.Set(consoleKey, value.Pointer(console))

	return env
}

// consoleLog implements console.log: each argument is coerced through
// value.ToStringValue and space-joined, mirroring the teacher's
// newline-per-call stdout reporting in cmd/run/main.go's -func output.
func (vm *VM) consoleLog(this value.TaggedValue, args []value.TaggedValue) (value.TaggedValue, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.ToStringValue(a)
	}
	fmt.Fprintln(vm.Stdout, strings.Join(parts, " "))
	return value.Undefined, nil
}

// Global returns the VM's top-level environment, letting a caller declare
// or inspect additional global bindings before running a Program-level
// CodeBlock against it.
func (vm *VM) Global() *interp.Environment {
	return vm.globalEnv
}
