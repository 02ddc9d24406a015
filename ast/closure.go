package ast

import (
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/object"
)

// compileFunctionNode lowers a KindFunctionExpr/KindFunctionDecl node
// into its own CodeBlock via the same Compile entrypoint a top-level
// Program goes through — a nested function gets its own unit of
// compilation rather than being inlined into the enclosing scope's
// instruction stream (spec.md §2 treats a CodeBlock as the thing the
// interpreter/JIT operate on). n.Left holds the function body (a
// KindBlock); Compile is happy to take any statement node as its root.
func compileFunctionNode(name string, n *Node, strings *object.StringTable) (*bytecode.CodeBlock, error) {
	cb, err := Compile(name, len(n.Params), n.Left, strings)
	if err != nil {
		return nil, err
	}
	cb.ParamNames = n.Params
	return cb, nil
}

// emitClosure compiles n into a child CodeBlock of gc's own CodeBlock and
// emits the MakeClosure that instantiates it, returning the SSA target
// holding the resulting FunctionObject.
func emitClosure(gc *GenContext, name string, n *Node) (int, error) {
	child, err := compileFunctionNode(name, n, gc.Strings)
	if err != nil {
		return 0, err
	}
	idx := gc.Gen.CB.AddChild(child)
	target := gc.FreshSSA()
	gc.Gen.EmitMakeClosure(idx, target)
	return target, nil
}
