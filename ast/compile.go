package ast

import (
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/object"
)

// Compile lowers program (a KindProgram or KindFunctionExpr body Node)
// into a fresh CodeBlock named name taking paramCount parameters. It is
// the single entrypoint package vm drives: everything else in this
// package is reachable only from here or from GenerateStatementByteCode/
// GenerateExpressionByteCode's own recursion (spec.md §6).
func Compile(name string, paramCount int, program *Node, strings *object.StringTable) (*bytecode.CodeBlock, error) {
	cb := bytecode.NewCodeBlock(name, paramCount)
	gen := bytecode.NewGenerator(cb)
	gc := NewGenContext(gen, strings)

	if err := program.GenerateStatementByteCode(gc); err != nil {
		return nil, err
	}
	gen.EmitOp(bytecode.OpReturnFunction)

	cb.RegisterCount = gc.NumRegisters()
	return cb, nil
}
