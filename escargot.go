package escargot

import "github.com/escargot-js/escargot/ast"

// Source is the external lexer/parser collaborator this module assumes
// but does not implement (spec.md §1 Non-goals: "the lexer/parser").
// Anything producing a *ast.Node tree rooted at ast.KindProgram — a
// hand-written test fixture, a parser generator, a transpiler's output —
// satisfies this interface and can feed ast.Compile directly.
type Source interface {
	// Parse lowers src into the tagged-variant AST package ast and
	// package bytecode's Generator consume. name is used only for the
	// resulting CodeBlock's Name (disassembly, stack traces).
	Parse(name, src string) (*ast.Node, error)
}

// CodeGenerator is the external machine-code emission back-end this
// module stops short of (spec.md §1 Non-goals: "a general-purpose
// optimizing compiler"). Package jit hands it a fully type-inferred
// ESGraph; what comes out the other side (native code, a second-tier
// bytecode, anything) is outside this module's scope.
type CodeGenerator interface {
	// Lower takes graph (an *ir.Graph, kept as `any` here so this
	// interface doesn't force a dependency on package ir onto every
	// implementer that doesn't need one) and produces an opaque
	// executable artifact, or an error if graph contains a form it
	// cannot lower.
	Lower(graph any) (any, error)
}
