// Package escargot is the root of a lightweight ECMAScript execution
// engine: a TaggedValue/HiddenClass object model, a register-machine
// bytecode interpreter, and a JIT front-end that lifts hot CodeBlocks into
// a typed SSA graph for a forward type-inference pass.
//
// # Architecture Overview
//
// The engine is organized into packages with distinct responsibilities:
//
//	escargot/         Root package: external-collaborator interfaces (Source, CodeGenerator)
//	├── value/        TaggedValue representation + ECMAScript abstract conversions
//	├── object/       HeapObject, HiddenClass/Shape, ArrayObject, StringObject, StringTable, inline caches
//	├── ast/          Minimal tagged-variant AST consumed by the bytecode generator
//	├── bytecode/     ISA opcodes, Instruction, CodeBlock, Generator
//	├── interp/       Register-machine interpreter, environment chain, closures
//	├── ir/           ESGraph / ESBasicBlock / ESIR instruction family
//	├── jit/          Front-end (bytecode→ESGraph) and the type-inference pass
//	├── vm/           VM instance: CodeBlock execution, JIT promotion, global object
//	├── escerr/       Structured Phase × Kind errors
//	└── cmd/escargot/ Flag-driven smoke-test CLI + bubbletea debug REPL
//
// # Quick Start
//
// Build a CodeBlock from an AST and run it against a fresh VM:
//
//	machine := vm.New(nil)
//	cb, err := ast.Compile("main", 0, program, machine.Interpreter().Strings)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := machine.Run(cb, nil, value.Undefined, nil)
//
// The lexer/parser that produces `program` is an external collaborator
// (see Source below) — this module starts at the AST.
package escargot
