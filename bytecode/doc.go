// Package bytecode implements Escargot's stack-machine instruction set,
// the CodeBlock a function compiles into, and the Generator whose Emit*
// helpers package ast calls while it walks an AST.
//
// # Instruction set
//
// Opcodes are grouped the way spec.md §4.1 groups them: stack
// manipulation, variable access, member access, arithmetic/logic,
// comparison, control flow, for-in, calls, exceptions, and return/halt.
// Each Instruction carries an opcode byte plus an immediate payload
// (constant value, slot index, jump target, call-site index, ...).
//
// # CodeBlock
//
// A CodeBlock owns the emitted byte buffer, a constant pool, a
// parameter descriptor, the ssaIndexTable the JIT front-end reads to
// recover SSA structure, a call-site side table, and per-bytecode
// inline-cache and type-profile slots.
//
// # Generation
//
// Package ast walks an ast.Node tree and calls Generator's Emit* helpers,
// which append one Instruction at a time to a CodeBlock. A
// GenerateContext tracks the operand
// stack's base offset and the pending break/continue patch lists a
// structural assertion must drain before the context is discarded
// (spec.md §5).
package bytecode
