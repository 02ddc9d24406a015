package bytecode

import "github.com/escargot-js/escargot/object"

// Instruction is a single stack-machine instruction: an opcode plus a
// tagged immediate payload. Most opcodes carry no payload (Imm is nil);
// the rest carry one of the *Imm structs below (spec.md §4.1).
type Instruction struct {
	Imm    any
	Opcode Opcode
}

// PushImm carries a constant-pool index for Push.
type PushImm struct {
	ConstIdx int
}

// NameImm carries an interned property/binding name, used by GetById,
// PutById, CreateBinding, and the global-variable opcodes.
type NameImm struct {
	Name          *object.Interned
	NonAtomicName bool
}

// SlotImm carries a lexical-frame slot index, used by GetByIndex/PutByIndex.
type SlotImm struct {
	Slot int
}

// PreComputedImm carries an interned property key plus the index of the
// inline-cache slot this bytecode site owns in the CodeBlock
// (GetObjectPreComputedCase / PutInObjectPreComputedCase, spec.md §4.5).
type PreComputedImm struct {
	Key    *object.Interned
	ICSlot int
}

// PutComputedImm carries the SSA index of a computed property key for
// PutInObject, whose SSA triple already spends both source slots on the
// object and the value being stored.
type PutComputedImm struct {
	KeySSA int
}

// ArraySetImm carries a literal element index and the SSA index of its
// value for CreateArray-time initialization (SetObject), whose SSA
// triple carries only the array, in Src1.
type ArraySetImm struct {
	Index   int
	ValueSSA int
}

// CreateArrayImm carries the element count CreateArray allocates space for.
type CreateArrayImm struct {
	Length int
}

// JumpImm carries a forward or backward jump target, a byte offset into
// the CodeBlock's buffer. A forward jump is emitted with Target ==
// SizeMax and backpatched once its real target is known (spec.md §4.1).
type JumpImm struct {
	Target uint32
}

// LoopStartImm carries the index of this loop's profile slot in the
// CodeBlock, the front-end's signal to start a new basic block
// (spec.md §4.3).
type LoopStartImm struct {
	ProfileSlot int
}

// StackPointerImm carries the operand-stack depth a labeled statement
// restores to after its body completes (spec.md §4.1).
type StackPointerImm struct {
	Delta int
}

// CallImm carries the index of this call site's descriptor in the
// CodeBlock's functionCallInfos side table (spec.md §4.1, §4.3).
type CallImm struct {
	CallInfoIdx int
}

// ArgCountImm carries the argument count PrepareFunctionCall reserves
// operand-stack space for.
type ArgCountImm struct {
	ArgCount int
}

// FunctionImm carries the index of a nested function into the enclosing
// CodeBlock's Children table, for MakeClosure.
type FunctionImm struct {
	ChildIndex int
}

// GetCallInfoIdx returns the call-site descriptor index if this is a
// CallFunction/NewFunctionCall instruction.
func (i Instruction) GetCallInfoIdx() (int, bool) {
	if i.Opcode != OpCallFunction && i.Opcode != OpNewFunctionCall {
		return 0, false
	}
	if imm, ok := i.Imm.(CallImm); ok {
		return imm.CallInfoIdx, true
	}
	return 0, false
}

// IsJump reports whether this instruction is one of the jump family
// (unconditional or conditional), used by the JIT front-end's lazy
// basic-block discovery (spec.md §4.3).
func (i Instruction) IsJump() bool {
	switch i.Opcode {
	case OpJump, OpJumpIfFalse, OpJumpIfTrue, OpJumpIfFalseWithPeeking,
		OpJumpIfTrueWithPeeking, OpJumpAndPopIfTrue:
		return true
	default:
		return false
	}
}

// IsConditionalJump reports whether this jump has a fallthrough edge in
// addition to its target edge.
func (i Instruction) IsConditionalJump() bool {
	switch i.Opcode {
	case OpJumpIfFalse, OpJumpIfTrue, OpJumpIfFalseWithPeeking, OpJumpIfTrueWithPeeking, OpJumpAndPopIfTrue:
		return true
	default:
		return false
	}
}

// JumpTarget extracts the byte-offset target of a jump instruction.
func (i Instruction) JumpTarget() (uint32, bool) {
	if !i.IsJump() {
		return 0, false
	}
	if imm, ok := i.Imm.(JumpImm); ok {
		return imm.Target, true
	}
	return 0, false
}

// IsBlockTerminator reports whether control never falls through this
// instruction to the next one in program order.
func (i Instruction) IsBlockTerminator() bool {
	switch i.Opcode {
	case OpJump, OpReturnFunction, OpReturnFunctionWithValue, OpThrow, OpEnd:
		return true
	default:
		return false
	}
}
