package bytecode

import "github.com/escargot-js/escargot/value"

// Generator drives bytecode emission into a single CodeBlock. It owns no
// AST knowledge: package ast calls back into Generator's Emit* helpers
// while it walks a Node tree, keeping the dependency one-directional
// (ast imports bytecode, never the reverse) the way the teacher keeps
// wasm's encoder ignorant of the component layer that drives it.
type Generator struct {
	CB *CodeBlock

	// contexts is the stack of in-flight GenerateContexts, innermost last.
	// Loops, switches, and labeled statements each push one before
	// emitting their body and pop (after consuming their own lists and
	// propagating whatever they can't resolve) when the body is done.
	contexts []*GenerateContext
}

// NewGenerator creates a Generator that emits into cb.
func NewGenerator(cb *CodeBlock) *Generator {
	return &Generator{CB: cb}
}

// PushContext starts a new nested emission context with the given
// operand-stack base offset (spec.md §6).
func (g *Generator) PushContext(stackBaseOffset int) *GenerateContext {
	ctx := NewGenerateContext(stackBaseOffset)
	g.contexts = append(g.contexts, ctx)
	return ctx
}

// PopContext removes the innermost context, returning it. Callers must
// have already consumed or propagated its pending jump lists.
func (g *Generator) PopContext() *GenerateContext {
	n := len(g.contexts)
	ctx := g.contexts[n-1]
	g.contexts = g.contexts[:n-1]
	return ctx
}

// Current returns the innermost in-flight context, or nil at top level.
func (g *Generator) Current() *GenerateContext {
	if len(g.contexts) == 0 {
		return nil
	}
	return g.contexts[len(g.contexts)-1]
}

// ParentContext returns the context directly enclosing the innermost
// one, or nil if the innermost context is outermost (or there is none).
// A construct calls this just before popping itself off, to propagate
// whatever labeled jumps it doesn't own up to where they can still be
// resolved.
func (g *Generator) ParentContext() *GenerateContext {
	if len(g.contexts) < 2 {
		return nil
	}
	return g.contexts[len(g.contexts)-2]
}

// Here returns the instruction index the next Emit call will occupy —
// the bytecodeCounter of spec.md §4.1.
func (g *Generator) Here() uint32 { return uint32(len(g.CB.Instructions)) }

// emit appends instr with no SSA triple (control/stack-shape instructions
// that don't produce or consume a tracked SSA value), returning its index.
func (g *Generator) emit(op Opcode, imm any) int {
	return g.CB.Emit(Instruction{Opcode: op, Imm: imm}, -1, -1, -1)
}

// EmitPush emits Push(v), interning v into the constant pool.
func (g *Generator) EmitPush(v value.TaggedValue, target int) int {
	idx := g.CB.AddConstant(v)
	return g.CB.Emit(Instruction{Opcode: OpPush, Imm: PushImm{ConstIdx: idx}}, target, -1, -1)
}

// EmitPop emits Pop.
func (g *Generator) EmitPop() int { return g.emit(OpPop, nil) }

// EmitOp emits a bare, no-payload, no-SSA-target opcode (PopExpressionStatement,
// ReturnFunction, ...).
func (g *Generator) EmitOp(op Opcode) int { return g.emit(op, nil) }

// EmitJump emits an unconditional Jump to a known target.
func (g *Generator) EmitJump(target uint32) int {
	return g.emit(OpJump, JumpImm{Target: target})
}

// EmitConditionalJump emits a conditional jump (JumpIfTrue/JumpIfFalse
// and their peeking variants) to a known target and test register —
// used by do-while's backward branch, where the target is already
// resolved and no patch list entry is needed.
func (g *Generator) EmitConditionalJump(op Opcode, target uint32, testReg int) int {
	return g.CB.Emit(Instruction{Opcode: op, Imm: JumpImm{Target: target}}, -1, testReg, -1)
}

// EmitPendingJump emits Jump(SizeMax) and returns its instruction index so
// the caller can hand it to a GenerateContext's Record* method. Used for
// unconditional jumps (break/continue/switch default), which read no
// register, and for the for-in exit JumpIfTrue, which has no test
// register and acts on the preceding CheckIfKeyIsLast's result.
func (g *Generator) EmitPendingJump(op Opcode) int {
	return g.emit(op, JumpImm{Target: SizeMax})
}

// EmitPendingConditionalJump emits Jump(SizeMax) reading its test from
// testReg — the register-machine counterpart of EmitPendingJump for
// JumpIfFalse/JumpIfTrue and their variants, where the interpreter needs
// to know which register to test.
func (g *Generator) EmitPendingConditionalJump(op Opcode, testReg int) int {
	return g.CB.Emit(Instruction{Opcode: op, Imm: JumpImm{Target: SizeMax}}, -1, testReg, -1)
}

// EmitBreak emits a pending break jump and records it on ctx (or, if
// label is non-empty, on ctx's labeled-break list).
func (g *Generator) EmitBreak(ctx *GenerateContext, label string) {
	idx := g.EmitPendingJump(OpJump)
	if label == "" {
		ctx.RecordBreak(idx)
	} else {
		ctx.RecordLabeledBreak(label, idx)
	}
}

// EmitContinue emits a pending continue jump and records it on ctx (or,
// if label is non-empty, on ctx's labeled-continue list).
func (g *Generator) EmitContinue(ctx *GenerateContext, label string) {
	idx := g.EmitPendingJump(OpJump)
	if label == "" {
		ctx.RecordContinue(idx)
	} else {
		ctx.RecordLabeledContinue(label, idx)
	}
}

// EmitLoopStart emits LoopStart with a fresh profile slot and returns its
// instruction index; the JIT front-end treats this opcode as a basic-block
// boundary and an OSR-entry candidate (spec.md §4.3).
func (g *Generator) EmitLoopStart() int {
	slot := g.CB.AddProfileSlot()
	return g.emit(OpLoopStart, LoopStartImm{ProfileSlot: slot})
}

// EmitLoadStackPointer emits an operand-stack restoration by delta
// (spec.md §4.1). Package ast does not call it, a labeled statement
// included, and the interpreter and JIT front-end treat the opcode as a
// no-op.
func (g *Generator) EmitLoadStackPointer(delta int) int {
	return g.emit(OpLoadStackPointer, StackPointerImm{Delta: delta})
}

// EmitMakeClosure emits MakeClosure referencing childIndex (this
// CodeBlock's index into Children), producing target.
func (g *Generator) EmitMakeClosure(childIndex, target int) int {
	return g.CB.Emit(Instruction{Opcode: OpMakeClosure, Imm: FunctionImm{ChildIndex: childIndex}}, target, -1, -1)
}

// --- For-in -----------------------------------------------------------

// ForInHandles are the three instruction indices a for-in loop's compound
// header needs patched once its body and end are known.
type ForInHandles struct {
	EnumerateIdx     int
	CheckIfLastIdx   int
	JumpOutIdx       int // pending jump taken when CheckIfKeyIsLast says "done"
	EnumerateKeyIdx  int
}

// EmitForInHeader emits the EnumerateObject / CheckIfKeyIsLast /
// EnumerateObjectKey triple that opens a for-in loop body (spec.md §4.1,
// §4.2 "for-in enumerates only enumerable string keys, own and
// inherited, each key visited once even if the object's shape changes
// mid-iteration"). The caller patches JumpOutIdx to the loop's end once
// that offset is known.
func (g *Generator) EmitForInHeader(objTarget, keyTarget int) ForInHandles {
	var h ForInHandles
	h.EnumerateIdx = g.CB.Emit(Instruction{Opcode: OpEnumerateObject}, -1, objTarget, -1)
	h.CheckIfLastIdx = g.emit(OpCheckIfKeyIsLast, nil)
	h.JumpOutIdx = g.EmitPendingJump(OpJumpIfTrue)
	h.EnumerateKeyIdx = g.CB.Emit(Instruction{Opcode: OpEnumerateObjectKey}, keyTarget, -1, -1)
	return h
}

// PatchForInExit patches the loop-exit jump of a for-in header once the
// loop's end offset is known.
func (g *Generator) PatchForInExit(h ForInHandles, endOffset uint32) {
	g.CB.PatchJump(h.JumpOutIdx, endOffset)
}

// --- Switch -------------------------------------------------------------

// SwitchCase is one `case` arm's test-emission handle: the instruction
// index of its conditional dispatch jump (pending, target = its body
// start, patched once every case in the sweep has been emitted) and the
// body's own start offset once known.
type SwitchCase struct {
	TestJumpIdx int
	BodyOffset  uint32
}

// EmitSwitchDispatch performs the first sweep of a switch statement's
// two-sweep emission (spec.md §4.1 design note: "switch statements are
// compiled in two sweeps: first the test-and-dispatch sequence for every
// case in source order, then the case bodies themselves, so a later case
// can fall through into an earlier case's body without duplicate tests").
// For each case it materializes the case's test constant into a fresh
// register, compares it against discriminantTarget with StrictEqual, and
// emits a pending conditional jump reading the comparison's result; the
// default case is dispatched last via a bare pending Jump, so the caller
// should pass only the non-default cases here and handle default
// separately. discriminantTarget is read once per case, never consumed —
// the register-machine model has no stack to duplicate or pop.
func (g *Generator) EmitSwitchDispatch(discriminantTarget int, tests []value.TaggedValue) []SwitchCase {
	nextReg := discriminantTarget + 1
	freshReg := func() int {
		r := nextReg
		nextReg++
		return r
	}
	cases := make([]SwitchCase, len(tests))
	for i, t := range tests {
		tc := g.CB.AddConstant(t)
		testReg := freshReg()
		g.CB.Emit(Instruction{Opcode: OpPush, Imm: PushImm{ConstIdx: tc}}, testReg, -1, -1)
		eqTarget := freshReg()
		g.CB.Emit(Instruction{Opcode: OpStrictEqual}, eqTarget, discriminantTarget, testReg)
		cases[i].TestJumpIdx = g.EmitPendingConditionalJump(OpJumpIfTrue, eqTarget)
	}
	return cases
}

// EmitSwitchDefaultJump emits the unconditional pending jump to the
// default case's body, taken when no preceding test matched.
func (g *Generator) EmitSwitchDefaultJump() int {
	return g.EmitPendingJump(OpJump)
}

// PatchSwitchCase patches one case's dispatch jump to its body offset,
// recorded once the second sweep reaches that body.
func (g *Generator) PatchSwitchCase(c SwitchCase, bodyOffset uint32) {
	g.CB.PatchJump(c.TestJumpIdx, bodyOffset)
}
