package bytecode

import "testing"

func TestGenerateContextConsumeBreak(t *testing.T) {
	cb := NewCodeBlock("f", 0)
	ctx := NewGenerateContext(0)

	idx := cb.Emit(Instruction{Opcode: OpJump, Imm: JumpImm{Target: SizeMax}}, -1, -1, -1)
	ctx.RecordBreak(idx)

	ctx.ConsumeBreakPositions(cb, 42)

	target, ok := cb.Instructions[idx].JumpTarget()
	if !ok || target != 42 {
		t.Fatalf("expected patched jump target 42, got %d (ok=%v)", target, ok)
	}
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close() after consuming breaks: %v", err)
	}
}

func TestGenerateContextUnconsumedBreakIsError(t *testing.T) {
	cb := NewCodeBlock("f", 0)
	ctx := NewGenerateContext(0)

	idx := cb.Emit(Instruction{Opcode: OpJump, Imm: JumpImm{Target: SizeMax}}, -1, -1, -1)
	ctx.RecordBreak(idx)

	if err := ctx.Close(); err == nil {
		t.Fatal("expected Close() to report the unconsumed break position")
	}
}

func TestGenerateContextLabeledBreakContinue(t *testing.T) {
	cb := NewCodeBlock("f", 0)
	ctx := NewGenerateContext(0)

	idx := cb.Emit(Instruction{Opcode: OpJump, Imm: JumpImm{Target: SizeMax}}, -1, -1, -1)
	ctx.RecordLabeledBreak("outer", idx)

	ctx.ConsumeLabeledBreakPositions(cb, "outer", 7)

	target, _ := cb.Instructions[idx].JumpTarget()
	if target != 7 {
		t.Fatalf("expected target 7, got %d", target)
	}
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close(): %v", err)
	}
}

func TestGenerateContextPropagateInformationTo(t *testing.T) {
	cb := NewCodeBlock("f", 0)
	parent := NewGenerateContext(0)
	child := NewGenerateContext(0)

	idx := cb.Emit(Instruction{Opcode: OpJump, Imm: JumpImm{Target: SizeMax}}, -1, -1, -1)
	child.RecordLabeledBreak("outer", idx)

	child.PropagateInformationTo(parent)

	if err := child.Close(); err != nil {
		t.Fatalf("child should be empty after propagation: %v", err)
	}
	parent.ConsumeLabeledBreakPositions(cb, "outer", 9)
	target, _ := cb.Instructions[idx].JumpTarget()
	if target != 9 {
		t.Fatalf("expected propagated break to patch to 9, got %d", target)
	}
}
