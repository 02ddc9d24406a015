package bytecode

import (
	"testing"

	"github.com/escargot-js/escargot/value"
)

func TestGeneratorEmitBreakContinueJumpClosure(t *testing.T) {
	cb := NewCodeBlock("loop", 0)
	g := NewGenerator(cb)

	ctx := g.PushContext(0)
	g.EmitLoopStart()
	g.EmitBreak(ctx, "")
	g.EmitContinue(ctx, "")
	end := g.Here()
	ctx.ConsumeBreakPositions(cb, end)
	ctx.ConsumeContinuePositions(cb, 0)
	g.PopContext()

	if err := ctx.Close(); err != nil {
		t.Fatalf("unexpected unresolved jump: %v", err)
	}

	for i, instr := range cb.Instructions {
		if target, ok := instr.JumpTarget(); ok && target == SizeMax {
			t.Fatalf("instruction %d still holds the SizeMax sentinel", i)
		}
	}
}

func TestGeneratorLabeledBreakPropagatesPastInnerLoop(t *testing.T) {
	cb := NewCodeBlock("nested", 0)
	g := NewGenerator(cb)

	outer := g.PushContext(0)
	inner := g.PushContext(0)

	g.EmitBreak(inner, "outer")
	innerEnd := g.Here()
	inner.ConsumeBreakPositions(cb, innerEnd)
	inner.PropagateInformationTo(outer)
	g.PopContext()

	if err := inner.Close(); err != nil {
		t.Fatalf("inner context should have propagated cleanly: %v", err)
	}

	outerEnd := g.Here()
	outer.ConsumeLabeledBreakPositions(cb, "outer", outerEnd)
	g.PopContext()

	if err := outer.Close(); err != nil {
		t.Fatalf("outer context should be fully drained: %v", err)
	}
}

func TestGeneratorSwitchTwoSweepDispatch(t *testing.T) {
	cb := NewCodeBlock("switch", 0)
	g := NewGenerator(cb)

	discriminant := 0
	cases := g.EmitSwitchDispatch(discriminant, []value.TaggedValue{value.Int32(1), value.Int32(2)})
	defaultJump := g.EmitSwitchDefaultJump()

	// Second sweep: emit bodies in order, patch each case (and default)
	// dispatch jump to its body's start offset.
	body0 := g.Here()
	g.EmitPop()
	body1 := g.Here()
	g.EmitPop()
	defaultBody := g.Here()
	g.EmitPop()

	g.PatchSwitchCase(cases[0], body0)
	g.PatchSwitchCase(cases[1], body1)
	cb.PatchJump(defaultJump, defaultBody)

	for i, instr := range cb.Instructions {
		if target, ok := instr.JumpTarget(); ok && target == SizeMax {
			t.Fatalf("instruction %d still holds the SizeMax sentinel after switch patching", i)
		}
	}
}

func TestGeneratorMakeClosureReferencesChildByIndex(t *testing.T) {
	cb := NewCodeBlock("outer", 0)
	g := NewGenerator(cb)

	child := NewCodeBlock("inner", 1)
	idx := cb.AddChild(child)
	g.EmitMakeClosure(idx, 0)

	instr := cb.Instructions[0]
	imm, ok := instr.Imm.(FunctionImm)
	if !ok || imm.ChildIndex != idx {
		t.Fatalf("expected FunctionImm{ChildIndex: %d}, got %#v (ok=%v)", idx, instr.Imm, ok)
	}
	if cb.Children[imm.ChildIndex] != child {
		t.Fatalf("expected Children[%d] to be the registered child CodeBlock", imm.ChildIndex)
	}
}

func TestGeneratorForInHeaderPatchesExit(t *testing.T) {
	cb := NewCodeBlock("forin", 0)
	g := NewGenerator(cb)

	h := g.EmitForInHeader(0, 1)
	g.EmitPop() // body
	end := g.Here()
	g.PatchForInExit(h, end)

	target, ok := cb.Instructions[h.JumpOutIdx].JumpTarget()
	if !ok || target != end {
		t.Fatalf("expected for-in exit patched to %d, got %d (ok=%v)", end, target, ok)
	}
}
