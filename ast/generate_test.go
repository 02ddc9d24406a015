package ast

import (
	"testing"

	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/object"
)

func newTestContext() *GenContext {
	cb := bytecode.NewCodeBlock("test", 0)
	gen := bytecode.NewGenerator(cb)
	return NewGenContext(gen, object.NewDefaultStringTable())
}

func num(v float64) *Node { return &Node{Kind: KindNumberLiteral, NumValue: v} }
func ident(name string) *Node { return &Node{Kind: KindIdentifier, Name: name} }

func noSizeMaxLeft(t *testing.T, cb *bytecode.CodeBlock) {
	t.Helper()
	for i, instr := range cb.Instructions {
		if target, ok := instr.JumpTarget(); ok && target == bytecode.SizeMax {
			t.Fatalf("instruction %d still holds the SizeMax sentinel", i)
		}
	}
}

func TestGenerateBinaryExpression(t *testing.T) {
	gc := newTestContext()
	expr := &Node{Kind: KindBinary, Op: "+", Left: num(1), Right: num(2)}
	if _, err := expr.GenerateExpressionByteCode(gc); err != nil {
		t.Fatalf("GenerateExpressionByteCode: %v", err)
	}
	if len(gc.Gen.CB.Instructions) != 3 {
		t.Fatalf("expected 3 instructions (push, push, plus), got %d", len(gc.Gen.CB.Instructions))
	}
	last := gc.Gen.CB.Instructions[2]
	if last.Opcode != bytecode.OpPlus {
		t.Fatalf("expected last instruction Plus, got %s", last.Opcode)
	}
}

func TestGenerateIfElseJumpClosure(t *testing.T) {
	gc := newTestContext()
	stmt := &Node{
		Kind: KindIf,
		Test: ident("cond"),
		Cons: &Node{Kind: KindExpressionStatement, Left: num(1)},
		Alt:  &Node{Kind: KindExpressionStatement, Left: num(2)},
	}
	if err := stmt.GenerateStatementByteCode(gc); err != nil {
		t.Fatalf("GenerateStatementByteCode: %v", err)
	}
	noSizeMaxLeft(t, gc.Gen.CB)
}

func TestGenerateForLoopBreakContinueJumpClosure(t *testing.T) {
	gc := newTestContext()
	loop := &Node{
		Kind: KindFor,
		Init: nil,
		Test: ident("cond"),
		Cons: &Node{
			Kind: KindBlock,
			Children: []*Node{
				{Kind: KindIf, Test: ident("a"), Cons: &Node{Kind: KindBreak}},
				{Kind: KindIf, Test: ident("b"), Cons: &Node{Kind: KindContinue}},
			},
		},
	}
	if err := loop.GenerateStatementByteCode(gc); err != nil {
		t.Fatalf("GenerateStatementByteCode: %v", err)
	}
	noSizeMaxLeft(t, gc.Gen.CB)
}

func TestGenerateForInProducesExactlyOneEnumerateAndBackwardJump(t *testing.T) {
	gc := newTestContext()
	loop := &Node{
		Kind:  KindForIn,
		Left:  ident("k"),
		Right: ident("obj"),
		Cons: &Node{
			Kind: KindExpressionStatement,
			Left: ident("k"),
		},
	}
	if err := loop.GenerateStatementByteCode(gc); err != nil {
		t.Fatalf("GenerateStatementByteCode: %v", err)
	}
	noSizeMaxLeft(t, gc.Gen.CB)

	enumerateCount := 0
	checkCount := 0
	checkIdx := -1
	for i, instr := range gc.Gen.CB.Instructions {
		switch instr.Opcode {
		case bytecode.OpEnumerateObject:
			enumerateCount++
		case bytecode.OpCheckIfKeyIsLast:
			checkCount++
			checkIdx = i
		}
	}
	if enumerateCount != 1 {
		t.Fatalf("expected exactly one EnumerateObject, got %d", enumerateCount)
	}
	if checkCount != 1 {
		t.Fatalf("expected exactly one CheckIfKeyIsLast, got %d", checkCount)
	}
	backward := false
	for i, instr := range gc.Gen.CB.Instructions {
		if instr.Opcode != bytecode.OpJump || i <= checkIdx {
			continue
		}
		if target, ok := instr.JumpTarget(); ok && int(target) == checkIdx {
			backward = true
		}
	}
	if !backward {
		t.Fatalf("expected a backward Jump to the CheckIfKeyIsLast at %d", checkIdx)
	}
}

func TestGenerateSwitchJumpClosure(t *testing.T) {
	gc := newTestContext()
	sw := &Node{
		Kind: KindSwitch,
		Test: ident("x"),
		Children: []*Node{
			{Kind: KindSwitchCase, Test: num(1), Children: []*Node{{Kind: KindBreak}}},
			{Kind: KindSwitchCase, Test: nil, Children: []*Node{{Kind: KindBreak}}},
			{Kind: KindSwitchCase, Test: num(2), Children: []*Node{{Kind: KindBreak}}},
		},
	}
	if err := sw.GenerateStatementByteCode(gc); err != nil {
		t.Fatalf("GenerateStatementByteCode: %v", err)
	}
	noSizeMaxLeft(t, gc.Gen.CB)
}

func TestRoughSizeIsUpperBoundForSimpleExpression(t *testing.T) {
	expr := &Node{Kind: KindBinary, Op: "+", Left: num(1), Right: num(2)}
	var estimate int
	expr.ComputeRoughCodeBlockSizeInWordSize(&estimate)

	gc := newTestContext()
	if _, err := expr.GenerateExpressionByteCode(gc); err != nil {
		t.Fatalf("GenerateExpressionByteCode: %v", err)
	}
	if got := len(gc.Gen.CB.Instructions); got > estimate {
		t.Fatalf("emitted %d instructions, exceeding rough estimate %d", got, estimate)
	}
}

func TestRoughSizeIsUpperBoundForLoop(t *testing.T) {
	loop := &Node{
		Kind: KindFor,
		Test: ident("cond"),
		Cons: &Node{
			Kind: KindBlock,
			Children: []*Node{
				{Kind: KindIf, Test: ident("a"), Cons: &Node{Kind: KindBreak}},
			},
		},
	}
	var estimate int
	loop.ComputeRoughCodeBlockSizeInWordSize(&estimate)

	gc := newTestContext()
	if err := loop.GenerateStatementByteCode(gc); err != nil {
		t.Fatalf("GenerateStatementByteCode: %v", err)
	}
	if got := len(gc.Gen.CB.Instructions); got > estimate {
		t.Fatalf("emitted %d instructions, exceeding rough estimate %d", got, estimate)
	}
}
