package jit

import (
	"testing"

	"github.com/escargot-js/escargot/ir"
)

func TestInferTypesSpecializesInt32PlusToInt32Plus(t *testing.T) {
	g := ir.NewGraph(3)
	b := g.NewBlock()
	b.Instructions = []ir.Instr{
		{Op: ir.OpConstantInt, Target: 0, Src1: -1, Src2: -1, ConstInt: 1},
		{Op: ir.OpConstantInt, Target: 1, Src1: -1, Src2: -1, ConstInt: 2},
		{Op: ir.OpGenericPlus, Target: 2, Src1: 0, Src2: 1},
	}
	if ok := InferTypes(g); !ok {
		t.Fatalf("expected InferTypes to succeed")
	}
	if b.Instructions[2].Op != ir.OpInt32Plus {
		t.Fatalf("expected GenericPlus to specialize to Int32Plus, got %v", b.Instructions[2].Op)
	}
	if got := g.TypeOf(2); got != ir.TypeInt32 {
		t.Fatalf("expected target type Int32, got %v", got)
	}
}

func TestInferTypesMultiplySeedsDoubleOverflowGuard(t *testing.T) {
	g := ir.NewGraph(3)
	b := g.NewBlock()
	g.SetType(0, ir.TypeInt32)
	g.SetType(1, ir.TypeInt32)
	b.Instructions = []ir.Instr{
		{Op: ir.OpGenericMultiply, Target: 2, Src1: 0, Src2: 1},
	}
	if ok := InferTypes(g); !ok {
		t.Fatalf("expected InferTypes to succeed")
	}
	if b.Instructions[0].Op != ir.OpInt32Multiply {
		t.Fatalf("expected Int32Multiply, got %v", b.Instructions[0].Op)
	}
	// Deliberately Double, not Int32: the product may overflow Int32.
	if got := g.TypeOf(2); got != ir.TypeDouble {
		t.Fatalf("expected target type Double despite Int32Multiply, got %v", got)
	}
}

func TestInferTypesStringPlusWinsOverNumber(t *testing.T) {
	g := ir.NewGraph(3)
	b := g.NewBlock()
	g.SetType(0, ir.TypeString)
	g.SetType(1, ir.TypeInt32)
	b.Instructions = []ir.Instr{
		{Op: ir.OpGenericPlus, Target: 2, Src1: 0, Src2: 1},
	}
	if ok := InferTypes(g); !ok {
		t.Fatalf("expected InferTypes to succeed")
	}
	if b.Instructions[0].Op != ir.OpStringPlus {
		t.Fatalf("expected StringPlus, got %v", b.Instructions[0].Op)
	}
	if got := g.TypeOf(2); got != ir.TypeString {
		t.Fatalf("expected target type String, got %v", got)
	}
}

func TestInferTypesLoadPhiBailsOutOnDisagreement(t *testing.T) {
	g := ir.NewGraph(3)
	b := g.NewBlock()
	g.SetType(0, ir.TypeInt32)
	g.SetType(1, ir.TypeString)
	b.Instructions = []ir.Instr{
		{Op: ir.OpLoadPhi, Target: 2, Src1: 0, Src2: 1},
	}
	if ok := InferTypes(g); ok {
		t.Fatalf("expected InferTypes to bail out on disagreeing phi sources")
	}
}

func TestInferTypesLoadPhiMergesAgreeingTypes(t *testing.T) {
	g := ir.NewGraph(3)
	b := g.NewBlock()
	g.SetType(0, ir.TypeInt32)
	g.SetType(1, ir.TypeInt32)
	b.Instructions = []ir.Instr{
		{Op: ir.OpLoadPhi, Target: 2, Src1: 0, Src2: 1},
	}
	if ok := InferTypes(g); !ok {
		t.Fatalf("expected InferTypes to succeed on agreeing phi sources")
	}
	if got := g.TypeOf(2); got != ir.TypeInt32 {
		t.Fatalf("expected merged type Int32, got %v", got)
	}
}

func TestInferTypesComparisonsProduceBoolean(t *testing.T) {
	g := ir.NewGraph(3)
	b := g.NewBlock()
	b.Instructions = []ir.Instr{
		{Op: ir.OpLessThan, Target: 2, Src1: 0, Src2: 1},
	}
	if ok := InferTypes(g); !ok {
		t.Fatalf("expected InferTypes to succeed")
	}
	if got := g.TypeOf(2); got != ir.TypeBoolean {
		t.Fatalf("expected Boolean, got %v", got)
	}
}

func TestInferTypesGetObjectSpecializesToArrayAccess(t *testing.T) {
	g := ir.NewGraph(3)
	b := g.NewBlock()
	g.SetType(0, ir.TypeArrayObject)
	g.SetType(1, ir.TypeInt32)
	b.Instructions = []ir.Instr{
		{Op: ir.OpGetObject, Target: 2, Src1: 0, Src2: 1},
	}
	if ok := InferTypes(g); !ok {
		t.Fatalf("expected InferTypes to succeed")
	}
	if b.Instructions[0].Op != ir.OpGetArrayObject {
		t.Fatalf("expected GetObject to specialize to GetArrayObject, got %v", b.Instructions[0].Op)
	}
}
