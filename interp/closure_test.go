package interp

import (
	"testing"

	"github.com/escargot-js/escargot/ast"
	"github.com/escargot-js/escargot/value"
)

// TestExecuteFunctionDeclClosureCallsAndReturns drives a full declare-
// then-call program through the register machine:
//
//	function add(a, b) { return a + b; }
//	return add(1, 2);
func TestExecuteFunctionDeclClosureCallsAndReturns(t *testing.T) {
	body := &ast.Node{Kind: ast.KindBlock, Children: []*ast.Node{
		{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("a"), Right: ident("b")}},
	}}
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindFunctionDecl, Name: "add", Params: []string{"a", "b"}, Left: body},
		{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindCall, Left: ident("add"), Children: []*ast.Node{num(1), num(2)}}},
	}}
	got, err := compileAndRun(t, program, nil, value.Undefined, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !got.IsInt32() || got.AsInt32() != 3 {
		t.Fatalf("expected Int32(3), got %v", got)
	}
}

// TestExecuteClosureCapturesEnclosingBinding confirms a nested function
// reads a binding from its defining scope rather than the call site's:
//
//	var x = 10;
//	function readX() { return x; }
//	x = 20;
//	return readX();
func TestExecuteClosureCapturesEnclosingBinding(t *testing.T) {
	body := &ast.Node{Kind: ast.KindBlock, Children: []*ast.Node{
		{Kind: ast.KindReturn, Left: ident("x")},
	}}
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindVarDecl, Children: []*ast.Node{
			{Kind: ast.KindVarDeclarator, Name: "x", Left: num(10)},
		}},
		{Kind: ast.KindFunctionDecl, Name: "readX", Left: body},
		{Kind: ast.KindExpressionStatement, Left: &ast.Node{
			Kind: ast.KindAssignment, Op: "=", Left: ident("x"), Right: num(20),
		}},
		{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindCall, Left: ident("readX")}},
	}}
	got, err := compileAndRun(t, program, nil, value.Undefined, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !got.IsInt32() || got.AsInt32() != 20 {
		t.Fatalf("expected Int32(20) from captured binding, got %v", got)
	}
}

// TestExecuteNewOnClosureAllocatesFromPrototype confirms MakeClosure seeds
// a usable "prototype" own property: new Point() should allocate a
// receiver chaining to it, per interp.invoke's `new` protocol.
func TestExecuteNewOnClosureAllocatesFromPrototype(t *testing.T) {
	body := &ast.Node{Kind: ast.KindBlock, Children: []*ast.Node{
		{Kind: ast.KindExpressionStatement, Left: &ast.Node{
			Kind: ast.KindAssignment, Op: "=",
			Left:  &ast.Node{Kind: ast.KindMember, Left: ident("this"), Name: "x"},
			Right: num(7),
		}},
	}}
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindFunctionDecl, Name: "Point", Left: body},
		{Kind: ast.KindReturn, Left: &ast.Node{
			Kind: ast.KindMember,
			Left: &ast.Node{Kind: ast.KindNew, Left: ident("Point")},
			Name: "x",
		}},
	}}
	got, err := compileAndRun(t, program, nil, value.Undefined, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !got.IsInt32() || got.AsInt32() != 7 {
		t.Fatalf("expected Int32(7) from new-allocated receiver, got %v", got)
	}
}
