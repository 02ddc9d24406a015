package interp

import (
	"testing"

	"github.com/escargot-js/escargot/ast"
	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

func num(v float64) *ast.Node { return &ast.Node{Kind: ast.KindNumberLiteral, NumValue: v} }
func ident(name string) *ast.Node { return &ast.Node{Kind: ast.KindIdentifier, Name: name} }

func compileAndRun(t *testing.T, program *ast.Node, paramNames []string, this value.TaggedValue, args []value.TaggedValue) (value.TaggedValue, error) {
	t.Helper()
	strings := object.NewDefaultStringTable()
	cb, err := ast.Compile("test", len(paramNames), program, strings)
	if err != nil {
		t.Fatalf("ast.Compile: %v", err)
	}
	it := NewInterpreter(strings)
	return Execute(it, cb, paramNames, nil, this, args)
}

func TestExecuteArithmeticReturnsInt32Sum(t *testing.T) {
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: num(1), Right: num(2)}},
	}}
	got, err := compileAndRun(t, program, nil, value.Undefined, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !got.IsInt32() || got.AsInt32() != 3 {
		t.Fatalf("expected Int32(3), got %v", got)
	}
}

func TestExecuteArithmeticOverflowSpillsToDouble(t *testing.T) {
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindBinary, Op: "*", Left: num(2147483647), Right: num(2)}},
	}}
	got, err := compileAndRun(t, program, nil, value.Undefined, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !got.IsDouble() {
		t.Fatalf("expected overflow to spill to Double, got %v", got)
	}
}

// TestExecuteForLoopSumsOneToTen drives a full var-decl/for-loop/compound-
// assignment program through the register machine: var s=0; for(var
// i=1;i<=10;i=i+1){s=s+i;} return s;
func TestExecuteForLoopSumsOneToTen(t *testing.T) {
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindVarDecl, Children: []*ast.Node{
			{Kind: ast.KindVarDeclarator, Name: "s", Left: num(0)},
		}},
		{Kind: ast.KindFor,
			Init: &ast.Node{Kind: ast.KindVarDecl, Children: []*ast.Node{
				{Kind: ast.KindVarDeclarator, Name: "i", Left: num(1)},
			}},
			Test: &ast.Node{Kind: ast.KindBinary, Op: "<=", Left: ident("i"), Right: num(10)},
			Update: &ast.Node{Kind: ast.KindAssignment, Op: "=", Left: ident("i"),
				Right: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("i"), Right: num(1)}},
			Cons: &ast.Node{Kind: ast.KindExpressionStatement, Left: &ast.Node{
				Kind: ast.KindAssignment, Op: "=", Left: ident("s"),
				Right: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("s"), Right: ident("i")},
			}},
		},
		{Kind: ast.KindReturn, Left: ident("s")},
	}}
	got, err := compileAndRun(t, program, nil, value.Undefined, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !got.IsInt32() || got.AsInt32() != 55 {
		t.Fatalf("expected Int32(55), got %v", got)
	}
}

// TestExecutePropertyGetSetThroughInlineCache drives the precomputed-case
// member opcodes (object.ReadCache/WriteCache rebuild-then-hit) via a
// receiver passed in as the function's `this`: this.x = 5; return this.x;
func TestExecutePropertyGetSetThroughInlineCache(t *testing.T) {
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindExpressionStatement, Left: &ast.Node{
			Kind: ast.KindAssignment, Op: "=",
			Left:  &ast.Node{Kind: ast.KindMember, Left: ident("this"), Name: "x"},
			Right: num(5),
		}},
		{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindMember, Left: ident("this"), Name: "x"}},
	}}
	strings := object.NewDefaultStringTable()
	receiver := object.NewObject(object.RootShape(), nil)
	got, err := compileAndRunWithStrings(t, strings, program, nil, value.Pointer(receiver), nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !got.IsInt32() || got.AsInt32() != 5 {
		t.Fatalf("expected Int32(5), got %v", got)
	}
}

func compileAndRunWithStrings(t *testing.T, strings *object.StringTable, program *ast.Node, paramNames []string, this value.TaggedValue, args []value.TaggedValue) (value.TaggedValue, error) {
	t.Helper()
	cb, err := ast.Compile("test", len(paramNames), program, strings)
	if err != nil {
		t.Fatalf("ast.Compile: %v", err)
	}
	it := NewInterpreter(strings)
	return Execute(it, cb, paramNames, nil, this, args)
}

// TestExecuteFunctionParameterBinding exercises paramNames/args wiring:
// function(a, b) { return a + b; } called with (1, 2).
func TestExecuteFunctionParameterBinding(t *testing.T) {
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("a"), Right: ident("b")}},
	}}
	got, err := compileAndRun(t, program, []string{"a", "b"}, value.Undefined,
		[]value.TaggedValue{value.Int32(1), value.Int32(2)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !got.IsInt32() || got.AsInt32() != 3 {
		t.Fatalf("expected Int32(3), got %v", got)
	}
}

// TestExecuteForInVisitsEachOwnKeyOnce builds an object with two own
// properties and sums the values reached by for-in, checking the
// enumerator snapshot drives exactly as many iterations as there are keys.
func TestExecuteForInVisitsEachOwnKeyOnce(t *testing.T) {
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindVarDecl, Children: []*ast.Node{
			{Kind: ast.KindVarDeclarator, Name: "count", Left: num(0)},
		}},
		{Kind: ast.KindForIn,
			Left:  &ast.Node{Kind: ast.KindVarDecl, Children: []*ast.Node{{Kind: ast.KindVarDeclarator, Name: "k"}}},
			Right: ident("this"),
			Cons: &ast.Node{Kind: ast.KindExpressionStatement, Left: &ast.Node{
				Kind: ast.KindAssignment, Op: "=", Left: ident("count"),
				Right: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("count"), Right: num(1)},
			}},
		},
		{Kind: ast.KindReturn, Left: ident("count")},
	}}
	strings := object.NewDefaultStringTable()
	receiver := object.NewObject(object.RootShape(), nil)
	receiver.DefineOwn(strings, strings.Intern("a"), value.Int32(1), object.DefaultDataFlags)
	receiver.DefineOwn(strings, strings.Intern("b"), value.Int32(2), object.DefaultDataFlags)
	got, err := compileAndRunWithStrings(t, strings, program, nil, value.Pointer(receiver), nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !got.IsInt32() || got.AsInt32() != 2 {
		t.Fatalf("expected Int32(2) for two own keys, got %v", got)
	}
}

func TestLooseEqualCoercesStringAndNumber(t *testing.T) {
	if !looseEqual(value.Int32(1), value.Pointer(object.NewStringPrimitive("1"))) {
		t.Fatalf("expected 1 == \"1\" under abstract equality")
	}
}

func TestTypeOfDistinguishesStringFromObject(t *testing.T) {
	if got := typeOf(value.Pointer(object.NewStringPrimitive("hi"))); got != "string" {
		t.Fatalf("expected \"string\", got %q", got)
	}
	if got := typeOf(value.Pointer(object.NewObject(object.RootShape(), nil))); got != "object" {
		t.Fatalf("expected \"object\", got %q", got)
	}
}
