package jit

import (
	"testing"

	"github.com/escargot-js/escargot/ast"
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/ir"
	"github.com/escargot-js/escargot/object"
)

func num(v float64) *ast.Node { return &ast.Node{Kind: ast.KindNumberLiteral, NumValue: v} }
func ident(name string) *ast.Node { return &ast.Node{Kind: ast.KindIdentifier, Name: name} }

func compile(t *testing.T, program *ast.Node, paramCount int) *bytecode.CodeBlock {
	t.Helper()
	strings := object.NewDefaultStringTable()
	cb, err := ast.Compile("test", paramCount, program, strings)
	if err != nil {
		t.Fatalf("ast.Compile: %v", err)
	}
	return cb
}

func TestBuildGraphArithmeticStaysInOneBlock(t *testing.T) {
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: num(1), Right: num(2)}},
	}}
	cb := compile(t, program, 0)
	g, ok := BuildGraph(cb)
	if !ok {
		t.Fatalf("expected BuildGraph to succeed on plain arithmetic")
	}
	if len(g.Blocks) != 1 {
		t.Fatalf("expected a single block, got %d", len(g.Blocks))
	}
}

func TestBuildGraphForLoopSplitsAtLoopStart(t *testing.T) {
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
			Cons: &ast.Node{Kind: ast.KindBlock, Children: []*ast.Node{
				{Kind: ast.KindExpressionStatement, Left: &ast.Node{
					Kind: ast.KindAssignment, Op: "=", Left: ident("s"),
					Right: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("s"), Right: ident("i")},
				}},
			}},
		},
		{Kind: ast.KindReturn, Left: ident("s")},
	}}
	cb := compile(t, program, 0)
	g, ok := BuildGraph(cb)
	if !ok {
		t.Fatalf("expected BuildGraph to succeed on a for-loop")
	}
	if len(g.Blocks) < 3 {
		t.Fatalf("expected the loop header to split the graph into at least 3 blocks, got %d", len(g.Blocks))
	}
	// The backward edge from the loop body/update back to the loop header
	// must land on an already-discovered block rather than minting a
	// duplicate — every block's parent/child edges should be mutually
	// consistent.
	for _, b := range g.Blocks {
		for _, c := range b.Children {
			found := false
			for _, p := range g.Blocks[c].Parents {
				if p == b.Index {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("block %d lists child %d but %d doesn't list %d as a parent", b.Index, c, c, b.Index)
			}
		}
	}
}

func TestBuildGraphIfElseWiresBothTargets(t *testing.T) {
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindIf,
			Test: &ast.Node{Kind: ast.KindBinary, Op: "<", Left: ident("a"), Right: num(0)},
			Cons: &ast.Node{Kind: ast.KindReturn, Left: num(1)},
			Alt:  &ast.Node{Kind: ast.KindReturn, Left: num(2)},
		},
	}}
	cb := compile(t, program, 1)
	g, ok := BuildGraph(cb)
	if !ok {
		t.Fatalf("expected BuildGraph to succeed on if/else")
	}
	if len(g.Blocks) < 3 {
		t.Fatalf("expected at least 3 blocks (head, consequent, alternate), got %d", len(g.Blocks))
	}
	if len(g.Blocks[0].Children) != 2 {
		t.Fatalf("expected the head block to branch to two successors, got %v", g.Blocks[0].Children)
	}
}

func TestBuildGraphPropertyAccessLowersToObjectOps(t *testing.T) {
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindMember, Left: ident("this"), Name: "x"}},
	}}
	cb := compile(t, program, 0)
	g, ok := BuildGraph(cb)
	if !ok {
		t.Fatalf("expected BuildGraph to succeed on a property read")
	}
	if len(g.Blocks) == 0 || len(g.Blocks[0].Instructions) == 0 {
		t.Fatalf("expected at least one lowered instruction")
	}
	found := false
	for _, b := range g.Blocks {
		for _, in := range b.Instructions {
			if in.Op == ir.OpGetObjectPreComputed {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected this.x to lower to GetObjectPreComputed")
	}
}
