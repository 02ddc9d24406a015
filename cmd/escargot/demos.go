package main

import (
	"sort"

	"github.com/escargot-js/escargot/ast"
)

// demo is one named, self-contained program the CLI can compile and run —
// this engine's stand-in for the WASM files cmd/run took as its -wasm
// argument, since the lexer/parser that would turn script text into an
// *ast.Node tree is an external collaborator (see escargot.go's Source
// interface; spec.md §1 Non-goals).
type demo struct {
	name    string
	program func() *ast.Node
}

func num(v float64) *ast.Node     { return &ast.Node{Kind: ast.KindNumberLiteral, NumValue: v} }
func ident(name string) *ast.Node { return &ast.Node{Kind: ast.KindIdentifier, Name: name} }

var demos = []demo{
	{"sum", func() *ast.Node {
		return &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
			{Kind: ast.KindVarDecl, Children: []*ast.Node{
				{Kind: ast.KindVarDeclarator, Name: "s", Left: num(0)},
			}},
			{Kind: ast.KindFor,
				Init:   &ast.Node{Kind: ast.KindVarDecl, Children: []*ast.Node{{Kind: ast.KindVarDeclarator, Name: "i", Left: num(1)}}},
				Test:   &ast.Node{Kind: ast.KindBinary, Op: "<=", Left: ident("i"), Right: num(10)},
				Update: &ast.Node{Kind: ast.KindAssignment, Op: "=", Left: ident("i"), Right: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("i"), Right: num(1)}},
				Cons: &ast.Node{Kind: ast.KindExpressionStatement, Left: &ast.Node{
					Kind: ast.KindAssignment, Op: "=", Left: ident("s"),
					Right: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("s"), Right: ident("i")},
				}},
			},
			{Kind: ast.KindReturn, Left: ident("s")},
		}}
	}},
	{"closure", func() *ast.Node {
		body := &ast.Node{Kind: ast.KindBlock, Children: []*ast.Node{
			{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("a"), Right: ident("b")}},
		}}
		return &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
			{Kind: ast.KindFunctionDecl, Name: "add", Params: []string{"a", "b"}, Left: body},
			{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindCall, Left: ident("add"), Children: []*ast.Node{num(19), num(23)}}},
		}}
	}},
	{"log", func() *ast.Node {
		return &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
			{Kind: ast.KindExpressionStatement, Left: &ast.Node{
				Kind: ast.KindCall,
				Left: &ast.Node{Kind: ast.KindMember, Left: ident("console"), Name: "log"},
				Children: []*ast.Node{
					{Kind: ast.KindStringLiteral, StrValue: "hello from escargot"},
				},
			}},
			{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindNumberLiteral, NumValue: 0}},
		}}
	}},
}

// demoNames returns the registered demo names, sorted for stable -list
// output.
func demoNames() []string {
	names := make([]string, len(demos))
	for i, d := range demos {
		names[i] = d.name
	}
	sort.Strings(names)
	return names
}

// findDemo looks up a demo by name.
func findDemo(name string) (demo, bool) {
	for _, d := range demos {
		if d.name == name {
			return d, true
		}
	}
	return demo{}, false
}
