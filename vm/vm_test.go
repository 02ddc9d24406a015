package vm

import (
	"bytes"
	"testing"

	"github.com/escargot-js/escargot/ast"
	"github.com/escargot-js/escargot/value"
)

func num(v float64) *ast.Node     { return &ast.Node{Kind: ast.KindNumberLiteral, NumValue: v} }
func ident(name string) *ast.Node { return &ast.Node{Kind: ast.KindIdentifier, Name: name} }
func strlit(s string) *ast.Node   { return &ast.Node{Kind: ast.KindStringLiteral, StrValue: s} }

func TestConfigDefaults(t *testing.T) {
	cfg := resolveConfig(nil)
	if cfg.MaxStackDepth != defaultMaxStackDepth {
		t.Errorf("expected default MaxStackDepth %d, got %d", defaultMaxStackDepth, cfg.MaxStackDepth)
	}
	if cfg.JITThreshold != defaultJITThreshold {
		t.Errorf("expected default JITThreshold %d, got %d", defaultJITThreshold, cfg.JITThreshold)
	}
	if !cfg.EnableJIT {
		t.Error("expected EnableJIT true by default")
	}
}

func TestConfigOverridesIndividualFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want Config
	}{
		{"nil falls back to defaults", nil, defaultConfig()},
		{"zero Config disables JIT", &Config{}, Config{
			MaxStackDepth: defaultMaxStackDepth, InlineCacheSize: defaultInlineCacheSize,
			JITThreshold: defaultJITThreshold, EnableJIT: false,
		}},
		{"custom threshold only", &Config{JITThreshold: 5, EnableJIT: true}, Config{
			MaxStackDepth: defaultMaxStackDepth, InlineCacheSize: defaultInlineCacheSize,
			JITThreshold: 5, EnableJIT: true,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveConfig(tc.cfg)
			if got != tc.want {
				t.Errorf("resolveConfig(%+v) = %+v, want %+v", tc.cfg, got, tc.want)
			}
		})
	}
}

func TestVMRunArithmetic(t *testing.T) {
	m := New(nil)
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindReturn, Left: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: num(1), Right: num(2)}},
	}}
	cb, err := ast.Compile("test", 0, program, m.Interpreter().Strings)
	if err != nil {
		t.Fatalf("ast.Compile: %v", err)
	}
	got, err := m.Run(cb, nil, value.Undefined, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !got.IsInt32() || got.AsInt32() != 3 {
		t.Fatalf("expected Int32(3), got %v", got)
	}
}

func TestVMConsoleLogWritesToStdout(t *testing.T) {
	m := New(nil)
	var buf bytes.Buffer
	m.Stdout = &buf

	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindExpressionStatement, Left: &ast.Node{
			Kind: ast.KindCall,
			Left: &ast.Node{Kind: ast.KindMember, Left: ident("console"), Name: "log"},
			Children: []*ast.Node{strlit("hello")},
		}},
	}}
	cb, err := ast.Compile("test", 0, program, m.Interpreter().Strings)
	if err != nil {
		t.Fatalf("ast.Compile: %v", err)
	}
	if _, err := m.Run(cb, nil, value.Undefined, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := buf.String(); got != "hello\n" {
		t.Fatalf("expected console.log to write %q, got %q", "hello\n", got)
	}
}

func TestVMPromotesHotLoopCodeBlock(t *testing.T) {
	m := New(&Config{JITThreshold: 3, EnableJIT: true})

	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindVarDecl, Children: []*ast.Node{
			{Kind: ast.KindVarDeclarator, Name: "s", Left: num(0)},
		}},
		{Kind: ast.KindFor,
			Init:   &ast.Node{Kind: ast.KindVarDecl, Children: []*ast.Node{{Kind: ast.KindVarDeclarator, Name: "i", Left: num(0)}}},
			Test:   &ast.Node{Kind: ast.KindBinary, Op: "<", Left: ident("i"), Right: num(5)},
			Update: &ast.Node{Kind: ast.KindAssignment, Op: "=", Left: ident("i"), Right: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("i"), Right: num(1)}},
			Cons: &ast.Node{Kind: ast.KindExpressionStatement, Left: &ast.Node{
				Kind: ast.KindAssignment, Op: "=", Left: ident("s"),
				Right: &ast.Node{Kind: ast.KindBinary, Op: "+", Left: ident("s"), Right: ident("i")},
			}},
		},
		{Kind: ast.KindReturn, Left: ident("s")},
	}}
	cb, err := ast.Compile("loopy", 0, program, m.Interpreter().Strings)
	if err != nil {
		t.Fatalf("ast.Compile: %v", err)
	}

	// maybePromote runs before each Run executes the CodeBlock. The first
	// Run's loop already hits its LoopStart six times (five iterations
	// plus the failing check), past JITThreshold: 3, so the second Run
	// promotes; three Run calls leave the graph built either way.
	var got value.TaggedValue
	for i := 0; i < 3; i++ {
		got, err = m.Run(cb, nil, value.Undefined, nil)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	}
	if !got.IsInt32() || got.AsInt32() != 10 {
		t.Fatalf("expected Int32(10), got %v", got)
	}

	if _, ok := m.Graph(cb); !ok {
		t.Fatalf("expected loopy to cross JITThreshold after 3 invocations and promote to an ESGraph")
	}
}

func TestVMDisabledJITNeverPromotes(t *testing.T) {
	m := New(&Config{JITThreshold: 1, EnableJIT: false})
	program := &ast.Node{Kind: ast.KindProgram, Children: []*ast.Node{
		{Kind: ast.KindReturn, Left: num(1)},
	}}
	cb, err := ast.Compile("test", 0, program, m.Interpreter().Strings)
	if err != nil {
		t.Fatalf("ast.Compile: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := m.Run(cb, nil, value.Undefined, nil); err != nil {
			t.Fatalf("Run: %v", err)
		}
	}
	if _, ok := m.Graph(cb); ok {
		t.Fatalf("expected EnableJIT=false to never promote")
	}
}
