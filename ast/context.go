package ast

import (
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/object"
)

// GenContext bundles everything Node's emitter methods need beyond the
// bytecode.Generator itself: the shared string table names are interned
// into, and an SSA counter guaranteeing every produced value gets a
// fresh target index (spec.md §8 property 3: each SSA target appears
// exactly once as a destination).
type GenContext struct {
	Gen     *bytecode.Generator
	Strings *object.StringTable

	nextSSA int

	// LoopLabel, when non-empty, is the label the statement currently
	// being emitted is directly wrapped by (so `break label`/`continue
	// label` immediately inside a loop body can tell which label belongs
	// to this loop without a separate lookup pass).
	LoopLabel string
}

// NewGenContext creates a GenContext emitting into gen, interning names
// through strings.
func NewGenContext(gen *bytecode.Generator, strings *object.StringTable) *GenContext {
	return &GenContext{Gen: gen, Strings: strings}
}

// FreshSSA returns a new, never-before-issued SSA target index.
func (gc *GenContext) FreshSSA() int {
	idx := gc.nextSSA
	gc.nextSSA++
	return idx
}

// NumRegisters returns one past the highest SSA target index issued so
// far — the register count a CodeBlock's interpreter frame needs once
// generation is complete.
func (gc *GenContext) NumRegisters() int { return gc.nextSSA }
