package bytecode

import "github.com/escargot-js/escargot/escerr"

// GenerateContext (the ByteCodeGenerateContext of spec.md §6) tracks
// everything one nested statement's emission needs to hand back to its
// parent: the operand-stack base offset, the pending break/continue
// patch lists, and a position-to-continue anchor for loops. Every list
// MUST be drained (consumed) before the context is discarded — an
// unconsumed entry is a structural bug (spec.md §5).
type GenerateContext struct {
	StackBaseOffset int

	breakPositions    []int
	continuePositions []int

	labeledBreak    map[string][]int
	labeledContinue map[string][]int

	// ContinueAnchor is a slot for the offset an unlabeled `continue` jumps
	// to. Nothing sets or reads it: the loop generators in package ast pass
	// each loop's continue target straight to ConsumeContinuePositions.
	ContinueAnchor uint32
}

// NewGenerateContext creates a fresh emission context.
func NewGenerateContext(stackBaseOffset int) *GenerateContext {
	return &GenerateContext{
		StackBaseOffset: stackBaseOffset,
		labeledBreak:    make(map[string][]int),
		labeledContinue: make(map[string][]int),
	}
}

// RecordBreak records a forward Jump(SizeMax)'s instruction index as a
// pending break, to be patched once the enclosing loop/switch/labeled
// block knows its end offset.
func (c *GenerateContext) RecordBreak(idx int) {
	c.breakPositions = append(c.breakPositions, idx)
}

// RecordContinue records a forward Jump(SizeMax)'s instruction index as a
// pending continue.
func (c *GenerateContext) RecordContinue(idx int) {
	c.continuePositions = append(c.continuePositions, idx)
}

// RecordLabeledBreak records a pending break targeting a specific label.
func (c *GenerateContext) RecordLabeledBreak(label string, idx int) {
	c.labeledBreak[label] = append(c.labeledBreak[label], idx)
}

// RecordLabeledContinue records a pending continue targeting a specific label.
func (c *GenerateContext) RecordLabeledContinue(label string, idx int) {
	c.labeledContinue[label] = append(c.labeledContinue[label], idx)
}

// ConsumeBreakPositions patches every pending unlabeled break to target
// endOffset, then clears the list.
func (c *GenerateContext) ConsumeBreakPositions(cb *CodeBlock, endOffset uint32) {
	for _, idx := range c.breakPositions {
		cb.PatchJump(idx, endOffset)
	}
	c.breakPositions = nil
}

// ConsumeContinuePositions patches every pending unlabeled continue to
// target the loop's continue anchor, then clears the list.
func (c *GenerateContext) ConsumeContinuePositions(cb *CodeBlock, anchor uint32) {
	for _, idx := range c.continuePositions {
		cb.PatchJump(idx, anchor)
	}
	c.continuePositions = nil
}

// ConsumeLabeledBreakPositions patches every pending break targeting
// label, then removes that label's list.
func (c *GenerateContext) ConsumeLabeledBreakPositions(cb *CodeBlock, label string, endOffset uint32) {
	for _, idx := range c.labeledBreak[label] {
		cb.PatchJump(idx, endOffset)
	}
	delete(c.labeledBreak, label)
}

// ConsumeLabeledContinuePositions patches every pending continue
// targeting label, then removes that label's list.
func (c *GenerateContext) ConsumeLabeledContinuePositions(cb *CodeBlock, label string, anchor uint32) {
	for _, idx := range c.labeledContinue[label] {
		cb.PatchJump(idx, anchor)
	}
	delete(c.labeledContinue, label)
}

// PropagateInformationTo forwards any breaks/continues this context could
// not resolve itself (e.g. a labeled break for a label an inner loop
// doesn't own) up to the parent context — the propagateInformationTo of
// spec.md §6.
func (c *GenerateContext) PropagateInformationTo(parent *GenerateContext) {
	parent.breakPositions = append(parent.breakPositions, c.breakPositions...)
	parent.continuePositions = append(parent.continuePositions, c.continuePositions...)
	for label, positions := range c.labeledBreak {
		parent.labeledBreak[label] = append(parent.labeledBreak[label], positions...)
	}
	for label, positions := range c.labeledContinue {
		parent.labeledContinue[label] = append(parent.labeledContinue[label], positions...)
	}
	c.breakPositions = nil
	c.continuePositions = nil
	c.labeledBreak = make(map[string][]int)
	c.labeledContinue = make(map[string][]int)
}

// Close asserts every pending jump list has been drained, returning a
// structural error otherwise (spec.md §5: "every code-generation context
// carries lists of pending jumps that MUST be consumed before the
// context is discarded; violating this is a structural bug caught by
// assertions").
func (c *GenerateContext) Close() error {
	if len(c.breakPositions) > 0 {
		return escerr.StackImbalance(escerr.PhaseGenerate, "unconsumed break positions at context close")
	}
	if len(c.continuePositions) > 0 {
		return escerr.StackImbalance(escerr.PhaseGenerate, "unconsumed continue positions at context close")
	}
	for label := range c.labeledBreak {
		return escerr.StackImbalance(escerr.PhaseGenerate, "unconsumed labeled break for "+label)
	}
	for label := range c.labeledContinue {
		return escerr.StackImbalance(escerr.PhaseGenerate, "unconsumed labeled continue for "+label)
	}
	return nil
}
