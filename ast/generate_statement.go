package ast

import (
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/escerr"
)

// GenerateStatementByteCode emits n's bytecode as a statement: unlike
// GenerateExpressionByteCode, it leaves nothing extra on the operand
// stack once control falls through to the next statement (spec.md §6).
func (n *Node) GenerateStatementByteCode(gc *GenContext) error {
	switch n.Kind {
	case KindProgram, KindBlock:
		for _, stmt := range n.Children {
			if err := stmt.GenerateStatementByteCode(gc); err != nil {
				return err
			}
		}
		return nil

	case KindEmpty:
		return nil

	case KindExpressionStatement:
		if _, err := n.Left.GenerateExpressionByteCode(gc); err != nil {
			return err
		}
		gc.Gen.EmitOp(bytecode.OpPopExpressionStatement)
		return nil

	case KindVarDecl:
		return n.generateVarDecl(gc)

	case KindFunctionDecl:
		return n.generateFunctionDecl(gc)

	case KindIf:
		return n.generateIf(gc)

	case KindFor:
		return n.generateFor(gc)

	case KindWhile:
		return n.generateWhile(gc)

	case KindDoWhile:
		return n.generateDoWhile(gc)

	case KindForIn:
		return n.generateForIn(gc)

	case KindReturn:
		return n.generateReturn(gc)

	case KindBreak:
		gc.Gen.EmitBreak(gc.Gen.Current(), n.Label)
		return nil

	case KindContinue:
		gc.Gen.EmitContinue(gc.Gen.Current(), n.Label)
		return nil

	case KindLabeled:
		return n.generateLabeled(gc)

	case KindSwitch:
		return n.generateSwitch(gc)

	case KindThrow:
		return n.generateThrow(gc)

	default:
		return escerr.Unsupported(escerr.PhaseGenerate, "statement node kind not recognized by the generator")
	}
}

func (n *Node) generateVarDecl(gc *GenContext) error {
	for _, decl := range n.Children {
		interned := gc.Strings.Intern(decl.Name)
		gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpCreateBinding, Imm: bytecode.NameImm{Name: interned}}, -1, -1, -1)
		if decl.Left != nil {
			ssa, err := decl.Left.GenerateExpressionByteCode(gc)
			if err != nil {
				return err
			}
			gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpPutById, Imm: bytecode.NameImm{Name: interned}}, -1, ssa, -1)
			gc.Gen.EmitPop()
		}
	}
	return nil
}

// generateFunctionDecl hoists a binding for the declared name, then
// compiles the function body into its own CodeBlock (see emitClosure) and
// binds the resulting closure at the declaration's own emission point —
// a nested function is compiled independently rather than inlined into
// its enclosing scope's instruction stream (spec.md §2 describes
// CodeBlocks as the unit of compilation).
func (n *Node) generateFunctionDecl(gc *GenContext) error {
	interned := gc.Strings.Intern(n.Name)
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpCreateBinding, Imm: bytecode.NameImm{Name: interned}}, -1, -1, -1)
	target, err := emitClosure(gc, n.Name, n)
	if err != nil {
		return err
	}
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpPutById, Imm: bytecode.NameImm{Name: interned}}, -1, target, -1)
	gc.Gen.EmitPop()
	return nil
}

func (n *Node) generateIf(gc *GenContext) error {
	test, err := n.Test.GenerateExpressionByteCode(gc)
	if err != nil {
		return err
	}
	falseJump := gc.Gen.EmitPendingConditionalJump(bytecode.OpJumpIfFalse, test)
	if err := n.Cons.GenerateStatementByteCode(gc); err != nil {
		return err
	}
	if n.Alt == nil {
		end := gc.Gen.Here()
		gc.Gen.CB.PatchJump(falseJump, end)
		return nil
	}
	endJump := gc.Gen.EmitPendingJump(bytecode.OpJump)
	altStart := gc.Gen.Here()
	gc.Gen.CB.PatchJump(falseJump, altStart)
	if err := n.Alt.GenerateStatementByteCode(gc); err != nil {
		return err
	}
	end := gc.Gen.Here()
	gc.Gen.CB.PatchJump(endJump, end)
	return nil
}

// takeLoopLabel consumes (clears) the label the enclosing Labeled node
// attached to gc for this loop, so a loop nested inside this one's body
// doesn't inherit it.
func takeLoopLabel(gc *GenContext) string {
	label := gc.LoopLabel
	gc.LoopLabel = ""
	return label
}

// finishLoop drains ctx's unlabeled (and, if this loop owns a label,
// labeled) break/continue lists, then propagates anything left — labels
// belonging to an enclosing construct — up to the parent context before
// popping ctx off the generator's context stack.
func finishLoop(gc *GenContext, ctx *bytecode.GenerateContext, label string, end, continueAnchor uint32) error {
	cb := gc.Gen.CB
	ctx.ConsumeBreakPositions(cb, end)
	ctx.ConsumeContinuePositions(cb, continueAnchor)
	if label != "" {
		ctx.ConsumeLabeledBreakPositions(cb, label, end)
		ctx.ConsumeLabeledContinuePositions(cb, label, continueAnchor)
	}
	if parent := gc.Gen.ParentContext(); parent != nil {
		ctx.PropagateInformationTo(parent)
	}
	gc.Gen.PopContext()
	return ctx.Close()
}

func (n *Node) generateFor(gc *GenContext) error {
	label := takeLoopLabel(gc)
	if n.Init != nil {
		if n.Init.Kind == KindVarDecl {
			if err := n.Init.GenerateStatementByteCode(gc); err != nil {
				return err
			}
		} else {
			if _, err := n.Init.GenerateExpressionByteCode(gc); err != nil {
				return err
			}
			gc.Gen.EmitPop()
		}
	}

	ctx := gc.Gen.PushContext(0)
	loopStart := gc.Gen.Here()
	gc.Gen.EmitLoopStart()

	var exitJump int
	hasTest := n.Test != nil
	if hasTest {
		test, err := n.Test.GenerateExpressionByteCode(gc)
		if err != nil {
			return err
		}
		exitJump = gc.Gen.EmitPendingConditionalJump(bytecode.OpJumpIfFalse, test)
	}

	if err := n.Cons.GenerateStatementByteCode(gc); err != nil {
		return err
	}

	continueAnchor := gc.Gen.Here()
	if n.Update != nil {
		if _, err := n.Update.GenerateExpressionByteCode(gc); err != nil {
			return err
		}
		gc.Gen.EmitPop()
	}
	gc.Gen.EmitJump(loopStart)

	end := gc.Gen.Here()
	if hasTest {
		gc.Gen.CB.PatchJump(exitJump, end)
	}
	return finishLoop(gc, ctx, label, end, continueAnchor)
}

func (n *Node) generateWhile(gc *GenContext) error {
	label := takeLoopLabel(gc)
	ctx := gc.Gen.PushContext(0)
	loopStart := gc.Gen.Here()
	gc.Gen.EmitLoopStart()
	test, err := n.Test.GenerateExpressionByteCode(gc)
	if err != nil {
		return err
	}
	exitJump := gc.Gen.EmitPendingConditionalJump(bytecode.OpJumpIfFalse, test)
	if err := n.Cons.GenerateStatementByteCode(gc); err != nil {
		return err
	}
	gc.Gen.EmitJump(loopStart)
	end := gc.Gen.Here()
	gc.Gen.CB.PatchJump(exitJump, end)
	return finishLoop(gc, ctx, label, end, loopStart)
}

func (n *Node) generateDoWhile(gc *GenContext) error {
	label := takeLoopLabel(gc)
	ctx := gc.Gen.PushContext(0)
	bodyStart := gc.Gen.Here()
	gc.Gen.EmitLoopStart()
	if err := n.Cons.GenerateStatementByteCode(gc); err != nil {
		return err
	}
	continueAnchor := gc.Gen.Here()
	test, err := n.Test.GenerateExpressionByteCode(gc)
	if err != nil {
		return err
	}
	gc.Gen.EmitConditionalJump(bytecode.OpJumpIfTrue, bodyStart, test)
	end := gc.Gen.Here()
	return finishLoop(gc, ctx, label, end, continueAnchor)
}

func (n *Node) generateForIn(gc *GenContext) error {
	label := takeLoopLabel(gc)
	objSSA, err := n.Right.GenerateExpressionByteCode(gc)
	if err != nil {
		return err
	}

	var bindingName string
	isVarBinding := n.Left.Kind == KindVarDecl
	if isVarBinding {
		bindingName = n.Left.Children[0].Name
	} else {
		bindingName = n.Left.Name
	}

	ctx := gc.Gen.PushContext(0)
	keySSA := gc.FreshSSA()
	h := gc.Gen.EmitForInHeader(objSSA, keySSA)
	loopTop := uint32(h.CheckIfLastIdx)

	if isVarBinding {
		gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpCreateBinding, Imm: bytecode.NameImm{Name: gc.Strings.Intern(bindingName)}}, -1, -1, -1)
	}
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpPutById, Imm: bytecode.NameImm{Name: gc.Strings.Intern(bindingName)}}, -1, keySSA, -1)

	if err := n.Cons.GenerateStatementByteCode(gc); err != nil {
		return err
	}
	gc.Gen.EmitJump(loopTop)

	end := gc.Gen.Here()
	gc.Gen.PatchForInExit(h, end)
	return finishLoop(gc, ctx, label, end, loopTop)
}

func (n *Node) generateReturn(gc *GenContext) error {
	if n.Left == nil {
		gc.Gen.EmitOp(bytecode.OpReturnFunction)
		return nil
	}
	ssa, err := n.Left.GenerateExpressionByteCode(gc)
	if err != nil {
		return err
	}
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpReturnFunctionWithValue}, -1, ssa, -1)
	return nil
}

func (n *Node) generateLabeled(gc *GenContext) error {
	saved := gc.LoopLabel
	gc.LoopLabel = n.Label

	ctx := gc.Gen.PushContext(0)
	if err := n.Cons.GenerateStatementByteCode(gc); err != nil {
		return err
	}
	end := gc.Gen.Here()
	ctx.ConsumeLabeledBreakPositions(gc.Gen.CB, n.Label, end)
	if parent := gc.Gen.ParentContext(); parent != nil {
		ctx.PropagateInformationTo(parent)
	}
	gc.Gen.PopContext()
	gc.LoopLabel = saved
	return ctx.Close()
}

func (n *Node) generateSwitch(gc *GenContext) error {
	discSSA, err := n.Test.GenerateExpressionByteCode(gc)
	if err != nil {
		return err
	}
	label := takeLoopLabel(gc)
	ctx := gc.Gen.PushContext(0)

	var beforeDefault, afterDefault []*Node
	var defaultCase *Node
	seenDefault := false
	for _, c := range n.Children {
		if c.Test == nil {
			seenDefault = true
			defaultCase = c
			continue
		}
		if seenDefault {
			afterDefault = append(afterDefault, c)
		} else {
			beforeDefault = append(beforeDefault, c)
		}
	}
	dispatchOrder := append(append([]*Node{}, beforeDefault...), afterDefault...)

	testJumps := make([]int, len(dispatchOrder))
	for i, c := range dispatchOrder {
		testSSA, err := c.Test.GenerateExpressionByteCode(gc)
		if err != nil {
			return err
		}
		eqTarget := gc.FreshSSA()
		gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpStrictEqual}, eqTarget, discSSA, testSSA)
		testJumps[i] = gc.Gen.EmitPendingConditionalJump(bytecode.OpJumpIfTrue, eqTarget)
	}
	defaultJump := gc.Gen.EmitPendingJump(bytecode.OpJump)

	bodyOffsets := make(map[*Node]uint32, len(n.Children))
	for _, c := range n.Children {
		bodyOffsets[c] = gc.Gen.Here()
		for _, stmt := range c.Children {
			if err := stmt.GenerateStatementByteCode(gc); err != nil {
				return err
			}
		}
	}

	epilogue := gc.Gen.Here()

	for i, c := range dispatchOrder {
		gc.Gen.CB.PatchJump(testJumps[i], bodyOffsets[c])
	}
	if defaultCase != nil {
		gc.Gen.CB.PatchJump(defaultJump, bodyOffsets[defaultCase])
	} else {
		gc.Gen.CB.PatchJump(defaultJump, epilogue)
	}

	ctx.ConsumeBreakPositions(gc.Gen.CB, epilogue)
	if label != "" {
		ctx.ConsumeLabeledBreakPositions(gc.Gen.CB, label, epilogue)
	}
	if parent := gc.Gen.ParentContext(); parent != nil {
		ctx.PropagateInformationTo(parent)
	}
	gc.Gen.PopContext()
	return ctx.Close()
}

func (n *Node) generateThrow(gc *GenContext) error {
	ssa, err := n.Left.GenerateExpressionByteCode(gc)
	if err != nil {
		return err
	}
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpThrow}, -1, ssa, -1)
	return nil
}
