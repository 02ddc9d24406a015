package ast

import (
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/escerr"
	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

var binaryOpcode = map[string]bytecode.Opcode{
	"+":          bytecode.OpPlus,
	"-":          bytecode.OpMinus,
	"*":          bytecode.OpMultiply,
	"/":          bytecode.OpDivision,
	"%":          bytecode.OpMod,
	"&":          bytecode.OpBitwiseAnd,
	"|":          bytecode.OpBitwiseOr,
	"^":          bytecode.OpBitwiseXor,
	"<<":         bytecode.OpLeftShift,
	">>":         bytecode.OpSignedRightShift,
	">>>":        bytecode.OpUnsignedRightShift,
	"==":         bytecode.OpEqual,
	"!=":         bytecode.OpNotEqual,
	"===":        bytecode.OpStrictEqual,
	"!==":        bytecode.OpNotStrictEqual,
	">":          bytecode.OpGreaterThan,
	">=":         bytecode.OpGreaterThanOrEqual,
	"<":          bytecode.OpLessThan,
	"<=":         bytecode.OpLessThanOrEqual,
	"in":         bytecode.OpStringIn,
}

var unaryOpcode = map[string]bytecode.Opcode{
	"+":      bytecode.OpUnaryPlus,
	"-":      bytecode.OpUnaryMinus,
	"~":      bytecode.OpBitwiseNot,
	"!":      bytecode.OpLogicalNot,
	"typeof": bytecode.OpUnaryTypeOf,
	"delete": bytecode.OpUnaryDelete,
}

// GenerateExpressionByteCode emits n's value-producing bytecode, leaving
// exactly one value on the operand stack, and returns the SSA index that
// value was assigned (spec.md §6).
func (n *Node) GenerateExpressionByteCode(gc *GenContext) (int, error) {
	switch n.Kind {
	case KindNumberLiteral:
		return gc.emitConst(value.NumberFromFloat64(n.NumValue)), nil

	case KindStringLiteral:
		return gc.emitConst(value.Pointer(object.NewStringPrimitive(n.StrValue))), nil

	case KindBooleanLiteral:
		return gc.emitConst(value.Bool(n.BoolValue)), nil

	case KindNullLiteral:
		return gc.emitConst(value.Null), nil

	case KindUndefinedLiteral:
		return gc.emitConst(value.Undefined), nil

	case KindIdentifier:
		return gc.emitGetById(n.Name), nil

	case KindBinary:
		return n.generateBinary(gc)

	case KindLogical:
		return n.generateLogical(gc)

	case KindUnary:
		return n.generateUnary(gc)

	case KindUpdate:
		return n.generateUpdate(gc)

	case KindAssignment:
		return n.generateAssignment(gc)

	case KindConditional:
		return n.generateConditional(gc)

	case KindSequence:
		var last int
		for i, child := range n.Children {
			ssa, err := child.GenerateExpressionByteCode(gc)
			if err != nil {
				return 0, err
			}
			if i < len(n.Children)-1 {
				gc.Gen.EmitPop()
			}
			last = ssa
		}
		return last, nil

	case KindCall:
		return n.generateCall(gc, false)

	case KindNew:
		return n.generateCall(gc, true)

	case KindMember:
		return n.generateMemberGet(gc)

	case KindArrayLiteral:
		return n.generateArrayLiteral(gc)

	case KindObjectLiteral:
		return n.generateObjectLiteral(gc)

	case KindFunctionExpr:
		return n.generateFunctionExpr(gc)

	default:
		return 0, escerr.Unsupported(escerr.PhaseGenerate, "expression node kind not recognized by the generator")
	}
}

func (gc *GenContext) emitConst(v value.TaggedValue) int {
	target := gc.FreshSSA()
	gc.Gen.EmitPush(v, target)
	return target
}

func (gc *GenContext) emitGetById(name string) int {
	target := gc.FreshSSA()
	interned := gc.Strings.Intern(name)
	gc.Gen.CB.Emit(bytecode.Instruction{
		Opcode: bytecode.OpGetById,
		Imm:    bytecode.NameImm{Name: interned},
	}, target, -1, -1)
	return target
}

func (n *Node) generateBinary(gc *GenContext) (int, error) {
	op, ok := binaryOpcode[n.Op]
	if !ok {
		return 0, escerr.Unsupported(escerr.PhaseGenerate, "unknown binary operator "+n.Op)
	}
	left, err := n.Left.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	right, err := n.Right.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	target := gc.FreshSSA()
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: op}, target, left, right)
	return target, nil
}

// generateLogical implements short-circuit && and || by emitting the left
// operand, a peeking conditional jump that skips the right operand
// entirely when short-circuiting, and the right operand otherwise — the
// expression's value is always whichever side decided the result.
func (n *Node) generateLogical(gc *GenContext) (int, error) {
	left, err := n.Left.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	var skipOp bytecode.Opcode
	switch n.Op {
	case "&&":
		skipOp = bytecode.OpJumpIfFalseWithPeeking
	case "||":
		skipOp = bytecode.OpJumpIfTrueWithPeeking
	default:
		return 0, escerr.Unsupported(escerr.PhaseGenerate, "unknown logical operator "+n.Op)
	}
	target := gc.FreshSSA()
	// skipIdx fires when left alone already decides the result (left is
	// false for &&, true for ||); otherwise control falls through to
	// evaluate the right operand.
	skipIdx := gc.Gen.EmitPendingConditionalJump(skipOp, left)
	right, err := n.Right.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpMove}, target, right, -1)
	endJump := gc.Gen.EmitPendingJump(bytecode.OpJump)

	shortCircuit := gc.Gen.Here()
	gc.Gen.CB.PatchJump(skipIdx, shortCircuit)
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpMove}, target, left, -1)

	end := gc.Gen.Here()
	gc.Gen.CB.PatchJump(endJump, end)
	return target, nil
}

func (n *Node) generateUnary(gc *GenContext) (int, error) {
	op, ok := unaryOpcode[n.Op]
	if !ok {
		return 0, escerr.Unsupported(escerr.PhaseGenerate, "unknown unary operator "+n.Op)
	}
	operand, err := n.Left.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	target := gc.FreshSSA()
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: op}, target, operand, -1)
	return target, nil
}

// generateUpdate implements prefix/postfix ++/--. Both forms resolve the
// target once, read its current value, and compute the updated value;
// they differ only in which register the expression itself yields: the
// pre-update value for postfix, the updated one for prefix.
func (n *Node) generateUpdate(gc *GenContext) (int, error) {
	addr, err := n.Left.GenerateResolveAddressByteCode(gc)
	if err != nil {
		return 0, err
	}
	old, err := n.Left.GenerateReferenceResolvedAddressByteCode(gc, addr)
	if err != nil {
		return 0, err
	}
	op := bytecode.OpIncrement
	if n.Op == "--" {
		op = bytecode.OpDecrement
	}
	updated := gc.FreshSSA()
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: op}, updated, old, -1)
	if err := n.Left.GeneratePutByteCode(gc, addr, updated); err != nil {
		return 0, err
	}
	if n.Prefix {
		return updated, nil
	}
	return old, nil
}

func (n *Node) generateAssignment(gc *GenContext) (int, error) {
	if n.Op == "=" {
		addr, err := n.Left.GenerateResolveAddressByteCode(gc)
		if err != nil {
			return 0, err
		}
		rhs, err := n.Right.GenerateExpressionByteCode(gc)
		if err != nil {
			return 0, err
		}
		if err := n.Left.GeneratePutByteCode(gc, addr, rhs); err != nil {
			return 0, err
		}
		return rhs, nil
	}

	// Compound assignment (+=, -=, ...): resolve the target's
	// sub-expressions once, read through the resolved address, combine,
	// then write back through the same address (spec.md §6 — this is
	// exactly why resolve/reference-resolved/put are three separate hooks
	// instead of one: `obj[f()] += 1` must call f() only once).
	addr, err := n.Left.GenerateResolveAddressByteCode(gc)
	if err != nil {
		return 0, err
	}
	current, err := n.Left.GenerateReferenceResolvedAddressByteCode(gc, addr)
	if err != nil {
		return 0, err
	}
	operand, err := n.Right.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	op, ok := binaryOpcode[n.Op[:len(n.Op)-1]]
	if !ok {
		return 0, escerr.Unsupported(escerr.PhaseGenerate, "unknown compound assignment operator "+n.Op)
	}
	rhs := gc.FreshSSA()
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: op}, rhs, current, operand)
	if err := n.Left.GeneratePutByteCode(gc, addr, rhs); err != nil {
		return 0, err
	}
	return rhs, nil
}

func (n *Node) generateConditional(gc *GenContext) (int, error) {
	test, err := n.Test.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	target := gc.FreshSSA()
	falseJump := gc.Gen.EmitPendingConditionalJump(bytecode.OpJumpIfFalse, test)
	cons, err := n.Cons.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpMove}, target, cons, -1)
	endJump := gc.Gen.EmitPendingJump(bytecode.OpJump)
	altStart := gc.Gen.Here()
	gc.Gen.CB.PatchJump(falseJump, altStart)
	alt, err := n.Alt.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpMove}, target, alt, -1)
	end := gc.Gen.Here()
	gc.Gen.CB.PatchJump(endJump, end)
	return target, nil
}

func (n *Node) generateCall(gc *GenContext, isNew bool) (int, error) {
	var receiver, callee int
	var err error
	if n.Left.Kind == KindMember {
		receiver, err = n.Left.Left.GenerateExpressionByteCode(gc)
		if err != nil {
			return 0, err
		}
		callee, err = n.Left.generateMemberGetFromObject(gc, receiver)
	} else {
		callee, err = n.Left.GenerateExpressionByteCode(gc)
		receiver = gc.emitConst(value.Undefined)
	}
	if err != nil {
		return 0, err
	}

	argc := len(n.Children)
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpPrepareFunctionCall, Imm: bytecode.ArgCountImm{ArgCount: argc}}, -1, -1, -1)
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpPushFunctionCallReceiver}, -1, receiver, -1)

	argIndices := make([]int, argc)
	for i, arg := range n.Children {
		idx, err := arg.GenerateExpressionByteCode(gc)
		if err != nil {
			return 0, err
		}
		argIndices[i] = idx
	}

	infoIdx := gc.Gen.CB.AddCallInfo(bytecode.CallInfo{CalleeIdx: callee, ReceiverIdx: receiver, ArgIndices: argIndices})
	target := gc.FreshSSA()
	op := bytecode.OpCallFunction
	if isNew {
		op = bytecode.OpNewFunctionCall
	}
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: op, Imm: bytecode.CallImm{CallInfoIdx: infoIdx}}, target, callee, -1)
	return target, nil
}

// generateMemberGet evaluates the object sub-expression then reads the
// property, dispatching between the named-key precomputed-case opcode
// (inline-cache eligible) and the computed-key opcode.
func (n *Node) generateMemberGet(gc *GenContext) (int, error) {
	obj, err := n.Left.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	return n.generateMemberGetFromObject(gc, obj)
}

func (n *Node) generateMemberGetFromObject(gc *GenContext, obj int) (int, error) {
	target := gc.FreshSSA()
	if !n.Computed {
		key := gc.Strings.Intern(n.Name)
		slot := gc.Gen.CB.AddICSlot()
		gc.Gen.CB.Emit(bytecode.Instruction{
			Opcode: bytecode.OpGetObjectPreComputedCase,
			Imm:    bytecode.PreComputedImm{Key: key, ICSlot: slot},
		}, target, obj, -1)
		return target, nil
	}
	keyIdx, err := n.Test.GenerateExpressionByteCode(gc)
	if err != nil {
		return 0, err
	}
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpGetObject}, target, obj, keyIdx)
	return target, nil
}

func (n *Node) generateArrayLiteral(gc *GenContext) (int, error) {
	elems := make([]int, len(n.Children))
	for i, el := range n.Children {
		idx, err := el.GenerateExpressionByteCode(gc)
		if err != nil {
			return 0, err
		}
		elems[i] = idx
	}
	target := gc.FreshSSA()
	gc.Gen.CB.Emit(bytecode.Instruction{
		Opcode: bytecode.OpCreateArray,
		Imm:    bytecode.CreateArrayImm{Length: len(elems)},
	}, target, -1, -1)
	for i, elemSSA := range elems {
		gc.Gen.CB.Emit(bytecode.Instruction{
			Opcode: bytecode.OpSetObject,
			Imm:    bytecode.ArraySetImm{Index: i, ValueSSA: elemSSA},
		}, -1, target, -1)
	}
	return target, nil
}

func (n *Node) generateObjectLiteral(gc *GenContext) (int, error) {
	target := gc.FreshSSA()
	gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpCreateObject}, target, -1, -1)
	for _, prop := range n.Children {
		valueSSA, err := prop.Left.GenerateExpressionByteCode(gc)
		if err != nil {
			return 0, err
		}
		if !prop.Computed {
			key := gc.Strings.Intern(prop.Name)
			slot := gc.Gen.CB.AddICSlot()
			gc.Gen.CB.Emit(bytecode.Instruction{
				Opcode: bytecode.OpPutInObjectPreComputedCase,
				Imm:    bytecode.PreComputedImm{Key: key, ICSlot: slot},
			}, -1, target, valueSSA)
			continue
		}
		keySSA, err := prop.Test.GenerateExpressionByteCode(gc)
		if err != nil {
			return 0, err
		}
		gc.Gen.CB.Emit(bytecode.Instruction{
			Opcode: bytecode.OpPutInObject,
			Imm:    bytecode.PutComputedImm{KeySSA: keySSA},
		}, -1, target, valueSSA)
	}
	return target, nil
}

func (n *Node) generateFunctionExpr(gc *GenContext) (int, error) {
	name := n.Name
	if name == "" {
		name = "<anonymous>"
	}
	return emitClosure(gc, name, n)
}
