package jit

import "github.com/escargot-js/escargot/ir"

// InferTypes runs the forward, block-by-block type-inference pass over g
// (spec.md §4.4): for each instruction, read its source operands' current
// lattice entries, decide the destination type, and rewrite the
// instruction in place via Block.Replace when a specialized ESIR form
// applies. Returns false the moment a LoadPhi sees disagreeing source
// types or an arithmetic instruction sees a source type the lattice rules
// don't cover — both are "abandon this compile, keep interpreting"
// signals, not panics (spec.md §4.4: "unknown opcodes are a bail-out").
func InferTypes(g *ir.Graph) bool {
	for _, b := range g.Blocks {
		if !inferBlock(g, b) {
			return false
		}
	}
	return true
}

func inferBlock(g *ir.Graph, b *ir.Block) bool {
	for j := 0; j < len(b.Instructions); j++ {
		instr := b.Instructions[j]
		t1, t2 := g.TypeOf(instr.Src1), g.TypeOf(instr.Src2)

		switch instr.Op {
		case ir.OpConstantInt:
			if g.TypeOf(instr.Target) == ir.TypeDouble {
				b.Replace(j, ir.Instr{Op: ir.OpConstantDouble, Target: instr.Target, Src1: -1, Src2: -1, ConstDouble: float64(instr.ConstInt)})
			} else {
				g.SetType(instr.Target, ir.TypeInt32)
			}
		case ir.OpConstantDouble:
			g.SetType(instr.Target, ir.TypeDouble)
		case ir.OpConstantString:
			g.SetType(instr.Target, ir.TypeSimpleString)

		case ir.OpGenericPlus:
			switch {
			case t1.Is(ir.TypeInt32) && t2.Is(ir.TypeInt32):
				b.Replace(j, ir.Instr{Op: ir.OpInt32Plus, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2})
				g.SetType(instr.Target, ir.TypeInt32)
			case t1.IsNumberType() && t2.IsNumberType():
				b.Replace(j, ir.Instr{Op: ir.OpDoublePlus, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2})
				g.SetType(instr.Target, ir.TypeDouble)
			case t1.IsStringType() || t2.IsStringType():
				b.Replace(j, ir.Instr{Op: ir.OpStringPlus, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2})
				g.SetType(instr.Target, ir.TypeString)
			case t1.Is(ir.TypeUndefined) || t2.Is(ir.TypeUndefined):
				g.SetType(instr.Target, ir.TypeDouble)
			default:
				return false
			}

		case ir.OpGenericMultiply:
			switch {
			case t1.Is(ir.TypeInt32) && t2.Is(ir.TypeInt32):
				// Overflow-guard seed: the product of two Int32s may not
				// fit in Int32, so the target type is Double even though
				// the specialized opcode is Int32Multiply. Nothing in
				// this module compares the two at run time.
				b.Replace(j, ir.Instr{Op: ir.OpInt32Multiply, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2})
				g.SetType(instr.Target, ir.TypeDouble)
			case t1.IsNumberType() && t2.IsNumberType():
				b.Replace(j, ir.Instr{Op: ir.OpDoubleMultiply, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2})
				g.SetType(instr.Target, ir.TypeDouble)
			default:
				return false
			}

		case ir.OpGenericDivision:
			if t1.IsNumberType() && t2.IsNumberType() {
				b.Replace(j, ir.Instr{Op: ir.OpDoubleDivision, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2})
			}
			g.SetType(instr.Target, ir.TypeDouble)

		case ir.OpGenericMod:
			switch {
			case t1.Is(ir.TypeInt32) && t2.Is(ir.TypeInt32):
				b.Replace(j, ir.Instr{Op: ir.OpInt32Mod, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2})
				g.SetType(instr.Target, ir.TypeInt32)
			case t1.IsNumberType() && t2.IsNumberType():
				b.Replace(j, ir.Instr{Op: ir.OpDoubleMod, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2})
				g.SetType(instr.Target, ir.TypeDouble)
			default:
				g.SetType(instr.Target, ir.TypeDouble)
			}

		case ir.OpMinus:
			if t1.Is(ir.TypeInt32) && t2.Is(ir.TypeInt32) {
				g.SetType(instr.Target, ir.TypeInt32)
			} else {
				g.SetType(instr.Target, ir.TypeDouble)
			}

		case ir.OpToNumber, ir.OpIncrement, ir.OpDecrement, ir.OpUnaryMinus:
			switch {
			case t1.Is(ir.TypeInt32):
				g.SetType(instr.Target, ir.TypeInt32)
			case t1.IsNumberType():
				g.SetType(instr.Target, ir.TypeDouble)
			default:
				return false
			}

		case ir.OpBitwiseAnd, ir.OpBitwiseOr, ir.OpBitwiseXor, ir.OpBitwiseNot,
			ir.OpLeftShift, ir.OpSignedRightShift, ir.OpUnsignedRightShift:
			g.SetType(instr.Target, ir.TypeInt32)

		case ir.OpEqual, ir.OpNotEqual, ir.OpStrictEqual, ir.OpNotStrictEqual,
			ir.OpGreaterThan, ir.OpGreaterThanOrEqual, ir.OpLessThan, ir.OpLessThanOrEqual,
			ir.OpLogicalNot:
			g.SetType(instr.Target, ir.TypeBoolean)

		case ir.OpTypeOf:
			g.SetType(instr.Target, ir.TypeSimpleString)

		case ir.OpGetObject:
			switch {
			case t1.Is(ir.TypeArrayObject) && t2.IsNumberType():
				b.Replace(j, ir.Instr{Op: ir.OpGetArrayObject, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2})
			case t1.Is(ir.TypeStringObject) && t2.Is(ir.TypeInt32):
				b.Replace(j, ir.Instr{Op: ir.OpGetStringByIndex, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2})
			}
			g.SetType(instr.Target, ir.TypeTop)

		case ir.OpSetObject:
			if t1.Is(ir.TypeArrayObject) && g.TypeOf(instr.KeySSA).IsNumberType() {
				b.Replace(j, ir.Instr{Op: ir.OpSetArrayObject, Target: instr.Target, Src1: instr.Src1, Src2: instr.Src2, KeySSA: instr.KeySSA})
			}

		case ir.OpMove:
			g.SetType(instr.Target, t1)
		case ir.OpStorePhi:
			g.SetType(instr.Target, t1)
		case ir.OpLoadPhi:
			if t1 != t2 {
				return false
			}
			g.SetType(instr.Target, t1)

		case ir.OpGetVarGeneric, ir.OpGetGlobalVarGeneric, ir.OpGetVar, ir.OpGetArgument,
			ir.OpGetObjectPreComputed, ir.OpCreateObject, ir.OpCreateArray,
			ir.OpGetEnumerateKey, ir.OpCallJS, ir.OpCallNewJS, ir.OpCallEval:
			g.SetType(instr.Target, ir.TypeTop)
		}
	}
	return true
}
