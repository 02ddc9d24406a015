// Package jit lifts a CodeBlock into a typed ESGraph (package ir) once the
// interpreter's profile data shows it is worth compiling, and specializes
// that graph via a forward type-inference pass (spec.md §4.3, §4.4).
package jit

import (
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/ir"
	"github.com/escargot-js/escargot/value"
)

// BuildGraph lowers cb into an ESGraph by a single linear scan that
// discovers basic-block boundaries as it goes (spec.md §4.3): a loop
// header (LoopStart) always splits the block it's emitted into, a forward
// jump's target eagerly gets a block before the scan reaches it, and a
// backward jump's target already has one from when the scan first passed
// through it (LoopStart having split a block there on the way past).
// Returns (nil, false) — a normal, lossless bail-out, not an error — the
// first time it meets a bytecode with no ESIR translation; the caller
// keeps interpreting cb (spec.md §4.3: "bail-out is normal and must be
// lossless").
func BuildGraph(cb *bytecode.CodeBlock) (*ir.Graph, bool) {
	g := ir.NewGraph(cb.RegisterCount)
	mapping := make(map[int]*ir.Block)

	blockAt := func(idx int) *ir.Block {
		if b, ok := mapping[idx]; ok {
			return b
		}
		b := g.NewBlock()
		mapping[idx] = b
		return b
	}

	current := blockAt(0)
	terminated := false

	emit := func(i ir.Instr) { current.Instructions = append(current.Instructions, i) }

	for idx := 0; idx < cb.Len(); idx++ {
		instr := cb.Instructions[idx]
		triple := cb.SSAIndexTable[idx]
		target, src1, src2 := triple.Target, triple.Src1, triple.Src2

		// A loop header always begins a fresh block, even though nothing
		// has jumped to it yet — this is what lets the scan's later
		// backward Jump(loopStart) find an existing block instead of
		// landing mid-block (spec.md §4.3: "LoopStart creates a new block
		// at the following offset").
		if instr.Opcode == bytecode.OpLoopStart && len(current.Instructions) > 0 {
			next := blockAt(idx)
			if next != current {
				if !terminated {
					g.AddChild(current.Index, next.Index)
				}
				current = next
			}
		} else if b, ok := mapping[idx]; ok && b != current {
			if !terminated {
				g.AddChild(current.Index, b.Index)
			}
			current = b
		}
		terminated = false

		switch instr.Opcode {

		// --- No IR: SSA already subsumes the operand/temp stack ---
		case bytecode.OpPop, bytecode.OpPopExpressionStatement, bytecode.OpPushIntoTempStack,
			bytecode.OpPopFromTempStack, bytecode.OpPrepareFunctionCall, bytecode.OpPushFunctionCallReceiver,
			bytecode.OpCreateBinding, bytecode.OpLoadStackPointer:

		case bytecode.OpPush:
			c := cb.Constants[instr.Imm.(bytecode.PushImm).ConstIdx]
			switch c.Tag() {
			case value.TagInt32:
				emit(ir.Instr{Op: ir.OpConstantInt, Target: target, Src1: -1, Src2: -1, ConstInt: c.AsInt32()})
			case value.TagDouble:
				emit(ir.Instr{Op: ir.OpConstantDouble, Target: target, Src1: -1, Src2: -1, ConstDouble: c.AsDouble()})
			case value.TagBoolean:
				b := int32(0)
				if c.AsBool() {
					b = 1
				}
				emit(ir.Instr{Op: ir.OpConstantInt, Target: target, Src1: -1, Src2: -1, ConstInt: b})
			default:
				if sh, ok := c.AsHeap().(value.StringHeap); ok {
					emit(ir.Instr{Op: ir.OpConstantString, Target: target, Src1: -1, Src2: -1, ConstString: sh.StringValue()})
				} else {
					return nil, false
				}
			}

		case bytecode.OpDuplicateTop:
			emit(ir.Instr{Op: ir.OpMove, Target: target, Src1: src1, Src2: -1})
		case bytecode.OpMove:
			emit(ir.Instr{Op: ir.OpMove, Target: target, Src1: src1, Src2: -1})

		case bytecode.OpGetById:
			emit(ir.Instr{Op: ir.OpGetVarGeneric, Target: target, Src1: -1, Src2: -1, Name: instr.Imm.(bytecode.NameImm).Name})
		case bytecode.OpPutById:
			emit(ir.Instr{Op: ir.OpSetVarGeneric, Target: -1, Src1: src1, Src2: -1, Name: instr.Imm.(bytecode.NameImm).Name})
		case bytecode.OpGetGlobalVar:
			emit(ir.Instr{Op: ir.OpGetGlobalVarGeneric, Target: target, Src1: -1, Src2: -1, Name: instr.Imm.(bytecode.NameImm).Name})
		case bytecode.OpPutGlobalVar:
			emit(ir.Instr{Op: ir.OpSetGlobalVarGeneric, Target: -1, Src1: src1, Src2: -1, Name: instr.Imm.(bytecode.NameImm).Name})

		case bytecode.OpGetByIndex:
			slot := instr.Imm.(bytecode.SlotImm).Slot
			op := ir.OpGetVar
			if slot < cb.ParamCount {
				op = ir.OpGetArgument
			}
			emit(ir.Instr{Op: op, Target: target, Src1: -1, Src2: -1, Slot: slot})
		case bytecode.OpPutByIndex:
			emit(ir.Instr{Op: ir.OpSetVar, Target: -1, Src1: src1, Src2: -1, Slot: instr.Imm.(bytecode.SlotImm).Slot})

		case bytecode.OpGetObject, bytecode.OpGetObjectWithPeeking:
			emit(ir.Instr{Op: ir.OpGetObject, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpGetObjectPreComputedCase:
			imm := instr.Imm.(bytecode.PreComputedImm)
			emit(ir.Instr{Op: ir.OpGetObjectPreComputed, Target: target, Src1: src1, Src2: -1, Name: imm.Key, ICSlot: imm.ICSlot})

		case bytecode.OpSetObject:
			imm, ok := instr.Imm.(bytecode.ArraySetImm)
			if !ok {
				return nil, false
			}
			emit(ir.Instr{Op: ir.OpInitArrayObject, Target: -1, Src1: src1, Src2: -1, ArrayIndex: imm.Index, ValueSSA: imm.ValueSSA})
		case bytecode.OpPutInObject:
			imm := instr.Imm.(bytecode.PutComputedImm)
			emit(ir.Instr{Op: ir.OpSetObject, Target: -1, Src1: src1, Src2: src2, KeySSA: imm.KeySSA})
		case bytecode.OpPutInObjectPreComputedCase:
			imm := instr.Imm.(bytecode.PreComputedImm)
			emit(ir.Instr{Op: ir.OpSetObject, Target: -1, Src1: src1, Src2: src2, Name: imm.Key, ICSlot: imm.ICSlot})

		case bytecode.OpPlus:
			emit(ir.Instr{Op: ir.OpGenericPlus, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpMinus:
			emit(ir.Instr{Op: ir.OpMinus, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpMultiply:
			emit(ir.Instr{Op: ir.OpGenericMultiply, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpDivision:
			emit(ir.Instr{Op: ir.OpGenericDivision, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpMod:
			emit(ir.Instr{Op: ir.OpGenericMod, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpIncrement:
			emit(ir.Instr{Op: ir.OpIncrement, Target: target, Src1: src1, Src2: -1})
		case bytecode.OpDecrement:
			emit(ir.Instr{Op: ir.OpDecrement, Target: target, Src1: src1, Src2: -1})
		case bytecode.OpUnaryPlus, bytecode.OpToNumber:
			emit(ir.Instr{Op: ir.OpToNumber, Target: target, Src1: src1, Src2: -1})
		case bytecode.OpUnaryMinus:
			emit(ir.Instr{Op: ir.OpUnaryMinus, Target: target, Src1: src1, Src2: -1})
		case bytecode.OpBitwiseAnd:
			emit(ir.Instr{Op: ir.OpBitwiseAnd, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpBitwiseOr:
			emit(ir.Instr{Op: ir.OpBitwiseOr, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpBitwiseXor:
			emit(ir.Instr{Op: ir.OpBitwiseXor, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpBitwiseNot:
			emit(ir.Instr{Op: ir.OpBitwiseNot, Target: target, Src1: src1, Src2: -1})
		case bytecode.OpLeftShift:
			emit(ir.Instr{Op: ir.OpLeftShift, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpSignedRightShift:
			emit(ir.Instr{Op: ir.OpSignedRightShift, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpUnsignedRightShift:
			emit(ir.Instr{Op: ir.OpUnsignedRightShift, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpLogicalNot:
			emit(ir.Instr{Op: ir.OpLogicalNot, Target: target, Src1: src1, Src2: -1})

		case bytecode.OpEqual:
			emit(ir.Instr{Op: ir.OpEqual, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpNotEqual:
			emit(ir.Instr{Op: ir.OpNotEqual, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpStrictEqual:
			emit(ir.Instr{Op: ir.OpStrictEqual, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpNotStrictEqual:
			emit(ir.Instr{Op: ir.OpNotStrictEqual, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpGreaterThan:
			emit(ir.Instr{Op: ir.OpGreaterThan, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpGreaterThanOrEqual:
			emit(ir.Instr{Op: ir.OpGreaterThanOrEqual, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpLessThan:
			emit(ir.Instr{Op: ir.OpLessThan, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpLessThanOrEqual:
			emit(ir.Instr{Op: ir.OpLessThanOrEqual, Target: target, Src1: src1, Src2: src2})
		case bytecode.OpUnaryTypeOf:
			emit(ir.Instr{Op: ir.OpTypeOf, Target: target, Src1: src1, Src2: -1})

		// StringIn/UnaryDelete have no ESIR counterpart in this slice
		// (spec.md §3's instruction family omits them) — bail out, same
		// as any other opcode the front-end doesn't recognize. MakeClosure
		// bails out the same way: a closure capture is a call-site-
		// independent allocation with no operand types to specialize on,
		// so there is nothing for the type-inference pass to gain from
		// compiling it — the interpreter keeps running function/closure-
		// creating CodeBlocks unJITted.
		case bytecode.OpStringIn, bytecode.OpUnaryDelete, bytecode.OpMakeClosure:
			return nil, false

		case bytecode.OpLoopStart:
			emit(ir.Instr{Op: ir.OpLoopStart, Target: -1, Src1: -1, Src2: -1, Slot: instr.Imm.(bytecode.LoopStartImm).ProfileSlot})

		case bytecode.OpJump:
			t, _ := instr.JumpTarget()
			tb := blockAt(int(t))
			g.AddChild(current.Index, tb.Index)
			emit(ir.Instr{Op: ir.OpJump, Target: -1, Src1: -1, Src2: -1, JumpTarget: tb.Index})
			terminated = true

		case bytecode.OpJumpIfFalse, bytecode.OpJumpIfTrue,
			bytecode.OpJumpIfFalseWithPeeking, bytecode.OpJumpIfTrueWithPeeking:
			t, _ := instr.JumpTarget()
			takenBlock := blockAt(int(t))
			fallBlock := blockAt(idx + 1)
			g.AddChild(current.Index, takenBlock.Index)
			g.AddChild(current.Index, fallBlock.Index)
			// Branch's taken/not-taken sense differs between JumpIfFalse
			// and JumpIfTrue; both compile down to one Branch IR carrying
			// both edges, since by the time the graph exists the only
			// thing that matters is which successor corresponds to which
			// boolean value of the test register.
			jumpTarget, elseTarget := takenBlock.Index, fallBlock.Index
			if instr.Opcode == bytecode.OpJumpIfTrue || instr.Opcode == bytecode.OpJumpIfTrueWithPeeking {
				jumpTarget, elseTarget = elseTarget, jumpTarget
			}
			emit(ir.Instr{Op: ir.OpBranch, Target: -1, Src1: src1, Src2: -1, JumpTarget: jumpTarget, ElseTarget: elseTarget})
			terminated = true

		case bytecode.OpJumpAndPopIfTrue:
			// Stack-machine switch dispatch; this register-machine
			// generator never emits it (see ast.generateSwitch, which
			// uses StrictEqual + an ordinary JumpIfTrue), so the front-end
			// never needs to lower it. Bail out rather than silently
			// mistranslating it if it ever does appear.
			return nil, false

		case bytecode.OpEnumerateObject:
			emit(ir.Instr{Op: ir.OpGetEnumerableObjectData, Target: -1, Src1: src1, Src2: -1})
		case bytecode.OpCheckIfKeyIsLast:
			emit(ir.Instr{Op: ir.OpCheckIfKeyIsLast, Target: -1, Src1: -1, Src2: -1})
		case bytecode.OpEnumerateObjectKey:
			emit(ir.Instr{Op: ir.OpGetEnumerateKey, Target: target, Src1: -1, Src2: -1})

		case bytecode.OpCallFunction:
			emit(ir.Instr{Op: ir.OpCallJS, Target: target, Src1: -1, Src2: -1, CallInfoIdx: instr.Imm.(bytecode.CallImm).CallInfoIdx})
		case bytecode.OpNewFunctionCall:
			emit(ir.Instr{Op: ir.OpCallNewJS, Target: target, Src1: -1, Src2: -1, CallInfoIdx: instr.Imm.(bytecode.CallImm).CallInfoIdx})

		case bytecode.OpThrow:
			emit(ir.Instr{Op: ir.OpThrow, Target: -1, Src1: src1, Src2: -1})
			terminated = true

		case bytecode.OpReturnFunction, bytecode.OpEnd:
			emit(ir.Instr{Op: ir.OpReturn, Target: -1, Src1: -1, Src2: -1})
			terminated = true
		case bytecode.OpReturnFunctionWithValue:
			emit(ir.Instr{Op: ir.OpReturnWithValue, Target: -1, Src1: src1, Src2: -1})
			terminated = true

		case bytecode.OpCreateObject:
			emit(ir.Instr{Op: ir.OpCreateObject, Target: target, Src1: -1, Src2: -1})
		case bytecode.OpCreateArray:
			emit(ir.Instr{Op: ir.OpCreateArray, Target: target, Src1: -1, Src2: -1, ArrayIndex: instr.Imm.(bytecode.CreateArrayImm).Length})

		default:
			debugf("jit: front-end bailing out on unrecognized opcode %s at idx %d", instr.Opcode, idx)
			return nil, false
		}
	}

	return g, true
}
