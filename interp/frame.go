package interp

import (
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/escerr"
	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

// Interpreter holds the state shared across every CodeBlock it executes:
// the process-wide string table every interned key and binding name
// routes through, and the default prototypes freshly constructed plain
// objects/arrays chain to. A host embedding package vm sets the
// prototypes once its global object exists; both are nil-safe (a nil
// proto is simply an object with no inherited properties).
type Interpreter struct {
	Strings       *object.StringTable
	ObjectProto   value.Heap
	ArrayProto    value.Heap
	FunctionProto value.Heap

	// MaxStackDepth bounds the interpreter's own recursion through Execute
	// (a closure Call re-enters Execute directly — see interp/closure.go —
	// so there is no separate native call stack to overflow against). Zero
	// means unlimited, the zero-value Interpreter's default; package vm
	// sets this from vm.Config.MaxStackDepth.
	MaxStackDepth int
	depth         int
}

// NewInterpreter creates an Interpreter sharing strings with the rest of
// the engine (the generator that produced the CodeBlocks it will run).
func NewInterpreter(strings *object.StringTable) *Interpreter {
	return &Interpreter{Strings: strings}
}

// frame is one activation of Execute: the register file a CodeBlock's
// SSAIndexTable addresses, the lexical environment its GetById/PutById/
// CreateBinding opcodes resolve through, and the in-flight for-in
// enumerator stack (spec.md §3, §4.1).
type frame struct {
	it   *Interpreter
	cb   *bytecode.CodeBlock
	env  *Environment
	regs []value.TaggedValue

	forIn []*forInEnumerator
	// lastForInDone records CheckIfKeyIsLast's verdict for the pending
	// conditional jump that immediately follows it — the one jump in the
	// ISA whose test isn't a register (EmitForInHeader emits it with no
	// test register; see bytecode.Generator.EmitForInHeader).
	lastForInDone bool
}

// Execute runs cb to completion: paramNames are bound, in order, to args
// (missing trailing arguments bind to undefined); this is bound under
// the ordinary identifier "this", since this engine's generator treats
// `this` as an implicit parameter rather than a distinct bytecode form
// (spec.md §6). parent chains the call's environment to the enclosing
// scope a closure captured (nil for a top-level Program or a function
// with no lexical parent).
func Execute(it *Interpreter, cb *bytecode.CodeBlock, paramNames []string, parent *Environment, this value.TaggedValue, args []value.TaggedValue) (value.TaggedValue, error) {
	if it.MaxStackDepth > 0 {
		it.depth++
		defer func() { it.depth-- }()
		if it.depth > it.MaxStackDepth {
			return value.Undefined, escerr.StackOverflow(it.depth)
		}
	}

	env := NewEnvironment(parent)
	thisKey := it.Strings.Intern("this")
	env.CreateBinding(thisKey)
	_ = env.Set(thisKey, this)
	for i, name := range paramNames {
		key := it.Strings.Intern(name)
		env.CreateBinding(key)
		v := value.Undefined
		if i < len(args) {
			v = args[i]
		}
		_ = env.Set(key, v)
	}

	f := &frame{it: it, cb: cb, env: env, regs: make([]value.TaggedValue, cb.RegisterCount)}
	debugf("interp: entering %s (%d registers, %d instructions)", cb.Name, cb.RegisterCount, cb.Len())
	return f.run()
}

// run is the main register-machine dispatch loop: pc indexes both
// cb.Instructions and cb.SSAIndexTable in lockstep (spec.md §4.3 treats
// these as two cooperating cursors; collapsing the stack-machine byte
// buffer into a typed instruction slice makes them literally the same
// index, see bytecode.CodeBlock.Len).
func (f *frame) run() (value.TaggedValue, error) {
	cb := f.cb
	regs := f.regs
	pc := 0
	for pc < len(cb.Instructions) {
		instr := cb.Instructions[pc]
		triple := cb.SSAIndexTable[pc]
		target, src1, src2 := triple.Target, triple.Src1, triple.Src2
		debugf("interp: pc=%d %s target=%d src1=%d src2=%d", pc, instr.Opcode, target, src1, src2)

		switch instr.Opcode {

		// --- Stack manipulation: no-ops at the register-machine level ---
		case bytecode.OpPop, bytecode.OpPopExpressionStatement, bytecode.OpDuplicateTop,
			bytecode.OpPushIntoTempStack, bytecode.OpPopFromTempStack, bytecode.OpLoadStackPointer,
			bytecode.OpPrepareFunctionCall, bytecode.OpPushFunctionCallReceiver:
			// nothing to do

		case bytecode.OpPush:
			imm := instr.Imm.(bytecode.PushImm)
			regs[target] = cb.Constants[imm.ConstIdx]

		case bytecode.OpMove:
			regs[target] = regs[src1]

		// --- Variable access ---
		case bytecode.OpGetById, bytecode.OpGetGlobalVar:
			imm := instr.Imm.(bytecode.NameImm)
			v, err := f.env.Get(imm.Name)
			if err != nil {
				return value.Undefined, err
			}
			regs[target] = v

		case bytecode.OpPutById, bytecode.OpPutGlobalVar:
			imm := instr.Imm.(bytecode.NameImm)
			if err := f.env.Set(imm.Name, regs[src1]); err != nil {
				return value.Undefined, err
			}

		case bytecode.OpGetByIndex:
			imm := instr.Imm.(bytecode.SlotImm)
			regs[target] = f.env.GetByIndex(imm.Slot)

		case bytecode.OpPutByIndex:
			imm := instr.Imm.(bytecode.SlotImm)
			f.env.PutByIndex(imm.Slot, regs[src1])

		case bytecode.OpCreateBinding:
			imm := instr.Imm.(bytecode.NameImm)
			f.env.CreateBinding(imm.Name)

		// --- Member access ---
		case bytecode.OpGetObject, bytecode.OpGetObjectWithPeeking:
			v, err := f.it.getComputed(regs[src1], regs[src2])
			if err != nil {
				return value.Undefined, err
			}
			regs[target] = v

		case bytecode.OpGetObjectPreComputedCase:
			imm := instr.Imm.(bytecode.PreComputedImm)
			v, err := f.it.getNamedCached(&cb.ICSlots[imm.ICSlot], regs[src1], imm.Key)
			if err != nil {
				return value.Undefined, err
			}
			regs[target] = v

		case bytecode.OpSetObject:
			if imm, ok := instr.Imm.(bytecode.ArraySetImm); ok {
				if arr, ok := regs[src1].AsHeap().(*object.ArrayObject); ok {
					arr.SetIndex(imm.Index, regs[imm.ValueSSA])
				}
			}

		case bytecode.OpPutInObject:
			imm := instr.Imm.(bytecode.PutComputedImm)
			if err := f.it.putComputed(regs[src1], regs[imm.KeySSA], regs[src2]); err != nil {
				return value.Undefined, err
			}

		case bytecode.OpPutInObjectPreComputedCase:
			imm := instr.Imm.(bytecode.PreComputedImm)
			if err := f.it.putNamedCached(&cb.ICSlots[imm.ICSlot], regs[src1], imm.Key, regs[src2]); err != nil {
				return value.Undefined, err
			}

		// --- Arithmetic / logic ---
		case bytecode.OpPlus:
			regs[target] = plus(regs[src1], regs[src2])
		case bytecode.OpMinus:
			regs[target] = minus(regs[src1], regs[src2])
		case bytecode.OpMultiply:
			regs[target] = multiply(regs[src1], regs[src2])
		case bytecode.OpDivision:
			regs[target] = division(regs[src1], regs[src2])
		case bytecode.OpMod:
			regs[target] = mod(regs[src1], regs[src2])
		case bytecode.OpIncrement:
			regs[target] = increment(regs[src1])
		case bytecode.OpDecrement:
			regs[target] = decrement(regs[src1])
		case bytecode.OpUnaryPlus:
			regs[target] = value.NumberFromFloat64(value.ToNumber(regs[src1]))
		case bytecode.OpUnaryMinus:
			regs[target] = unaryMinus(regs[src1])
		case bytecode.OpBitwiseAnd:
			regs[target] = bitwiseAnd(regs[src1], regs[src2])
		case bytecode.OpBitwiseOr:
			regs[target] = bitwiseOr(regs[src1], regs[src2])
		case bytecode.OpBitwiseXor:
			regs[target] = bitwiseXor(regs[src1], regs[src2])
		case bytecode.OpBitwiseNot:
			regs[target] = bitwiseNot(regs[src1])
		case bytecode.OpLeftShift:
			regs[target] = leftShift(regs[src1], regs[src2])
		case bytecode.OpSignedRightShift:
			regs[target] = signedRightShift(regs[src1], regs[src2])
		case bytecode.OpUnsignedRightShift:
			regs[target] = unsignedRightShift(regs[src1], regs[src2])
		case bytecode.OpLogicalNot:
			regs[target] = value.Bool(!value.ToBoolean(regs[src1]))
		case bytecode.OpToNumber:
			regs[target] = value.NumberFromFloat64(value.ToNumber(regs[src1]))

		// --- Comparison ---
		case bytecode.OpEqual:
			regs[target] = value.Bool(looseEqual(regs[src1], regs[src2]))
		case bytecode.OpNotEqual:
			regs[target] = value.Bool(!looseEqual(regs[src1], regs[src2]))
		case bytecode.OpStrictEqual:
			regs[target] = value.Bool(regs[src1].Equal(regs[src2]))
		case bytecode.OpNotStrictEqual:
			regs[target] = value.Bool(!regs[src1].Equal(regs[src2]))
		case bytecode.OpGreaterThan:
			regs[target] = value.Bool(greaterThan(regs[src1], regs[src2]))
		case bytecode.OpGreaterThanOrEqual:
			regs[target] = value.Bool(greaterThanOrEqual(regs[src1], regs[src2]))
		case bytecode.OpLessThan:
			regs[target] = value.Bool(lessThan(regs[src1], regs[src2]))
		case bytecode.OpLessThanOrEqual:
			regs[target] = value.Bool(lessThanOrEqual(regs[src1], regs[src2]))
		case bytecode.OpStringIn:
			in, err := f.it.stringIn(regs[src1], regs[src2])
			if err != nil {
				return value.Undefined, err
			}
			regs[target] = value.Bool(in)
		case bytecode.OpUnaryTypeOf:
			regs[target] = value.Pointer(object.NewStringPrimitive(typeOf(regs[src1])))
		case bytecode.OpUnaryDelete:
			// generateUnary evaluates its operand as an ordinary value
			// rather than resolving it to an Address (see ast package), so
			// this opcode only ever sees an already-evaluated, non-
			// reference expression — the one case ECMA-262 §12.5.3 always
			// answers true for.
			regs[target] = value.Bool(true)

		// --- Control flow ---
		case bytecode.OpJump:
			t, _ := instr.JumpTarget()
			pc = int(t)
			continue

		case bytecode.OpJumpIfFalse, bytecode.OpJumpIfTrue,
			bytecode.OpJumpIfFalseWithPeeking, bytecode.OpJumpIfTrueWithPeeking:
			var cond bool
			if src1 >= 0 {
				cond = value.ToBoolean(regs[src1])
			} else {
				cond = f.lastForInDone
			}
			want := instr.Opcode == bytecode.OpJumpIfTrue || instr.Opcode == bytecode.OpJumpIfTrueWithPeeking
			if cond == want {
				t, _ := instr.JumpTarget()
				pc = int(t)
				continue
			}

		case bytecode.OpJumpAndPopIfTrue:
			// Stack-machine switch-case dispatch; nothing in this module
			// emits it (generateSwitch and EmitSwitchDispatch use
			// JumpIfTrue), so it is kept only for ISA parity.
			if src1 >= 0 && value.ToBoolean(regs[src1]) {
				t, _ := instr.JumpTarget()
				pc = int(t)
				continue
			}

		case bytecode.OpLoopStart:
			imm := instr.Imm.(bytecode.LoopStartImm)
			cb.Profiles[imm.ProfileSlot].HitCount++

		// --- For-in ---
		case bytecode.OpEnumerateObject:
			var keys []*object.Interned
			if regs[src1].IsPointer() {
				keys = object.EnumerableKeysOf(regs[src1].AsHeap())
			}
			f.forIn = append(f.forIn, &forInEnumerator{keys: keys})

		case bytecode.OpCheckIfKeyIsLast:
			top := f.forIn[len(f.forIn)-1]
			f.lastForInDone = top.cursor >= len(top.keys)
			if f.lastForInDone {
				f.forIn = f.forIn[:len(f.forIn)-1]
			}

		case bytecode.OpEnumerateObjectKey:
			top := f.forIn[len(f.forIn)-1]
			key := top.keys[top.cursor]
			top.cursor++
			regs[target] = value.Pointer(object.NewStringPrimitive(key.String()))

		// --- Calls ---
		case bytecode.OpCallFunction, bytecode.OpNewFunctionCall:
			imm := instr.Imm.(bytecode.CallImm)
			info := cb.CallInfos[imm.CallInfoIdx]
			args := make([]value.TaggedValue, len(info.ArgIndices))
			for i, idx := range info.ArgIndices {
				args[i] = regs[idx]
			}
			result, err := f.it.invoke(regs[info.CalleeIdx], regs[info.ReceiverIdx], args, instr.Opcode == bytecode.OpNewFunctionCall)
			if err != nil {
				return value.Undefined, err
			}
			regs[target] = result

		// --- Exceptions ---
		case bytecode.OpThrow:
			return value.Undefined, escerr.Thrown(regs[src1])

		// --- Return / halt ---
		case bytecode.OpReturnFunction, bytecode.OpEnd:
			return value.Undefined, nil
		case bytecode.OpReturnFunctionWithValue:
			return regs[src1], nil

		// --- Object/array construction ---
		case bytecode.OpCreateObject:
			regs[target] = value.Pointer(object.NewObject(object.RootShape(), f.it.ObjectProto))
		case bytecode.OpCreateArray:
			imm := instr.Imm.(bytecode.CreateArrayImm)
			regs[target] = value.Pointer(object.NewArrayObject(object.RootShape(), f.it.ArrayProto, imm.Length))

		// --- Closures ---
		case bytecode.OpMakeClosure:
			imm := instr.Imm.(bytecode.FunctionImm)
			child := cb.Children[imm.ChildIndex]
			regs[target] = f.makeClosure(child, child.Name)

		default:
			return value.Undefined, escerr.InvalidOpcode(byte(instr.Opcode))
		}

		pc++
	}
	return value.Undefined, nil
}
