package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders cb as human-readable text: one line per
// instruction, prefixed with its byte offset, suitable for -dump-bytecode
// debug output (grounded on the teacher's wasm disassembly helpers).
func Disassemble(cb *CodeBlock) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CodeBlock %s (params=%d, locals=%v)\n", cb.Name, cb.ParamCount, cb.LocalSlotNames)
	for i, instr := range cb.Instructions {
		fmt.Fprintf(&b, "%4d  %-28s", i, instr.Opcode.String())
		switch imm := instr.Imm.(type) {
		case PushImm:
			if imm.ConstIdx >= 0 && imm.ConstIdx < len(cb.Constants) {
				fmt.Fprintf(&b, "const[%d]", imm.ConstIdx)
			}
		case NameImm:
			if imm.Name != nil {
				fmt.Fprintf(&b, "%q", imm.Name.String())
			}
		case SlotImm:
			fmt.Fprintf(&b, "slot[%d]", imm.Slot)
		case PreComputedImm:
			if imm.Key != nil {
				fmt.Fprintf(&b, "%q ic[%d]", imm.Key.String(), imm.ICSlot)
			}
		case JumpImm:
			if imm.Target == SizeMax {
				b.WriteString("-> <unpatched>")
			} else {
				fmt.Fprintf(&b, "-> %d", imm.Target)
			}
		case LoopStartImm:
			fmt.Fprintf(&b, "profile[%d]", imm.ProfileSlot)
		case StackPointerImm:
			fmt.Fprintf(&b, "delta=%d", imm.Delta)
		case CallImm:
			fmt.Fprintf(&b, "callinfo[%d]", imm.CallInfoIdx)
		case ArgCountImm:
			fmt.Fprintf(&b, "argc=%d", imm.ArgCount)
		case FunctionImm:
			fmt.Fprintf(&b, "child[%d]", imm.ChildIndex)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
