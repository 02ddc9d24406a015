package bytecode

import (
	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

// SSATriple is one row of the ssaIndexTable: for the instruction at a
// given bytecodeCounter, the SSA index it targets and the (up to two)
// SSA indices it reads. The JIT front-end uses this table to construct
// typed ESIR without re-deriving stack effects from the opcode alone
// (spec.md §3, §4.3).
type SSATriple struct {
	Target int
	Src1   int
	Src2   int // -1 when the instruction has at most one source
}

// CallInfo is one entry of the functionCallInfos side table: the operand-
// stack positions of the callee, receiver, and arguments for one call
// site (spec.md §4.1).
type CallInfo struct {
	CalleeIdx   int
	ReceiverIdx int
	ArgIndices  []int
}

// ProfileSlot is the per-site runtime feedback record. The generator
// allocates one for each LoopStart only; the interpreter bumps HitCount
// each time that LoopStart executes, and package vm reads HitCount to
// decide promotion (spec.md §2, §4.3).
type ProfileSlot struct {
	// The Saw* flags record which kinds of value Observe has seen at this
	// site; no opcode handler calls Observe, so they stay false.
	SawInt32   bool
	SawDouble  bool
	SawString  bool
	SawObject  bool
	SawArray   bool
	SawFunction bool
	HitCount   int
}

// Observe records one execution's runtime tag at this profile site.
func (p *ProfileSlot) Observe(v value.TaggedValue) {
	p.HitCount++
	switch v.Tag() {
	case value.TagInt32:
		p.SawInt32 = true
	case value.TagDouble:
		p.SawDouble = true
	case value.TagPointer:
		switch v.AsHeap().ClassName() {
		case "Array":
			p.SawArray = true
		case "String":
			p.SawString = true
		case "Function":
			p.SawFunction = true
		default:
			p.SawObject = true
		}
	}
}

// Monomorphic reports whether exactly one shape of value has ever been
// observed at this site. The JIT front-end does not consult it; it always
// lowers member access to the generic IR forms.
func (p *ProfileSlot) Monomorphic() bool {
	n := 0
	for _, b := range []bool{p.SawInt32, p.SawDouble, p.SawString, p.SawObject, p.SawArray, p.SawFunction} {
		if b {
			n++
		}
	}
	return n == 1
}

// ICSlot is one inline-cache slot: the cached HiddenClass chain and slot
// index for a GetObjectPreComputedCase/PutInObjectPreComputedCase site
// (spec.md §4.5). The concrete cache lives in package object
// (object.ReadCache / object.WriteCache); CodeBlock just owns the slice
// slots are indexed into.
type ICSlot struct {
	Read  *object.ReadCache
	Write *object.WriteCache
}

// CodeBlock is a compiled function unit: the emitted instruction stream
// (standing in for the byte buffer — see Instructions), a constant pool,
// a parameter descriptor, profile slots, inline-cache slots, and the
// SSA-index table produced by emission (spec.md §3).
type CodeBlock struct {
	Name          string
	ParamCount    int
	Instructions  []Instruction
	Constants     []value.TaggedValue
	SSAIndexTable []SSATriple
	CallInfos     []CallInfo
	Profiles      []ProfileSlot
	ICSlots       []ICSlot

	// RegisterCount is one past the highest SSA target index the
	// generator issued for this CodeBlock — the size the interpreter
	// allocates its registers array at (package ast's GenContext.FreshSSA
	// is the sole source of target indices; see ast.Compile).
	RegisterCount int

	// ParamNames are this CodeBlock's own parameter identifiers, in
	// declaration order. The top-level Program a host compiles directly
	// via ast.Compile leaves this nil and supplies its own paramNames to
	// interp.Execute; a nested function's CodeBlock (reached only via
	// Children, below) carries its own so MakeClosure's Call
	// implementation doesn't need a side channel to bind them.
	ParamNames []string

	// Children holds the CodeBlocks of function expressions/declarations
	// lexically nested in this one, indexed by FunctionImm.ChildIndex.
	Children []*CodeBlock

	// LocalSlotNames names local slots for Disassemble only; not consulted
	// by the interpreter.
	LocalSlotNames []string
}

// AddChild appends a nested function's CodeBlock to Children, returning
// the index a MakeClosure instruction should reference.
func (cb *CodeBlock) AddChild(child *CodeBlock) int {
	cb.Children = append(cb.Children, child)
	return len(cb.Children) - 1
}

// NewCodeBlock allocates an empty CodeBlock for a function taking
// paramCount parameters.
func NewCodeBlock(name string, paramCount int) *CodeBlock {
	return &CodeBlock{Name: name, ParamCount: paramCount}
}

// Len returns the number of emitted instructions — this engine's
// equivalent of the byte buffer's length, since bytecodeCounter here is
// simply the instruction index (spec.md §4.3 tracks idx/bytecodeCounter
// as two cooperating cursors; collapsing the byte buffer into a typed
// instruction slice makes them the same cursor without changing any
// front-end invariant).
func (cb *CodeBlock) Len() int { return len(cb.Instructions) }

// AddConstant interns v into the constant pool, returning its index.
// Constants are not deduplicated: each Push site gets its own slot, which
// keeps emission a single linear append (matching the teacher's
// append-only encode idiom) at the cost of minor duplication for repeated
// literals.
func (cb *CodeBlock) AddConstant(v value.TaggedValue) int {
	cb.Constants = append(cb.Constants, v)
	return len(cb.Constants) - 1
}

// Emit appends instr, recording its SSA triple and returning the
// bytecodeCounter (== instruction index) it was assigned at.
func (cb *CodeBlock) Emit(instr Instruction, target, src1, src2 int) int {
	idx := len(cb.Instructions)
	cb.Instructions = append(cb.Instructions, instr)
	cb.SSAIndexTable = append(cb.SSAIndexTable, SSATriple{Target: target, Src1: src1, Src2: src2})
	return idx
}

// AddCallInfo appends a call-site descriptor, returning its index.
func (cb *CodeBlock) AddCallInfo(info CallInfo) int {
	cb.CallInfos = append(cb.CallInfos, info)
	return len(cb.CallInfos) - 1
}

// AddProfileSlot appends a fresh profile slot, returning its index.
func (cb *CodeBlock) AddProfileSlot() int {
	cb.Profiles = append(cb.Profiles, ProfileSlot{})
	return len(cb.Profiles) - 1
}

// AddICSlot appends a fresh (empty) inline-cache slot, returning its index.
func (cb *CodeBlock) AddICSlot() int {
	cb.ICSlots = append(cb.ICSlots, ICSlot{})
	return len(cb.ICSlots) - 1
}

// PatchJump rewrites the jump target of the instruction at idx. It
// asserts (via panic — a structural bug, per spec.md §5) that idx
// actually holds a jump instruction, mirroring the teacher's pattern of
// verifying the opcode at patch time before writing through a recorded
// byte offset.
func (cb *CodeBlock) PatchJump(idx int, target uint32) {
	instr := &cb.Instructions[idx]
	if !instr.IsJump() {
		panic("bytecode: PatchJump on non-jump instruction")
	}
	instr.Imm = JumpImm{Target: target}
}
