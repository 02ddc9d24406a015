package ast

import (
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/escerr"
)

// Address is the resolved location an assignment target names: either a
// binding (read/written by name) or a property (read/written off an
// already-evaluated object, and, if computed, an already-evaluated key).
// Resolving once and reusing the Address for both the read and the write
// half of a compound assignment (`obj.x += 1`) avoids evaluating `obj`
// twice, the reason spec.md §6 splits assignment-target emission into
// three separate hooks instead of one.
type Address struct {
	isMember bool
	name     string // binding name, or non-computed property key
	computed bool
	objSSA   int
	keySSA   int // meaningful only when computed
	icSlot   int // shared between the read and write precomputed-case sites
}

// GenerateResolveAddressByteCode evaluates whatever sub-expressions an
// assignment target needs before it can be read or written — for a bare
// identifier, nothing; for a member expression, the object (and, if
// computed, the key) — and returns an Address describing the result.
func (n *Node) GenerateResolveAddressByteCode(gc *GenContext) (Address, error) {
	switch n.Kind {
	case KindIdentifier:
		return Address{name: n.Name}, nil

	case KindMember:
		obj, err := n.Left.GenerateExpressionByteCode(gc)
		if err != nil {
			return Address{}, err
		}
		addr := Address{isMember: true, objSSA: obj, computed: n.Computed, icSlot: -1}
		if n.Computed {
			key, err := n.Test.GenerateExpressionByteCode(gc)
			if err != nil {
				return Address{}, err
			}
			addr.keySSA = key
		} else {
			addr.name = n.Name
			addr.icSlot = gc.Gen.CB.AddICSlot()
		}
		return addr, nil

	default:
		return Address{}, escerr.Unsupported(escerr.PhaseGenerate, "node is not a valid assignment target")
	}
}

// GenerateReferenceResolvedAddressByteCode reads the current value at
// addr without re-evaluating any of the sub-expressions GenerateResolveAddressByteCode
// already emitted, returning the SSA index of the loaded value.
func (n *Node) GenerateReferenceResolvedAddressByteCode(gc *GenContext, addr Address) (int, error) {
	target := gc.FreshSSA()
	if !addr.isMember {
		gc.Gen.CB.Emit(bytecode.Instruction{
			Opcode: bytecode.OpGetById,
			Imm:    bytecode.NameImm{Name: gc.Strings.Intern(addr.name)},
		}, target, -1, -1)
		return target, nil
	}
	if addr.computed {
		gc.Gen.CB.Emit(bytecode.Instruction{Opcode: bytecode.OpGetObjectWithPeeking}, target, addr.objSSA, addr.keySSA)
		return target, nil
	}
	gc.Gen.CB.Emit(bytecode.Instruction{
		Opcode: bytecode.OpGetObjectPreComputedCase,
		Imm:    bytecode.PreComputedImm{Key: gc.Strings.Intern(addr.name), ICSlot: addr.icSlot},
	}, target, addr.objSSA, -1)
	return target, nil
}

// GeneratePutByteCode stores valueSSA at addr, again without
// re-evaluating addr's sub-expressions.
func (n *Node) GeneratePutByteCode(gc *GenContext, addr Address, valueSSA int) error {
	if !addr.isMember {
		gc.Gen.CB.Emit(bytecode.Instruction{
			Opcode: bytecode.OpPutById,
			Imm:    bytecode.NameImm{Name: gc.Strings.Intern(addr.name)},
		}, -1, valueSSA, -1)
		return nil
	}
	if addr.computed {
		gc.Gen.CB.Emit(bytecode.Instruction{
			Opcode: bytecode.OpPutInObject,
			Imm:    bytecode.PutComputedImm{KeySSA: addr.keySSA},
		}, -1, addr.objSSA, valueSSA)
		return nil
	}
	gc.Gen.CB.Emit(bytecode.Instruction{
		Opcode: bytecode.OpPutInObjectPreComputedCase,
		Imm:    bytecode.PreComputedImm{Key: gc.Strings.Intern(addr.name), ICSlot: addr.icSlot},
	}, -1, addr.objSSA, valueSSA)
	return nil
}

// generatePutByteCode is the simple, single-shot path used when the
// target's sub-expressions have not already been resolved (a plain `=`
// assignment with no preceding read) — it resolves and stores in one step.
func (n *Node) generatePutByteCode(gc *GenContext, valueSSA int) error {
	addr, err := n.GenerateResolveAddressByteCode(gc)
	if err != nil {
		return err
	}
	return n.GeneratePutByteCode(gc, addr, valueSSA)
}
