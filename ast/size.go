package ast

// wordsPer is a conservative per-node-kind upper bound on the number of
// Instructions GenerateStatementByteCode/GenerateExpressionByteCode will
// emit for that node alone, excluding its children. Summed recursively
// over the whole tree this gives computeRoughCodeBlockSizeInWordSize's
// contract (spec.md §6, §8 property 1): an upper bound, not an exact
// count — padded generously rather than tuned tight, since a false
// negative (undercount) would let a CodeBlock's real instruction count
// exceed a capacity reserved from this estimate.
var wordsPer = map[Kind]int{
	KindProgram:             0,
	KindBlock:               0,
	KindEmpty:               0,
	KindNumberLiteral:       1,
	KindStringLiteral:       1,
	KindBooleanLiteral:      1,
	KindNullLiteral:         1,
	KindUndefinedLiteral:    1,
	KindIdentifier:          1,
	KindBinary:              1,
	KindLogical:             4,
	KindUnary:               1,
	KindUpdate:              4,
	KindAssignment:          4,
	KindConditional:         4,
	KindSequence:            1,
	KindCall:                4,
	KindNew:                 4,
	KindMember:              1,
	KindArrayLiteral:        2,
	KindObjectLiteral:       2,
	KindProperty:            2,
	KindFunctionExpr:        1,
	KindExpressionStatement: 1,
	KindVarDecl:             0,
	KindVarDeclarator:       3,
	KindFunctionDecl:        4,
	KindIf:                  3,
	KindFor:                 6,
	KindWhile:               4,
	KindDoWhile:             3,
	KindForIn:               8,
	KindReturn:              1,
	KindBreak:               1,
	KindContinue:            1,
	KindLabeled:             0,
	KindSwitch:              4,
	KindSwitchCase:          2,
	KindThrow:               1,
}

// ComputeRoughCodeBlockSizeInWordSize adds n's (and its subtree's)
// instruction-count upper bound to *out.
func (n *Node) ComputeRoughCodeBlockSizeInWordSize(out *int) {
	*out += wordsPer[n.Kind]

	// Switch dispatch emits one extra test-and-branch sequence per
	// non-default case beyond the KindSwitch base cost.
	if n.Kind == KindSwitch {
		for _, c := range n.Children {
			if c.Test != nil {
				*out += 3
			}
		}
	}

	// Array literals emit one SetObject per element beyond the element's
	// own push.
	if n.Kind == KindArrayLiteral {
		*out += len(n.Children)
	}

	// Sequences emit one Pop per child but the last.
	if n.Kind == KindSequence {
		*out += len(n.Children)
	}

	for _, child := range n.Children {
		child.ComputeRoughCodeBlockSizeInWordSize(out)
	}
	if n.Left != nil {
		n.Left.ComputeRoughCodeBlockSizeInWordSize(out)
	}
	if n.Right != nil {
		n.Right.ComputeRoughCodeBlockSizeInWordSize(out)
	}
	if n.Test != nil {
		n.Test.ComputeRoughCodeBlockSizeInWordSize(out)
	}
	if n.Cons != nil {
		n.Cons.ComputeRoughCodeBlockSizeInWordSize(out)
	}
	if n.Alt != nil {
		n.Alt.ComputeRoughCodeBlockSizeInWordSize(out)
	}
	if n.Init != nil {
		n.Init.ComputeRoughCodeBlockSizeInWordSize(out)
	}
	if n.Update != nil {
		n.Update.ComputeRoughCodeBlockSizeInWordSize(out)
	}
}
