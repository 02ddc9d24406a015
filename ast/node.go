package ast

// Kind discriminates the node shapes Node can hold; spec.md §9 calls for
// one tag per node shape rather than one Go type per shape.
type Kind int

const (
	KindProgram Kind = iota
	KindBlock

	// Literals.
	KindNumberLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindUndefinedLiteral
	KindArrayLiteral
	KindObjectLiteral
	KindProperty

	KindIdentifier

	// Expressions.
	KindBinary
	KindLogical
	KindUnary
	KindUpdate
	KindAssignment
	KindConditional
	KindSequence
	KindCall
	KindNew
	KindMember
	KindFunctionExpr

	// Statements.
	KindExpressionStatement
	KindVarDecl
	KindVarDeclarator
	KindFunctionDecl
	KindIf
	KindFor
	KindWhile
	KindDoWhile
	KindForIn
	KindReturn
	KindBreak
	KindContinue
	KindLabeled
	KindSwitch
	KindSwitchCase
	KindThrow
	KindEmpty
)

// Node is a single AST node. Exactly the fields relevant to Kind are
// meaningful; the rest are zero. This flattening trades a little memory
// for avoiding a deep per-construct class hierarchy (spec.md §9).
type Node struct {
	Kind Kind

	Op        string // binary/logical/unary/update/assignment operator spelling
	Name      string // identifier name, non-computed member/property name, function name
	Label     string // break/continue/labeled-statement label
	NumValue  float64
	StrValue  string
	BoolValue bool
	Computed  bool // member/property key is a bracketed expression, not an identifier
	Prefix    bool // unary/update operator precedes its operand

	Params []string // function parameter names, in declaration order

	Children []*Node // block statements, call/new arguments, array/object elements, switch cases

	Left   *Node
	Right  *Node
	Test   *Node
	Cons   *Node
	Alt    *Node
	Init   *Node
	Update *Node
}
