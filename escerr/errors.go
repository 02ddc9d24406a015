package escerr

import (
	"fmt"
	"strings"
)

// Phase indicates which pipeline stage raised the error.
type Phase string

const (
	PhaseParse       Phase = "parse"     // AST construction (external collaborator)
	PhaseGenerate    Phase = "generate"  // bytecode emission
	PhaseInterpret   Phase = "interpret" // bytecode dispatch
	PhaseCompile     Phase = "compile"   // JIT front-end (bytecode -> ESGraph)
	PhaseTypeInfer   Phase = "typeinfer" // type-inference pass over ESGraph
	PhaseObjectModel Phase = "object"    // hidden-class / property machinery
)

// Kind categorizes the error. The ECMAScript-visible kinds (SyntaxError,
// ReferenceError, TypeError, RangeError) map directly onto spec.md §7;
// the remaining kinds are engine-internal invariant violations that never
// reach script code.
type Kind string

const (
	// ECMAScript-visible error kinds (spec.md §7).
	KindSyntaxError    Kind = "syntax_error"
	KindReferenceError Kind = "reference_error"
	KindTypeError      Kind = "type_error"
	KindRangeError     Kind = "range_error"
	KindError          Kind = "error"

	// Engine-internal kinds. These abort the current compile or bytecode
	// emission context but never corrupt VM state (spec.md §7).
	KindInvalidOpcode    Kind = "invalid_opcode"
	KindSSAViolation     Kind = "ssa_violation"
	KindStackImbalance   Kind = "stack_imbalance"
	KindUnresolvedJump   Kind = "unresolved_jump"
	KindUnsupported      Kind = "unsupported"
	KindLatticeConflict  Kind = "lattice_conflict"
)

// Error is the structured error type used throughout the engine.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the property/scope path.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value.
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common ECMAScript error patterns.

// NotAFunction creates a TypeError for calling/new-ing a non-callable value.
func NotAFunction(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeError,
		Path:   path,
		Detail: "value is not a function",
	}
}

// NotAnObject creates a TypeError for accessing a property of a primitive
// that cannot be boxed, or for an `in` whose right operand is not an
// object.
func NotAnObject(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeError,
		Path:   path,
		Detail: detail,
	}
}

// PropertyNotWritable creates a TypeError for writing a read-only property
// shadowed along the prototype chain.
func PropertyNotWritable(path []string, key string) *Error {
	return &Error{
		Phase:  PhaseInterpret,
		Kind:   KindTypeError,
		Path:   path,
		Detail: fmt.Sprintf("cannot assign to read only property %q", key),
	}
}

// UnresolvedBinding creates a ReferenceError for a name that cannot be
// resolved anywhere in the environment chain.
func UnresolvedBinding(name string) *Error {
	return &Error{
		Phase:  PhaseInterpret,
		Kind:   KindReferenceError,
		Detail: fmt.Sprintf("%s is not defined", name),
	}
}

// BadInstanceofRHS creates a TypeError for `x instanceof y` where y is
// not callable or y's prototype is not an object.
func BadInstanceofRHS() *Error {
	return &Error{
		Phase:  PhaseInterpret,
		Kind:   KindTypeError,
		Detail: "Right-hand side of 'instanceof' is not callable",
	}
}

// StackOverflow creates a RangeError for exceeding the configured
// interpreter call-stack depth.
func StackOverflow(depth int) *Error {
	return &Error{
		Phase:  PhaseInterpret,
		Kind:   KindRangeError,
		Detail: fmt.Sprintf("Maximum call stack size exceeded (depth %d)", depth),
		Value:  depth,
	}
}

// InvalidArrayLength creates a RangeError for `new Array(n)` with a
// non-array-index length.
func InvalidArrayLength(length float64) *Error {
	return &Error{
		Phase:  PhaseInterpret,
		Kind:   KindRangeError,
		Detail: fmt.Sprintf("Invalid array length %v", length),
		Value:  length,
	}
}

// UnresolvedJump creates an internal error for a jump patch list entry
// that still holds the SIZE_MAX sentinel when the emitting context closes
// (spec.md §8 property 2).
func UnresolvedJump(phase Phase, byteOffset int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnresolvedJump,
		Detail: fmt.Sprintf("jump at byte offset %d was never patched", byteOffset),
		Value:  byteOffset,
	}
}

// StackImbalance creates an internal error for a GenerateContext closed
// with break, continue or labeled jumps still pending.
func StackImbalance(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindStackImbalance,
		Detail: detail,
	}
}

// Unsupported creates an unsupported-opcode error. In the JIT front-end
// and type-inference pass this is not fatal: it signals a bail-out to the
// interpreter rather than an engine crash (spec.md §4.4, §9).
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// LatticeConflict creates an internal error for a LoadPhi whose two
// source operand types disagree, forcing the type-inference pass to
// abandon the current compile (spec.md §4.4).
func LatticeConflict(src0, src1 string) *Error {
	return &Error{
		Phase:  PhaseTypeInfer,
		Kind:   KindLatticeConflict,
		Detail: fmt.Sprintf("phi operand types disagree: %s vs %s", src0, src1),
	}
}

// InvalidOpcode creates an internal error for an opcode byte the
// interpreter's dispatch switch doesn't recognize — a structural bug in
// emitted bytecode, never reachable from well-formed script (spec.md §7).
func InvalidOpcode(op byte) *Error {
	return &Error{
		Phase:  PhaseInterpret,
		Kind:   KindInvalidOpcode,
		Detail: fmt.Sprintf("invalid opcode %d", op),
		Value:  op,
	}
}

// Thrown wraps a script-level `throw` expression's value so it can
// propagate through Go's error-return plumbing; interp.Execute and
// vm.Run return it unchanged, with the thrown value still in Value
// (spec.md §7 describes exceptions as propagating "through the
// interpreter's call stack like any other Go error").
func Thrown(v any) *Error {
	return &Error{
		Phase: PhaseInterpret,
		Kind:  KindError,
		Value: v,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
