// Package escerr provides structured error types for the engine's
// compile/interpret/JIT pipeline.
//
// Errors are categorized by Phase (where in the pipeline the error
// occurred) and Kind (error category, including the ECMAScript-visible
// error kinds). The Error type carries rich context: a property/scope
// path, the offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := escerr.New(escerr.PhaseInterpret, escerr.KindTypeError).
//		Path("foo", "bar").
//		Detail("cannot read property of undefined").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := escerr.NotAFunction(escerr.PhaseInterpret, []string{"callee"})
//	err := escerr.StackOverflow(depth)
//
// All errors implement the standard error interface and support
// errors.Is/As.
package escerr
