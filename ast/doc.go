// Package ast defines the AST node this engine's bytecode generator
// consumes. Producing this tree (lexing and parsing source text) is an
// external collaborator's job (spec.md §1 lists the parser as out of
// scope); this package owns the node shape and the three emitter
// interfaces spec.md §6 says an AST node must expose:
//
//   - ComputeRoughCodeBlockSizeInWordSize, an upper-bound size pre-pass
//   - GenerateStatementByteCode / GenerateExpressionByteCode
//   - for assignment targets, GenerateResolveAddressByteCode,
//     GenerateReferenceResolvedAddressByteCode, and GeneratePutByteCode
//
// Per spec.md §9's design note against a deep AST class hierarchy, Node
// is one flat tagged-variant struct (one Kind per node shape) rather than
// a family of per-construct types; emission dispatches on Kind through a
// single exhaustive switch instead of virtual methods per subclass.
package ast
