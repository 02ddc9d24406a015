// Package interp is Escargot's bytecode interpreter: the dispatch loop
// that executes a bytecode.CodeBlock directly, the environment chain
// variable bindings resolve through, and the fast paths (Int32
// arithmetic, ArrayObject fast-mode indexing, string ASCII-table
// indexing, inline-cache hits) that keep the common case from touching
// the generic object machinery (spec.md §4.2).
package interp
