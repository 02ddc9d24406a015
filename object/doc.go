// Package object implements Escargot's object model: shape-sharing heap
// objects, the hidden-class (shape) transition tree that makes inline
// caching sound, fast-mode arrays, interned strings, and the two inline
// cache shapes the interpreter consults on property access (spec.md
// §3, §4.5).
//
// An Object holds a flat slot vector plus a pointer to a Shape describing
// the property-name -> slot-index mapping. Two objects that are built by
// executing the same sequence of property additions converge on the same
// Shape pointer, which is what lets a GetObjectPreComputedCase inline
// cache confirm a hit with a single pointer comparison instead of a hash
// lookup (spec.md §8 property 5).
package object
