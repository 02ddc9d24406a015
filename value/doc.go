// Package value implements TaggedValue, the dynamically typed value that
// flows through the interpreter's operand stack, the environment chain's
// slots, and object property storage.
//
// A TaggedValue carries exactly one of six variants: Undefined, Null,
// Boolean, Int32, Double, or Pointer (a reference into the heap). Int32
// and Double are kept disjoint so that arithmetic fast paths can dispatch on the tag alone
// rather than widening every integer to a double (spec.md §3).
//
// Conversion helpers (ToBoolean, ToNumber, ToInt32, ToUint32,
// ToStringValue, ToPrimitive) implement the ECMAScript abstract
// operations of the same name. The interpreter's slow paths defer to
// them.
package value
