package object

import "github.com/escargot-js/escargot/value"

// asciiTableSize bounds the single-character string cache the
// interpreter's indexed-string-read fast path consults (spec.md §4.2:
// "ASCII-table lookup for code points below the table size").
const asciiTableSize = 128

var asciiSingleChars [asciiTableSize]*StringObject

func init() {
	for i := 0; i < asciiTableSize; i++ {
		asciiSingleChars[i] = &StringObject{s: string(rune(i))}
	}
}

// StringObject is Escargot's primitive string representation: a heap
// value carrying Go string data, implementing value.StringHeap so
// ToNumber/ToString/ToBoolean treat it as primitive. Property access on a
// string (`"hello"[1]`, `"hello".length`) goes through the ordinary
// Object machinery via an (optional) backing Object for named
// properties; indexed numeric access is handled directly by the
// interpreter's fast path using ByteAt, never allocating unless
// the index misses the ASCII cache (spec.md §4.2).
type StringObject struct {
	*Object
	s string
}

// NewStringPrimitive returns the canonical StringObject for s, reusing
// the ASCII single-character cache when s is exactly one ASCII code
// point.
func NewStringPrimitive(s string) *StringObject {
	if len(s) == 1 && s[0] < asciiTableSize {
		return asciiSingleChars[s[0]]
	}
	return &StringObject{s: s}
}

// NewStringObject allocates a boxed String object (the result of `new
// String(...)`), which additionally carries the ordinary Object property
// machinery so `Object.keys`-style own-property enumeration can see
// user-added properties.
func NewStringObject(shape *Shape, proto value.Heap, s string) *StringObject {
	o := &StringObject{Object: NewObject(shape, proto), s: s}
	o.SetClassName(ClassString)
	return o
}

// StringValue implements value.StringHeap.
func (s *StringObject) StringValue() string { return s.s }

// ClassName implements value.Heap. A bare primitive StringObject (no
// backing Object) still reports "String" for typeof/instanceof purposes.
func (s *StringObject) ClassName() string {
	if s.Object != nil {
		return s.Object.ClassName()
	}
	return ClassString
}

// IsCallable implements value.Heap.
func (s *StringObject) IsCallable() bool { return false }

// Len returns the string's length in bytes, matching this engine's
// single-byte-per-code-unit simplification of the ASCII fast path
// (spec.md §4.2); non-ASCII code points still round-trip through Go
// string indexing correctly for UTF-8 byte length purposes.
func (s *StringObject) Len() int { return len(s.s) }

// ByteAt returns the single-byte (ASCII) string at index i, reusing the
// shared ASCII cache, and true, or (nil, false) when i is out of range.
// This is the fast path for `"hello"[1]`; callers fall back to the
// generic get on a miss (spec.md §8: `"hello"[1]` -> String("e")).
func (s *StringObject) ByteAt(i int) (*StringObject, bool) {
	if i < 0 || i >= len(s.s) {
		return nil, false
	}
	b := s.s[i]
	if b < asciiTableSize {
		return asciiSingleChars[b], true
	}
	return &StringObject{s: string(b)}, true
}
