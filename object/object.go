package object

import "github.com/escargot-js/escargot/value"

// Class names HeapObject.ClassName() returns, used by typeof/instanceof/
// new dispatch (spec.md §4.2).
const (
	ClassObject   = "Object"
	ClassArray    = "Array"
	ClassFunction = "Function"
	ClassString   = "String"
	ClassError    = "Error"
)

// Object flags (HeapObject attribute bit set, spec.md §3).
type Flags uint8

const (
	FlagExtensible Flags = 1 << iota
	FlagHasAccessor
)

// Object is the generic HeapObject: a Shape pointer plus a slot vector of
// length equal to shape.PropertyCount(), a prototype pointer, and a small
// attribute bit set. ArrayObject and FunctionObject embed Object and add
// their own fast paths / callable hook.
type Object struct {
	shape *Shape
	slots []value.TaggedValue
	proto value.Heap
	flags Flags
	class string
}

// NewObject allocates a plain object with the given shape (typically
// RootShape()) and prototype.
func NewObject(shape *Shape, proto value.Heap) *Object {
	return &Object{
		shape: shape,
		slots: make([]value.TaggedValue, shape.PropertyCount()),
		proto: proto,
		flags: FlagExtensible,
		class: ClassObject,
	}
}

// ClassName implements value.Heap.
func (o *Object) ClassName() string { return o.class }

// IsCallable implements value.Heap.
func (o *Object) IsCallable() bool { return false }

// SetClassName overrides the class used for typeof/instanceof dispatch
// (used by String/Error wrapper construction).
func (o *Object) SetClassName(c string) { o.class = c }

// Shape returns the object's current hidden class.
func (o *Object) Shape() *Shape { return o.shape }

// Proto returns the object's __proto__, or nil if it has none.
func (o *Object) Proto() value.Heap { return o.proto }

// SetProto sets __proto__ directly (bypassing property semantics),
// matching how constructors wire up a freshly allocated receiver
// (spec.md §4.2 `new`).
func (o *Object) SetProto(p value.Heap) { o.proto = p }

func (o *Object) Extensible() bool { return o.flags&FlagExtensible != 0 }

// GetOwn reads slot[slot index] directly when the caller already knows
// the shape matches (the inline-cache hit path, spec.md §4.5).
func (o *Object) GetOwn(slot int) value.TaggedValue {
	return o.slots[slot]
}

// SetOwn writes slot[slot index] directly in place, the transition-cache
// hit path for a property that already exists on the current shape
// (spec.md §4.5).
func (o *Object) SetOwn(slot int, v value.TaggedValue) {
	o.slots[slot] = v
}

// findOwn looks up key on this object's own shape only.
func (o *Object) findOwn(key *Interned) (slot int, flags PropertyFlags, ok bool) {
	return o.shape.Lookup(key)
}

// FindProperty walks __proto__ looking for key, returning the object it
// was found on, the slot index, and flags. This is the inline cache's
// miss-path chain rebuild (spec.md §4.5).
func FindProperty(receiver value.Heap, key *Interned) (owner *Object, slot int, flags PropertyFlags, found bool) {
	cur := receiver
	for cur != nil {
		if o, ok := asObject(cur); ok {
			if s, f, ok := o.findOwn(key); ok {
				return o, s, f, true
			}
			cur = o.proto
			continue
		}
		break
	}
	return nil, 0, 0, false
}

// asObject extracts the embedded *Object from any heap kind that embeds
// one (Object, ArrayObject, FunctionObject, StringObject), so property
// lookup works uniformly across all of them.
func asObject(h value.Heap) (*Object, bool) {
	switch t := h.(type) {
	case *Object:
		return t, true
	case *ArrayObject:
		return t.Object, true
	case *FunctionObject:
		return t.Object, true
	case *StringObject:
		if t.Object == nil {
			return nil, false
		}
		return t.Object, true
	default:
		return nil, false
	}
}

// EnumerableKeysOf returns every enumerable string key reachable from
// receiver's own shape and its prototype chain, own keys first, each key
// listed once even if shadowed further up the chain — the snapshot a
// for-in loop enumerates over (spec.md §4.2: "own and inherited, each key
// visited once even if the object's shape changes mid-iteration").
func EnumerableKeysOf(receiver value.Heap) []*Interned {
	seen := make(map[*Interned]bool)
	var keys []*Interned
	cur := receiver
	for cur != nil {
		o, ok := asObject(cur)
		if !ok {
			break
		}
		for _, k := range o.shape.EnumerableKeys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
		cur = o.proto
	}
	return keys
}

// Get implements the generic (non-inline-cached) property read used on
// an inline-cache miss and by the interpreter's slow path: walk the
// prototype chain via FindProperty and read the owning object's slot.
func Get(receiver value.Heap, key *Interned) value.TaggedValue {
	owner, slot, _, found := FindProperty(receiver, key)
	if !found {
		return value.Undefined
	}
	return owner.GetOwn(slot)
}

// DefineOwn adds or overwrites an own property by key, transitioning the
// shape when the key is new; o.shape then holds the new shape
// (spec.md §4.5).
func (o *Object) DefineOwn(table *StringTable, key *Interned, v value.TaggedValue, flags PropertyFlags) {
	if slot, _, ok := o.findOwn(key); ok {
		o.slots[slot] = v
		return
	}
	next := o.shape.Transition(key, flags)
	o.slots = append(o.slots, v)
	o.shape = next
}

// Set implements the generic (non-inline-cached) property write: if the
// key already exists anywhere on the prototype chain and is non-writable,
// write nothing and return true (the interpreter turns that into a
// TypeError); if it exists as a
// writable own property, write in place; otherwise walk the chain for a
// read-only shadow before defining a new own property (spec.md §4.2, §4.5).
func Set(table *StringTable, receiver value.Heap, key *Interned, v value.TaggedValue) (shadowedReadOnly bool) {
	o, ok := asObject(receiver)
	if !ok {
		return false
	}
	if slot, flags, ok := o.findOwn(key); ok {
		if flags&FlagWritable == 0 {
			return true
		}
		o.slots[slot] = v
		return false
	}
	// Walk the prototype chain checking for a non-writable shadow.
	cur := o.proto
	for cur != nil {
		po, ok := asObject(cur)
		if !ok {
			break
		}
		if _, flags, ok := po.findOwn(key); ok {
			if flags&FlagWritable == 0 {
				return true
			}
			break
		}
		cur = po.proto
	}
	o.DefineOwn(table, key, v, DefaultDataFlags)
	return false
}
