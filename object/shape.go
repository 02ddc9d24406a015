package object

// PropertyFlags records the writable/enumerable/configurable property
// descriptor attributes (ECMA-262 §6.1.7.1).
type PropertyFlags uint8

const (
	FlagWritable PropertyFlags = 1 << iota
	FlagEnumerable
	FlagConfigurable
)

// DefaultDataFlags is the attribute set ordinary `obj.key = v` property
// creation uses.
const DefaultDataFlags = FlagWritable | FlagEnumerable | FlagConfigurable

type propEntry struct {
	key   *Interned
	slot  int
	flags PropertyFlags
}

type transitionKey struct {
	key   *Interned
	flags PropertyFlags
}

// Shape (HiddenClass) is a node in the shape-transition tree: a mapping
// from property key to slot index plus per-property flags, and a map of
// transitions keyed by (key, flags) to child shapes. A transition edge
// produces an identical shape regardless of which object traverses it —
// two objects sharing a sequence of additions converge on the same Shape
// pointer (spec.md §3, §8 property 5).
type Shape struct {
	parent      *Shape
	props       map[*Interned]propEntry
	order       []*Interned // property addition order, for for-in enumeration
	transitions map[transitionKey]*Shape
	addedKey    *Interned
}

// rootShape is the single empty shape shared by every RootShape caller,
// so objects built by the same additions reach the same Shape.
var rootShape = &Shape{
	props:       make(map[*Interned]propEntry),
	transitions: make(map[transitionKey]*Shape),
}

// RootShape returns the shared empty shape with no properties, the shape
// every newly allocated plain object starts from.
func RootShape() *Shape {
	return rootShape
}

// PropertyCount is the number of properties described by this shape,
// equivalently the required length of an object's slot vector
// (spec.md §3, HeapObject invariant).
func (s *Shape) PropertyCount() int { return len(s.props) }

// Lookup finds a property by key, returning its slot index and flags.
func (s *Shape) Lookup(key *Interned) (slot int, flags PropertyFlags, ok bool) {
	e, ok := s.props[key]
	return e.slot, e.flags, ok
}

// Transition returns the child shape reached by adding key with flags,
// creating it on first use. Repeated calls with the same (key, flags)
// from the same parent shape return the identical child pointer.
func (s *Shape) Transition(key *Interned, flags PropertyFlags) *Shape {
	tk := transitionKey{key, flags}
	if child, ok := s.transitions[tk]; ok {
		return child
	}

	props := make(map[*Interned]propEntry, len(s.props)+1)
	for k, v := range s.props {
		props[k] = v
	}
	order := make([]*Interned, len(s.order), len(s.order)+1)
	copy(order, s.order)

	slot := len(s.props)
	props[key] = propEntry{key: key, slot: slot, flags: flags}
	order = append(order, key)

	child := &Shape{
		parent:      s,
		props:       props,
		order:       order,
		transitions: make(map[transitionKey]*Shape),
		addedKey:    key,
	}
	s.transitions[tk] = child
	return child
}

// EnumerableKeys returns own enumerable property keys in insertion order,
// the snapshot a for-in enumeration object is built from (spec.md §4.1).
func (s *Shape) EnumerableKeys() []*Interned {
	keys := make([]*Interned, 0, len(s.order))
	for _, k := range s.order {
		if e := s.props[k]; e.flags&FlagEnumerable != 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// Is reports whether s and other are the exact same shape node, the
// pointer-equality test inline caches rely on (spec.md §4.5).
func (s *Shape) Is(other *Shape) bool { return s == other }
