package object

import "github.com/escargot-js/escargot/value"

// NotFound is the slot-index sentinel recorded when a read cache walks
// the whole prototype chain and never finds the key (spec.md §4.5:
// "slot == SIZE_MAX, indicating not found along this chain").
const NotFound = -1

// ReadCache is the per-call-site memoization for `obj.key` reads
// (spec.md §4.5). A hit confirms pointer equality of every shape along
// the recorded chain, from the receiver down to whichever level owns the
// property (or, for a "not found" cache, down to the end of the chain
// that existed when the cache was built).
type ReadCache struct {
	chain []*Shape
	slot  int
}

// TryHit attempts to satisfy a property read from the cache without
// walking the prototype chain. ok is false on any shape mismatch,
// signalling the caller to fall back to RebuildReadCache.
func (c *ReadCache) TryHit(receiver value.Heap) (v value.TaggedValue, ok bool) {
	if c == nil || len(c.chain) == 0 {
		return value.Undefined, false
	}
	cur := receiver
	for i, s := range c.chain {
		o, isObj := asObject(cur)
		if !isObj || o.Shape() != s {
			return value.Undefined, false
		}
		if i == len(c.chain)-1 {
			if c.slot == NotFound {
				return value.Undefined, true
			}
			return o.GetOwn(c.slot), true
		}
		if o.proto == nil {
			return value.Undefined, false
		}
		cur = o.proto
	}
	return value.Undefined, false
}

// RebuildReadCache walks receiver's prototype chain looking for key,
// returning a fresh cache recording the traversed shapes and the slot
// index where the property was found (or NotFound), plus the value read
// (Undefined when not found).
func RebuildReadCache(receiver value.Heap, key *Interned) (*ReadCache, value.TaggedValue) {
	var chain []*Shape
	cur := receiver
	for cur != nil {
		o, ok := asObject(cur)
		if !ok {
			break
		}
		chain = append(chain, o.Shape())
		if slot, _, found := o.findOwn(key); found {
			return &ReadCache{chain: chain, slot: slot}, o.GetOwn(slot)
		}
		cur = o.proto
	}
	return &ReadCache{chain: chain, slot: NotFound}, value.Undefined
}

// WriteCache is the per-call-site memoization for `obj.key = v` writes
// (spec.md §4.5): either an in-place write (the property already existed
// on sourceShape, at slot) or a transition (adding the property moves the
// object from sourceShape to willBeShape, appending one slot).
type WriteCache struct {
	sourceShape *Shape
	slot        int // valid when the property already existed on sourceShape
	willBeShape *Shape
}

// TryHit attempts to satisfy a property write from the cache. ok is false
// when the receiver's current shape doesn't match sourceShape, signalling
// the caller to fall back to RebuildWriteCache.
func (c *WriteCache) TryHit(o *Object, v value.TaggedValue) (ok bool) {
	if c == nil || o.shape != c.sourceShape {
		return false
	}
	if c.slot != NotFound {
		o.slots[c.slot] = v
		return true
	}
	if c.willBeShape != nil {
		o.slots = append(o.slots, v)
		o.shape = c.willBeShape
		return true
	}
	return false
}

// RebuildWriteCache performs the full write algorithm (spec.md §4.2,
// §4.5): write in place if the key exists on the own shape; else walk the
// prototype chain for a non-writable shadow (reporting it via
// shadowedReadOnly so the caller raises TypeError); else define the
// property, recording the resulting transition as the new cache.
func RebuildWriteCache(table *StringTable, o *Object, key *Interned, v value.TaggedValue) (cache *WriteCache, shadowedReadOnly bool) {
	if slot, flags, ok := o.findOwn(key); ok {
		if flags&FlagWritable == 0 {
			return nil, true
		}
		o.slots[slot] = v
		return &WriteCache{sourceShape: o.shape, slot: slot}, false
	}

	cur := o.proto
	for cur != nil {
		po, ok := asObject(cur)
		if !ok {
			break
		}
		if _, flags, found := po.findOwn(key); found {
			if flags&FlagWritable == 0 {
				return nil, true
			}
			break
		}
		cur = po.proto
	}

	before := o.shape
	o.DefineOwn(table, key, v, DefaultDataFlags)
	return &WriteCache{sourceShape: before, slot: NotFound, willBeShape: o.shape}, false
}
