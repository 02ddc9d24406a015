package object

import (
	"testing"

	"github.com/escargot-js/escargot/value"
)

func TestObjectDefineAndGet(t *testing.T) {
	table := NewDefaultStringTable()
	o := NewObject(RootShape(), nil)

	a := table.Intern("a")
	o.DefineOwn(table, a, value.Int32(1), DefaultDataFlags)

	if got := Get(o, a); !got.Equal(value.Int32(1)) {
		t.Fatalf("expected 1, got %v", got)
	}
}

func TestObjectPrototypeChainGet(t *testing.T) {
	table := NewDefaultStringTable()
	key := table.Intern("inherited")

	proto := NewObject(RootShape(), nil)
	proto.DefineOwn(table, key, value.Int32(42), DefaultDataFlags)

	child := NewObject(RootShape(), proto)

	if got := Get(child, key); !got.Equal(value.Int32(42)) {
		t.Fatalf("expected to inherit 42 via __proto__, got %v", got)
	}
}

func TestObjectGetMissingReturnsUndefined(t *testing.T) {
	table := NewDefaultStringTable()
	o := NewObject(RootShape(), nil)
	if got := Get(o, table.Intern("nope")); !got.IsUndefined() {
		t.Fatalf("expected undefined, got %v", got)
	}
}

func TestObjectSetNonWritableShadowed(t *testing.T) {
	table := NewDefaultStringTable()
	key := table.Intern("ro")

	proto := NewObject(RootShape(), nil)
	proto.DefineOwn(table, key, value.Int32(1), FlagEnumerable|FlagConfigurable) // not writable

	child := NewObject(RootShape(), proto)

	if shadowed := Set(table, child, key, value.Int32(2)); !shadowed {
		t.Fatal("expected Set to report a shadowed read-only property")
	}
}

func TestObjectSetDefinesOwnProperty(t *testing.T) {
	table := NewDefaultStringTable()
	key := table.Intern("x")
	o := NewObject(RootShape(), nil)

	if shadowed := Set(table, o, key, value.Int32(9)); shadowed {
		t.Fatal("unexpected shadow on empty object")
	}
	if got := Get(o, key); !got.Equal(value.Int32(9)) {
		t.Fatalf("expected 9, got %v", got)
	}
}
