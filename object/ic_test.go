package object

import (
	"testing"

	"github.com/escargot-js/escargot/value"
)

func TestReadCacheHitAndMiss(t *testing.T) {
	table := NewDefaultStringTable()
	b := table.Intern("b")

	o := NewObject(RootShape(), nil)
	o.DefineOwn(table, b, value.Int32(2), DefaultDataFlags)

	cache, v := RebuildReadCache(o, b)
	if !v.Equal(value.Int32(2)) {
		t.Fatalf("expected 2 from rebuild, got %v", v)
	}

	hitVal, ok := cache.TryHit(o)
	if !ok || !hitVal.Equal(value.Int32(2)) {
		t.Fatalf("expected cache hit with 2, got %v ok=%v", hitVal, ok)
	}

	// A different object with a different shape should miss.
	other := NewObject(RootShape(), nil)
	if _, ok := cache.TryHit(other); ok {
		t.Fatal("expected cache miss for object with different shape")
	}
}

func TestReadCacheNotFoundCaching(t *testing.T) {
	table := NewDefaultStringTable()
	key := table.Intern("missing")
	o := NewObject(RootShape(), nil)

	cache, v := RebuildReadCache(o, key)
	if !v.IsUndefined() {
		t.Fatalf("expected undefined, got %v", v)
	}
	hitVal, ok := cache.TryHit(o)
	if !ok || !hitVal.IsUndefined() {
		t.Fatalf("expected cached-miss hit returning undefined, got %v ok=%v", hitVal, ok)
	}
}

func TestWriteCacheTransitionThenHit(t *testing.T) {
	table := NewDefaultStringTable()
	key := table.Intern("x")

	o := NewObject(RootShape(), nil)
	cache, shadowed := RebuildWriteCache(table, o, key, value.Int32(1))
	if shadowed {
		t.Fatal("unexpected shadow")
	}

	o2 := NewObject(RootShape(), nil)
	if !cache.TryHit(o2, value.Int32(5)) {
		t.Fatal("expected transition-cache hit for an object starting from the same source shape")
	}
	if got := Get(o2, key); !got.Equal(value.Int32(5)) {
		t.Fatalf("expected 5, got %v", got)
	}
}

func TestWriteCacheShadowedReadOnly(t *testing.T) {
	table := NewDefaultStringTable()
	key := table.Intern("ro")

	proto := NewObject(RootShape(), nil)
	proto.DefineOwn(table, key, value.Int32(1), FlagEnumerable|FlagConfigurable)

	child := NewObject(RootShape(), proto)
	_, shadowed := RebuildWriteCache(table, child, key, value.Int32(2))
	if !shadowed {
		t.Fatal("expected shadowed read-only property to be reported")
	}
}
