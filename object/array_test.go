package object

import (
	"testing"

	"github.com/escargot-js/escargot/value"
)

func TestArrayFastModeIdempotence(t *testing.T) {
	a := NewArrayObject(RootShape(), nil, 3)
	a.SetIndex(1, value.Int32(20))

	got, ok := a.GetIndex(1)
	if !ok {
		t.Fatal("expected fast-mode hit")
	}
	if !got.Equal(value.Int32(20)) {
		t.Fatalf("expected 20, got %v", got)
	}
}

func TestArrayLiteralFromValues(t *testing.T) {
	a := NewArrayObjectFromValues(RootShape(), nil, []value.TaggedValue{
		value.Int32(10), value.Int32(20), value.Int32(30),
	})
	if a.Length() != 3 {
		t.Fatalf("expected length 3, got %d", a.Length())
	}
	got, ok := a.GetIndex(1)
	if !ok || !got.Equal(value.Int32(20)) {
		t.Fatalf("expected a[1] == 20, got %v ok=%v", got, ok)
	}
}

func TestArrayGrowAppendsInFastMode(t *testing.T) {
	a := NewArrayObject(RootShape(), nil, 2)
	a.SetIndex(2, value.Int32(99))
	if !a.IsFastMode() {
		t.Fatal("appending exactly at length should stay in fast mode")
	}
	if a.Length() != 3 {
		t.Fatalf("expected length 3 after append, got %d", a.Length())
	}
}

func TestArrayOutOfRangeWriteLeavesFastMode(t *testing.T) {
	a := NewArrayObject(RootShape(), nil, 2)
	a.SetIndex(10, value.Int32(1))
	if a.IsFastMode() {
		t.Fatal("writing far past length should permanently leave fast mode")
	}
}

func TestArrayGetOutOfRangeMisses(t *testing.T) {
	a := NewArrayObject(RootShape(), nil, 3)
	if _, ok := a.GetIndex(5); ok {
		t.Fatal("expected miss for out-of-range read")
	}
}
