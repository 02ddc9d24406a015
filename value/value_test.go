package value

import "testing"

func TestNumberFromFloat64PrefersInt32(t *testing.T) {
	v := NumberFromFloat64(42)
	if !v.IsInt32() || v.AsInt32() != 42 {
		t.Fatalf("expected Int32(42), got %#v", v)
	}

	v = NumberFromFloat64(3.5)
	if !v.IsDouble() || v.AsDouble() != 3.5 {
		t.Fatalf("expected Double(3.5), got %#v", v)
	}
}

func TestNumberFromFloat64PreservesNegativeZero(t *testing.T) {
	negZero := NumberFromFloat64(negZeroFor(t))
	if !negZero.IsDouble() {
		t.Fatalf("expected -0 to stay Double to preserve sign, got %#v", negZero)
	}
}

func negZeroFor(t *testing.T) float64 {
	t.Helper()
	// A constant expression such as -0.0 folds to +0 in Go; negating a
	// variable at run time yields a real negative zero.
	zero := 0.0
	return -zero
}

func TestEqualStrict(t *testing.T) {
	if !Int32(1).Equal(Double(1)) {
		t.Error("Int32(1) should strict-equal Double(1)")
	}
	if Int32(1).Equal(Bool(true)) {
		t.Error("Int32(1) should not strict-equal Bool(true)")
	}
	if !Undefined.Equal(Undefined) {
		t.Error("Undefined should strict-equal Undefined")
	}
	if Undefined.Equal(Null) {
		t.Error("Undefined should not strict-equal Null")
	}
}

func TestTagPredicates(t *testing.T) {
	cases := []struct {
		v    TaggedValue
		want Tag
	}{
		{Undefined, TagUndefined},
		{Null, TagNull},
		{True, TagBoolean},
		{Int32(3), TagInt32},
		{Double(3.1), TagDouble},
	}
	for _, c := range cases {
		if c.v.Tag() != c.want {
			t.Errorf("expected tag %v, got %v", c.want, c.v.Tag())
		}
	}
	if !Null.IsNullOrUndefined() || !Undefined.IsNullOrUndefined() {
		t.Error("IsNullOrUndefined should hold for both Null and Undefined")
	}
	if Int32(1).IsNullOrUndefined() {
		t.Error("IsNullOrUndefined should not hold for Int32")
	}
}
