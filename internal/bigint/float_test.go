package bigint

import (
	"math"
	"testing"
)

func TestFromDoubleResultSize(t *testing.T) {
	tests := []struct {
		src  float64
		want int
	}{
		{0.0, 0},
		{0.5, 0},
		{-0.99, 0},
		{1.0, 1},
		{-1.0, 1},
		{255.9, 1},
		{math.MaxInt64, 2},
		{1e18, 1},
		{1e19, 2},
		{math.Ldexp(1, 62), 1},
		{math.Ldexp(1, 63), 2},
		{math.Ldexp(1, 127), 3},
	}
	for _, tt := range tests {
		if got := FromDoubleResultSize(tt.src); got != tt.want {
			t.Errorf("FromDoubleResultSize(%g) = %d, want %d", tt.src, got, tt.want)
		}
	}
}

func TestFromDouble(t *testing.T) {
	tests := []struct {
		name string
		src  float64
		want BigInt
	}{
		{"zero", 0.0, Zero()},
		{"negative zero", math.Copysign(0, -1), Zero()},
		{"below one truncates", 0.75, Zero()},
		{"above minus one truncates", -0.75, Zero()},
		{"exact small", 42.0, fromI64(42)},
		{"truncate toward zero", 3.99, fromI64(3)},
		{"truncate negative toward zero", -3.99, fromI64(-3)},
		{"power of two boundary", math.Ldexp(1, 63), wide(1<<63, 0)},
		{"negative power of two", -math.Ldexp(1, 63), fromI64(-1 << 63)},
		{"large", 1e20, wide(7766279631452241920, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Mutable(make([]uint64, FromDoubleResultSize(tt.src)))
			if err := FromDouble(&m, tt.src); err != nil {
				t.Fatalf("FromDouble(%g): %v", tt.src, err)
			}
			if Compare(m.Ref(), tt.want) != 0 {
				t.Errorf("FromDouble(%g) digits = %x, want %x", tt.src, m.Ref().Digits, tt.want.Digits)
			}
		})
	}
}

func TestFromDoubleDestTooSmall(t *testing.T) {
	m := Mutable(make([]uint64, 1))
	if err := FromDouble(&m, math.Ldexp(1, 100)); err == nil {
		t.Fatal("expected error for undersized destination")
	}
	if m.Len != 0 {
		t.Errorf("Len = %d after failure, want 0", m.Len)
	}
}

func TestToDouble(t *testing.T) {
	tests := []struct {
		name string
		src  BigInt
		want float64
	}{
		{"zero", Zero(), 0.0},
		{"one", fromI64(1), 1.0},
		{"minus one", fromI64(-1), -1.0},
		{"exact 53 bits", fromI64(1 << 53), math.Ldexp(1, 53)},
		{"max int64", fromI64(1<<63 - 1), math.Ldexp(1, 63)},
		{"min int64", fromI64(-1 << 63), -math.Ldexp(1, 63)},
		{"two digits", wide(0, 1), math.Ldexp(1, 64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToDouble(tt.src); got != tt.want {
				t.Errorf("ToDouble = %g, want %g", got, tt.want)
			}
		})
	}
}

// Round-to-nearest-even at the 53-bit boundary: 2^53+1 is exactly halfway
// between 2^53 and 2^53+2 and must round to the even mantissa.
func TestToDoubleRoundsToEven(t *testing.T) {
	if got := ToDouble(fromI64(1<<53 + 1)); got != math.Ldexp(1, 53) {
		t.Errorf("2^53+1 -> %g, want 2^53", got)
	}
	if got := ToDouble(fromI64(1<<53 + 3)); got != math.Ldexp(1, 53)+4 {
		t.Errorf("2^53+3 -> %g, want 2^53+4", got)
	}
	if got := ToDouble(fromI64(1<<53 + 2)); got != math.Ldexp(1, 53)+2 {
		t.Errorf("2^53+2 -> %g, want exact 2^53+2", got)
	}
}

func TestToDoubleOverflowsToInf(t *testing.T) {
	// 2^1100 is far past the double range.
	digits := make([]uint64, 18)
	digits[17] = 1 << (1100 - 17*64)
	x := wide(digits...)
	if got := ToDouble(x); !math.IsInf(got, 1) {
		t.Errorf("huge positive -> %g, want +Inf", got)
	}

	neg := Mutable(make([]uint64, UnaryMinusResultSize(x)))
	if err := UnaryMinus(&neg, x); err != nil {
		t.Fatalf("UnaryMinus: %v", err)
	}
	if got := ToDouble(neg.Ref()); !math.IsInf(got, -1) {
		t.Errorf("huge negative -> %g, want -Inf", got)
	}
}

// Doubles with an exact integer value survive the double -> bigint ->
// double round trip.
func TestDoubleRoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 42, -97, 1e15, -1e15, math.Ldexp(1, 52), math.Ldexp(1.5, 80), -math.Ldexp(1, 100)}
	for _, f := range values {
		m := Mutable(make([]uint64, FromDoubleResultSize(f)))
		if err := FromDouble(&m, f); err != nil {
			t.Fatalf("FromDouble(%g): %v", f, err)
		}
		if got := ToDouble(m.Ref()); got != f {
			t.Errorf("round trip of %g gave %g", f, got)
		}
	}
}
