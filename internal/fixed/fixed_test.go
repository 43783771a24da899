package fixed

import (
	"math"
	"testing"
)

func TestMul(t *testing.T) {
	cases := []struct {
		name string
		a, b Fixed
		want Fixed
	}{
		{"one times one", One, One, One},
		{"two times three", FromInt(2), FromInt(3), FromInt(6)},
		{"half times half", One / 2, One / 2, One / 4},
		{"negative operand", FromInt(-4), FromInt(2), FromInt(-8)},
		{"zero", 0, FromInt(1234), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Mul(tc.a, tc.b); got != tc.want {
				t.Errorf("Mul(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDiv(t *testing.T) {
	cases := []struct {
		name string
		a, b Fixed
		want Fixed
	}{
		{"identity", FromInt(7), One, FromInt(7)},
		{"six by two", FromInt(6), FromInt(2), FromInt(3)},
		{"one by two", One, FromInt(2), One / 2},
		{"negative quotient", FromInt(-6), FromInt(2), FromInt(-3)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Div(tc.a, tc.b); got != tc.want {
				t.Errorf("Div(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDivSaturates(t *testing.T) {
	// A quotient that cannot fit saturates instead of overflowing.
	if got := Div(FromInt(30000), 1); got != Fixed(math.MaxInt32) {
		t.Errorf("overflowing positive quotient = %d, want MaxInt32", got)
	}
	if got := Div(FromInt(-30000), 1); got != Fixed(math.MinInt32) {
		t.Errorf("overflowing negative quotient = %d, want MinInt32", got)
	}
}

func TestDivRoundTripsScale(t *testing.T) {
	// The frame→map scale and its derived inverse must agree: inverting
	// twice lands back on the original for exact powers of two.
	for _, scale := range []Fixed{One, FromInt(2), FromInt(16), One / 4} {
		inv := Div(One, scale)
		if back := Div(One, inv); back != scale {
			t.Errorf("Div(One, Div(One, %d)) = %d", scale, back)
		}
	}
}

func TestConversions(t *testing.T) {
	if FromInt(5) != 5<<FracBits {
		t.Errorf("FromInt(5) = %d", FromInt(5))
	}
	if FromInt(5).Int() != 5 {
		t.Errorf("Int round trip = %d", FromInt(5).Int())
	}
	if FromFloat(1.5) != One+One/2 {
		t.Errorf("FromFloat(1.5) = %d", FromFloat(1.5))
	}
	if got := (One + One/2).Float(); got != 1.5 {
		t.Errorf("Float() = %v", got)
	}
}

func TestSinCosQuadrants(t *testing.T) {
	cases := []struct {
		name    string
		a       Angle
		sin, cos float64
	}{
		{"zero", 0, 0, 1},
		{"ninety", Ang90, 1, 0},
		{"one-eighty", Ang180, 0, -1},
		{"two-seventy", Ang270, -1, 0},
		{"forty-five", Ang45, math.Sqrt2 / 2, math.Sqrt2 / 2},
	}
	const tol = 0.001
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sin(tc.a).Float(); math.Abs(got-tc.sin) > tol {
				t.Errorf("Sin = %v, want %v", got, tc.sin)
			}
			if got := Cos(tc.a).Float(); math.Abs(got-tc.cos) > tol {
				t.Errorf("Cos = %v, want %v", got, tc.cos)
			}
		})
	}
}

func TestSinCosIdentity(t *testing.T) {
	// sin² + cos² ≈ 1 across the circle.
	for i := 0; i < 32; i++ {
		a := Angle(uint32(i) << 27)
		s, c := Sin(a).Float(), Cos(a).Float()
		if d := math.Abs(s*s + c*c - 1); d > 0.001 {
			t.Errorf("angle %#x: sin²+cos² off by %v", uint32(a), d)
		}
	}
}

func TestFromDegrees(t *testing.T) {
	if got := FromDegrees(90); got != Ang90 {
		t.Errorf("FromDegrees(90) = %#x, want %#x", uint32(got), uint32(Ang90))
	}
	if got := FromDegrees(-90); got != Ang270 {
		t.Errorf("FromDegrees(-90) = %#x, want %#x", uint32(got), uint32(Ang270))
	}
	if got := FromDegrees(450); got != Ang90 {
		t.Errorf("FromDegrees(450) = %#x, want %#x", uint32(got), uint32(Ang90))
	}
}
