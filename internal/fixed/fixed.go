// Package fixed implements the 16.16 fixed-point arithmetic the map engine
// runs on, plus binary-angle trigonometry tables.
package fixed

import "math"

// Fixed is a signed 16.16 fixed-point number.
type Fixed int32

// FracBits is the number of fraction bits in a Fixed.
const FracBits = 16

// One is the fixed-point representation of 1.0.
const One Fixed = 1 << FracBits

// FromInt converts an integer to fixed point.
func FromInt(n int) Fixed { return Fixed(n << FracBits) }

// FromFloat converts a float to fixed point, truncating toward zero.
func FromFloat(f float64) Fixed { return Fixed(f * float64(One)) }

// Int returns the integer part, truncating toward negative infinity.
func (f Fixed) Int() int { return int(f >> FracBits) }

// Float returns the value as a float64.
func (f Fixed) Float() float64 { return float64(f) / float64(One) }

// Mul multiplies two fixed-point numbers through a 64-bit intermediate.
func Mul(a, b Fixed) Fixed {
	return Fixed((int64(a) * int64(b)) >> FracBits)
}

// Div divides two fixed-point numbers. Quotients that cannot fit saturate
// to the closest representable value instead of overflowing.
func Div(a, b Fixed) Fixed {
	if abs32(int32(a))>>14 >= abs32(int32(b)) {
		if (a ^ b) < 0 {
			return Fixed(math.MinInt32)
		}
		return Fixed(math.MaxInt32)
	}
	return Fixed((int64(a) << FracBits) / int64(b))
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
