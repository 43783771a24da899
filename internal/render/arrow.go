package render

import (
	"automap/internal/fixed"
	"automap/internal/viewport"
)

// playerRadius is the player's map-space radius in 16.16 units.
const playerRadius = int64(16) << fixed.FracBits

// arrowSegment is one stroke of the player arrow, in units of r (the arrow
// half-length) scaled by 16.16 so fractions survive.
type arrowSegment struct {
	x0, y0, x1, y1 int64
}

// playerArrow is the classic automap arrow: shaft, head, and tail barbs.
// Coordinates are fractions of r expressed in 16.16.
var playerArrow = []arrowSegment{
	{-frac(7, 8), 0, frac(1, 1), 0},                  // shaft
	{frac(1, 1), 0, frac(1, 2), frac(1, 4)},          // head upper
	{frac(1, 1), 0, frac(1, 2), -frac(1, 4)},         // head lower
	{-frac(7, 8), 0, -frac(9, 8), frac(1, 4)},        // tail barb upper
	{-frac(7, 8), 0, -frac(9, 8), -frac(1, 4)},       // tail barb lower
	{-frac(5, 8), 0, -frac(7, 8), frac(1, 4)},        // inner barb upper
	{-frac(5, 8), 0, -frac(7, 8), -frac(1, 4)},       // inner barb lower
}

func frac(num, den int64) int64 {
	return num << fixed.FracBits / den
}

// arrowLines returns the player arrow translated to pos and rotated to
// face along angle, as map-space segments.
func arrowLines(pos viewport.MapPoint, angle fixed.Angle) [][2]viewport.MapPoint {
	r := 8 * playerRadius / 7
	sin := int64(fixed.Sin(angle))
	cos := int64(fixed.Cos(angle))

	out := make([][2]viewport.MapPoint, 0, len(playerArrow))
	for _, s := range playerArrow {
		x0 := s.x0 * r >> fixed.FracBits
		y0 := s.y0 * r >> fixed.FracBits
		x1 := s.x1 * r >> fixed.FracBits
		y1 := s.y1 * r >> fixed.FracBits
		// Rotate to the facing angle, then translate to the player.
		a := viewport.MapPoint{
			X: pos.X + ((x0*cos - y0*sin) >> fixed.FracBits),
			Y: pos.Y + ((x0*sin + y0*cos) >> fixed.FracBits),
		}
		b := viewport.MapPoint{
			X: pos.X + ((x1*cos - y1*sin) >> fixed.FracBits),
			Y: pos.Y + ((x1*sin + y1*cos) >> fixed.FracBits),
		}
		out = append(out, [2]viewport.MapPoint{a, b})
	}
	return out
}
