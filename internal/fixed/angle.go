package fixed

import "math"

// Angle is a binary angle: the full uint32 range covers one turn, so
// 0x40000000 is 90 degrees and wraparound comes for free.
type Angle uint32

const (
	Ang45  Angle = 0x20000000
	Ang90  Angle = 0x40000000
	Ang180 Angle = 0x80000000
	Ang270 Angle = 0xc0000000
)

// fineAngles is the resolution of the sine table; angleToFineShift maps the
// top bits of an Angle onto a table index.
const (
	fineAngles       = 8192
	angleToFineShift = 19
)

// fineSine holds a quarter turn of overlap past the full circle so cosine
// can be read as a phase-shifted sine lookup.
var fineSine [fineAngles + fineAngles/4]Fixed

func init() {
	for i := range fineSine {
		rad := 2 * math.Pi * (float64(i) + 0.5) / fineAngles
		fineSine[i] = FromFloat(math.Sin(rad))
	}
}

// Sin returns the fixed-point sine of a.
func Sin(a Angle) Fixed { return fineSine[a>>angleToFineShift] }

// Cos returns the fixed-point cosine of a.
func Cos(a Angle) Fixed { return fineSine[a>>angleToFineShift+fineAngles/4] }

// FromDegrees converts degrees to a binary angle.
func FromDegrees(deg float64) Angle {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return Angle(deg / 360 * (1 << 32))
}
