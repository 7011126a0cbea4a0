package geo

import (
	"fmt"
	"math"
)

// Bearing is a compass direction in degrees, always normalized to [0, 360).
// 0° is north, 90° east, 180° south, 270° west.
type Bearing struct {
	degrees float64
}

// Common bearings.
var (
	North = NewBearing(0)
	East  = NewBearing(90)
	South = NewBearing(180)
	West  = NewBearing(270)
)

// NewBearing constructs a bearing, normalizing the angle into [0, 360).
func NewBearing(degrees float64) Bearing {
	return Bearing{NormalizeDegrees(degrees)}
}

// BearingFromRadians constructs a bearing from an angle in radians.
func BearingFromRadians(radians float64) Bearing {
	return NewBearing(radians * 180.0 / math.Pi)
}

// Degrees returns the bearing in degrees [0, 360).
func (b Bearing) Degrees() float64 { return b.degrees }

// Radians returns the bearing in radians [0, 2π).
func (b Bearing) Radians() float64 { return b.degrees * math.Pi / 180.0 }

// SignedDegrees returns the bearing in degrees (-180, 180].
func (b Bearing) SignedDegrees() float64 {
	if b.degrees > 180 {
		return b.degrees - 360
	}
	return b.degrees
}

// Add returns the bearing rotated clockwise by delta degrees, re-normalized.
func (b Bearing) Add(delta float64) Bearing {
	return NewBearing(b.degrees + delta)
}

// Sub returns the bearing rotated counter-clockwise by delta degrees,
// re-normalized.
func (b Bearing) Sub(delta float64) Bearing {
	return NewBearing(b.degrees - delta)
}

// Reciprocal returns the opposite bearing.
func (b Bearing) Reciprocal() Bearing {
	return NewBearing(b.degrees + 180)
}

// RelativeTo returns this bearing relative to a reference heading: 0° dead
// ahead, 90° to starboard, 270° to port.
func (b Bearing) RelativeTo(reference Bearing) Bearing {
	return NewBearing(b.degrees - reference.degrees)
}

// Equal compares two bearings with a small tolerance for float arithmetic.
func (b Bearing) Equal(other Bearing) bool {
	return math.Abs(b.degrees-other.degrees) < 1e-10
}

func (b Bearing) String() string {
	return fmt.Sprintf("%.1f°", b.degrees)
}

// NormalizeDegrees maps any angle in degrees into [0, 360).
func NormalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// CardinalDirection is one of the eight compass points.
type CardinalDirection int

const (
	N CardinalDirection = iota
	NE
	E
	SE
	S
	SW
	W
	NW
)

var cardinalNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CardinalFromBearing returns the nearest compass point for a bearing. Each
// point owns a 45° sector centered on it, so the sector boundaries sit at
// 22.5° offsets from the points themselves.
func CardinalFromBearing(b Bearing) CardinalDirection {
	sector := NormalizeDegrees(b.degrees + 22.5)
	return CardinalDirection(int(sector / 45))
}

// Bearing returns the compass point's bearing.
func (c CardinalDirection) Bearing() Bearing {
	return NewBearing(45 * float64(c))
}

func (c CardinalDirection) String() string {
	if c < N || c > NW {
		return fmt.Sprintf("CardinalDirection(%d)", int(c))
	}
	return cardinalNames[c]
}
