package geo

import (
	"fmt"
	"math"
)

// Position is a point in plane (game-map) coordinates. It is a plain value:
// two Positions are equal when their coordinates are equal, and it can be
// used as a map key.
type Position struct {
	X float64
	Y float64
}

func (p Position) String() string {
	return fmt.Sprintf("Position(x=%.1f, y=%.1f)", p.X, p.Y)
}

// CartesianDistance returns the straight-line distance between two plane
// positions. Movement runs on plane geometry; only detection and range
// checks go through the geodesic solver.
func CartesianDistance(p1, p2 Position) NauticalMiles {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return NauticalMiles{math.Sqrt(dx*dx + dy*dy)}
}

// CartesianBearing returns the bearing from p1 to p2 on the plane, with
// 0° pointing along +Y (north) and 90° along +X (east).
func CartesianBearing(p1, p2 Position) Bearing {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return NewBearing(math.Atan2(dx, dy) * 180.0 / math.Pi)
}
