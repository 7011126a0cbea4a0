package geo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLatitude indicates a latitude outside [-90, 90].
	ErrInvalidLatitude = errors.New("latitude must be between -90 and 90 degrees")
	// ErrInvalidLongitude indicates a longitude outside [-180, 180].
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180 degrees")
	// ErrInvalidScaleFactor indicates a non-positive plane-to-geographic scale.
	ErrInvalidScaleFactor = errors.New("scale factor must be positive")
)

// GeoPosition is a validated geographic coordinate in decimal degrees.
type GeoPosition struct {
	latitude  float64
	longitude float64
}

// NewGeoPosition validates bounds and constructs a geographic position.
func NewGeoPosition(latitude, longitude float64) (GeoPosition, error) {
	if latitude < -90 || latitude > 90 {
		return GeoPosition{}, fmt.Errorf("%w: got %g", ErrInvalidLatitude, latitude)
	}
	if longitude < -180 || longitude > 180 {
		return GeoPosition{}, fmt.Errorf("%w: got %g", ErrInvalidLongitude, longitude)
	}
	return GeoPosition{latitude: latitude, longitude: longitude}, nil
}

// GeoFromPosition interprets a plane position as (longitude, latitude) scaled
// by scaleFactor: x/scale is longitude, y/scale is latitude. This is the
// adapter that routes all on-map range checks through the geodesic solver.
func GeoFromPosition(p Position, scaleFactor float64) (GeoPosition, error) {
	if scaleFactor <= 0 {
		return GeoPosition{}, fmt.Errorf("%w: got %g", ErrInvalidScaleFactor, scaleFactor)
	}
	return NewGeoPosition(p.Y/scaleFactor, p.X/scaleFactor)
}

// Position converts back to plane coordinates using the same scale factor.
func (g GeoPosition) Position(scaleFactor float64) Position {
	return Position{X: g.longitude * scaleFactor, Y: g.latitude * scaleFactor}
}

// Latitude returns the latitude in decimal degrees.
func (g GeoPosition) Latitude() float64 { return g.latitude }

// Longitude returns the longitude in decimal degrees.
func (g GeoPosition) Longitude() float64 { return g.longitude }

func (g GeoPosition) String() string {
	return fmt.Sprintf("GeoPosition(lat=%.6f, lon=%.6f)", g.latitude, g.longitude)
}
