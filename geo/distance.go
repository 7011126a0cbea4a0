package geo

import (
	"errors"
	"fmt"
)

// Standard conversion factors.
const (
	MetersPerNauticalMile       = 1852.0
	StatuteMilesPerNauticalMile = 1.15078
	KilometersPerNauticalMile   = MetersPerNauticalMile / 1000.0
)

var (
	// ErrNegativeDistance indicates an attempt to construct a negative distance.
	ErrNegativeDistance = errors.New("distance cannot be negative")
	// ErrZeroDivisor indicates a division of a distance by zero.
	ErrZeroDivisor = errors.New("cannot divide distance by zero")
	// ErrNegativeScalar indicates a distance scaled by a negative factor.
	ErrNegativeScalar = errors.New("cannot scale distance by a negative factor")
)

// NauticalMiles is a non-negative distance in nautical miles
// (1 NM = 1852 m exactly). The zero value is a zero distance.
type NauticalMiles struct {
	value float64
}

// NewNauticalMiles validates and constructs a distance.
func NewNauticalMiles(v float64) (NauticalMiles, error) {
	if v < 0 {
		return NauticalMiles{}, fmt.Errorf("%w: %g NM", ErrNegativeDistance, v)
	}
	return NauticalMiles{v}, nil
}

// MustNauticalMiles constructs a distance and panics on a negative value.
// Intended for constants and test fixtures.
func MustNauticalMiles(v float64) NauticalMiles {
	d, err := NewNauticalMiles(v)
	if err != nil {
		panic(err)
	}
	return d
}

// FromMeters converts a meter value to nautical miles.
func FromMeters(m float64) (NauticalMiles, error) {
	if m < 0 {
		return NauticalMiles{}, fmt.Errorf("%w: %g m", ErrNegativeDistance, m)
	}
	return NauticalMiles{m / MetersPerNauticalMile}, nil
}

// FromKilometers converts a kilometer value to nautical miles.
func FromKilometers(km float64) (NauticalMiles, error) {
	if km < 0 {
		return NauticalMiles{}, fmt.Errorf("%w: %g km", ErrNegativeDistance, km)
	}
	return NauticalMiles{km / KilometersPerNauticalMile}, nil
}

// FromStatuteMiles converts a statute-mile value to nautical miles.
func FromStatuteMiles(mi float64) (NauticalMiles, error) {
	if mi < 0 {
		return NauticalMiles{}, fmt.Errorf("%w: %g mi", ErrNegativeDistance, mi)
	}
	return NauticalMiles{mi / StatuteMilesPerNauticalMile}, nil
}

// Value returns the distance in nautical miles.
func (d NauticalMiles) Value() float64 { return d.value }

// Meters returns the distance in meters.
func (d NauticalMiles) Meters() float64 { return d.value * MetersPerNauticalMile }

// Kilometers returns the distance in kilometers.
func (d NauticalMiles) Kilometers() float64 { return d.value * KilometersPerNauticalMile }

// StatuteMiles returns the distance in statute miles.
func (d NauticalMiles) StatuteMiles() float64 { return d.value * StatuteMilesPerNauticalMile }

// Add returns d + other.
func (d NauticalMiles) Add(other NauticalMiles) NauticalMiles {
	return NauticalMiles{d.value + other.value}
}

// Sub returns d − other and fails if the result would be negative.
func (d NauticalMiles) Sub(other NauticalMiles) (NauticalMiles, error) {
	return NewNauticalMiles(d.value - other.value)
}

// Mul scales the distance by a non-negative factor.
func (d NauticalMiles) Mul(scalar float64) (NauticalMiles, error) {
	if scalar < 0 {
		return NauticalMiles{}, fmt.Errorf("%w: %g", ErrNegativeScalar, scalar)
	}
	return NauticalMiles{d.value * scalar}, nil
}

// Div divides the distance by a positive factor.
func (d NauticalMiles) Div(scalar float64) (NauticalMiles, error) {
	if scalar == 0 {
		return NauticalMiles{}, ErrZeroDivisor
	}
	if scalar < 0 {
		return NauticalMiles{}, fmt.Errorf("%w: %g", ErrNegativeScalar, scalar)
	}
	return NauticalMiles{d.value / scalar}, nil
}

// Less reports whether d < other.
func (d NauticalMiles) Less(other NauticalMiles) bool { return d.value < other.value }

// LessOrEqual reports whether d <= other.
func (d NauticalMiles) LessOrEqual(other NauticalMiles) bool { return d.value <= other.value }

func (d NauticalMiles) String() string {
	return fmt.Sprintf("%.2f NM", d.value)
}
