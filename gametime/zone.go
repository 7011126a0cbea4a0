package gametime

import (
	"fmt"
	"math"
	"time"
)

// TimeZone is a fixed fractional-hour offset from UTC with an optional label.
// Game time zones never observe daylight saving. The zero value is not a
// valid zone; construct one with UTC or ZoneFromHours.
type TimeZone struct {
	offsetHours float64
	name        string
	valid       bool
}

// Common zones.
var (
	EST = ZoneFromHours(-5, "EST")
	CST = ZoneFromHours(-6, "CST")
	PST = ZoneFromHours(-8, "PST")
	GMT = ZoneFromHours(0, "GMT")
)

// UTC returns the UTC zone.
func UTC() TimeZone { return TimeZone{offsetHours: 0, name: "UTC", valid: true} }

// ZoneFromHours constructs a zone from an hour offset and an optional label.
func ZoneFromHours(hours float64, name string) TimeZone {
	return TimeZone{offsetHours: hours, name: name, valid: true}
}

// OffsetHours returns the offset from UTC in hours.
func (z TimeZone) OffsetHours() float64 { return z.offsetHours }

// Name returns the zone label, which may be empty.
func (z TimeZone) Name() string { return z.name }

// IsZero reports whether the zone was never constructed.
func (z TimeZone) IsZero() bool { return !z.valid }

// Location converts the zone to a fixed time.Location for formatting.
func (z TimeZone) Location() *time.Location {
	return time.FixedZone(z.String(), int(math.Round(z.offsetHours*3600)))
}

func (z TimeZone) String() string {
	if z.name != "" {
		return z.name
	}
	sign := ""
	if z.offsetHours >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("UTC%s%g", sign, z.offsetHours)
}
