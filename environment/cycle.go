package environment

import (
	"time"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/geo"
)

// twilightWindow is how far dawn extends before sunrise and dusk after
// sunset.
const twilightWindow = 30 * time.Minute

var (
	dawnDuskRange  = geo.MustNauticalMiles(10)
	nightBaseRange = geo.MustNauticalMiles(1)
	// A full moon adds up to this much range on top of nightBaseRange.
	nightMoonBonus = 4.0
)

// DayNightCycle classifies illumination and sensor limits for game times
// and positions. The zero value is ready to use.
type DayNightCycle struct{}

// IlluminationAt classifies the light level at the given game time and
// geographic position.
func (DayNightCycle) IlluminationAt(gt gametime.Time, pos geo.GeoPosition) Illumination {
	t := gt.Std().UTC()
	sun := SunTimes(t, pos)

	switch {
	case sun.PolarDay:
		return Day
	case sun.PolarNight:
		return Night
	}

	dawnStart := sun.Sunrise.Add(-twilightWindow)
	duskEnd := sun.Sunset.Add(twilightWindow)

	switch {
	case t.Before(dawnStart) || t.After(duskEnd):
		return Night
	case t.Before(sun.Sunrise):
		return Dawn
	case t.After(sun.Sunset):
		return Dusk
	default:
		return Day
	}
}

// DetectionRangeAt returns the effective visual detection range at the
// given game time and position for a sensor with the given base range.
func (c DayNightCycle) DetectionRangeAt(gt gametime.Time, pos geo.GeoPosition, base geo.NauticalMiles) geo.NauticalMiles {
	ill := c.IlluminationAt(gt, pos)
	return DetectionRangeFor(ill, MoonPhase(gt.Std()), base)
}

// DetectionRangeFor returns the visual detection range under the given
// illumination. Daylight uses the sensor's base range; dawn and dusk fix it
// at ten nautical miles; night fixes it between one and five nautical miles
// depending on how much moon is up, regardless of the base range.
func DetectionRangeFor(ill Illumination, moonPhase float64, base geo.NauticalMiles) geo.NauticalMiles {
	switch ill {
	case Dawn, Dusk:
		return dawnDuskRange
	case Night:
		return geo.MustNauticalMiles(nightBaseRange.Value() + nightMoonBonus*moonPhase)
	default:
		return base
	}
}
