package environment

import (
	"math"
	"testing"
	"time"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/geo"
)

func mustGeo(t *testing.T, lat, lon float64) geo.GeoPosition {
	t.Helper()
	pos, err := geo.NewGeoPosition(lat, lon)
	if err != nil {
		t.Fatalf("NewGeoPosition(%g, %g): %v", lat, lon, err)
	}
	return pos
}

func mustGameTime(t *testing.T, tt time.Time) gametime.Time {
	t.Helper()
	gt, err := gametime.New(tt, gametime.UTC())
	if err != nil {
		t.Fatalf("gametime.New(%v): %v", tt, err)
	}
	return gt
}

func TestSunTimesEquator(t *testing.T) {
	// On an equinox at the prime meridian the sun rises close to 06:00 UTC
	// and sets close to 18:00 UTC.
	date := time.Date(1942, time.March, 21, 12, 0, 0, 0, time.UTC)
	sun := SunTimes(date, mustGeo(t, 0, 0))

	if sun.PolarDay || sun.PolarNight {
		t.Fatal("equator reported polar conditions")
	}
	if h := sun.Sunrise.Hour(); h < 5 || h > 6 {
		t.Errorf("sunrise at %v, want close to 06:00 UTC", sun.Sunrise)
	}
	if h := sun.Sunset.Hour(); h < 17 || h > 18 {
		t.Errorf("sunset at %v, want close to 18:00 UTC", sun.Sunset)
	}
	if !sun.Sunrise.Before(sun.Sunset) {
		t.Error("sunrise is not before sunset")
	}
}

func TestSunTimesLongitudeShift(t *testing.T) {
	// Moving 90 degrees east shifts solar events about six hours earlier
	// in UTC.
	date := time.Date(1942, time.March, 21, 12, 0, 0, 0, time.UTC)
	greenwich := SunTimes(date, mustGeo(t, 0, 0))
	east := SunTimes(date, mustGeo(t, 0, 90))

	shift := greenwich.Sunrise.Sub(east.Sunrise)
	if shift < 5*time.Hour || shift > 7*time.Hour {
		t.Errorf("90E sunrise shift = %v, want about 6h", shift)
	}
}

func TestSunTimesPolar(t *testing.T) {
	winter := time.Date(1941, time.December, 21, 12, 0, 0, 0, time.UTC)
	summer := time.Date(1942, time.June, 21, 12, 0, 0, 0, time.UTC)
	svalbard := mustGeo(t, 78, 16)

	if sun := SunTimes(winter, svalbard); !sun.PolarNight {
		t.Error("high-latitude winter did not report polar night")
	}
	if sun := SunTimes(summer, svalbard); !sun.PolarDay {
		t.Error("high-latitude summer did not report polar day")
	}
}

func TestMoonPhaseCycle(t *testing.T) {
	// 2000-01-06 is the reference new moon; a half synodic month later the
	// moon is full.
	newMoon := time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)
	fullMoon := newMoon.Add(time.Duration(synodicMonthDays / 2 * 24 * float64(time.Hour)))

	if got := MoonPhase(newMoon); got > 0.02 {
		t.Errorf("MoonPhase(new moon) = %g, want near 0", got)
	}
	if got := MoonPhase(fullMoon); got < 0.98 {
		t.Errorf("MoonPhase(full moon) = %g, want near 1", got)
	}

	for d := 0; d < 60; d++ {
		got := MoonPhase(newMoon.AddDate(0, 0, d))
		if got < 0 || got > 1 {
			t.Fatalf("MoonPhase day %d = %g, outside [0, 1]", d, got)
		}
	}
}

func TestIlluminationAt(t *testing.T) {
	equator := mustGeo(t, 0, 0)
	cycle := DayNightCycle{}

	noon := mustGameTime(t, time.Date(1942, time.June, 4, 12, 0, 0, 0, time.UTC))
	if got := cycle.IlluminationAt(noon, equator); got != Day {
		t.Errorf("noon = %v, want DAY", got)
	}

	midnight := mustGameTime(t, time.Date(1942, time.June, 4, 0, 30, 0, 0, time.UTC))
	if got := cycle.IlluminationAt(midnight, equator); got != Night {
		t.Errorf("midnight = %v, want NIGHT", got)
	}
}

func TestIlluminationPolar(t *testing.T) {
	svalbard := mustGeo(t, 78, 16)
	cycle := DayNightCycle{}

	winterNoon := mustGameTime(t, time.Date(1941, time.December, 21, 12, 0, 0, 0, time.UTC))
	if got := cycle.IlluminationAt(winterNoon, svalbard); got != Night {
		t.Errorf("polar winter noon = %v, want NIGHT", got)
	}

	summerMidnight := mustGameTime(t, time.Date(1942, time.June, 21, 0, 0, 0, 0, time.UTC))
	if got := cycle.IlluminationAt(summerMidnight, svalbard); got != Day {
		t.Errorf("polar summer midnight = %v, want DAY", got)
	}
}

func TestDetectionRangeFor(t *testing.T) {
	base := geo.MustNauticalMiles(20)

	tests := []struct {
		name  string
		ill   Illumination
		phase float64
		want  float64
	}{
		{"day uses base range", Day, 0.5, 20},
		{"dawn fixes at ten", Dawn, 0.5, 10},
		{"dusk fixes at ten", Dusk, 0.5, 10},
		{"new moon night", Night, 0, 1},
		{"full moon night", Night, 1, 5},
		{"half moon night", Night, 0.5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectionRangeFor(tt.ill, tt.phase, base)
			if math.Abs(got.Value()-tt.want) > 1e-9 {
				t.Errorf("DetectionRangeFor(%v, %g) = %v, want %g NM",
					tt.ill, tt.phase, got, tt.want)
			}
		})
	}
}

func TestDetectionRangeIgnoresShortBaseAfterDark(t *testing.T) {
	// The illumination limit replaces the base range outright, so a
	// short-sighted sensor is raised to the ambient visibility.
	base := geo.MustNauticalMiles(2)
	if got := DetectionRangeFor(Dawn, 0.5, base); got.Value() != 10 {
		t.Errorf("dawn range with 2 NM base = %v, want 10 NM", got)
	}
	if got := DetectionRangeFor(Night, 1, base); got.Value() != 5 {
		t.Errorf("full moon night range with 2 NM base = %v, want 5 NM", got)
	}
}
