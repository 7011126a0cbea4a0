package environment

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

const (
	// Julian date of a reference new moon (2000-01-06).
	newMoonJD = 2451550.1
	// Mean length of the synodic month in days.
	synodicMonthDays = 29.530588853
)

// MoonPhase returns the illuminated fraction of the moon at t, from 0 at
// new moon to 1 at full moon and back. The synodic-cycle approximation is
// good to about a day, which is plenty for night visibility.
func MoonPhase(t time.Time) float64 {
	utc := t.UTC()
	jd := satellite.JDay(utc.Year(), int(utc.Month()), utc.Day(),
		utc.Hour(), utc.Minute(), utc.Second())

	cycles := (jd - newMoonJD) / synodicMonthDays
	frac := cycles - math.Floor(cycles)
	return (1 - math.Cos(2*math.Pi*frac)) / 2
}
