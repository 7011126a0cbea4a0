package environment

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/midwatch/naval-simulator/geo"
)

const (
	j2000Epoch = 2451545.0

	// Standard refraction-corrected solar altitude at rise and set.
	sunriseAltitudeDeg = -0.833

	obliquityDeg = 23.4397

	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// SolarTimes holds the sun events for one date at one position, in UTC.
// When PolarDay or PolarNight is set the sunrise and sunset instants are
// meaningless and must be ignored.
type SolarTimes struct {
	Sunrise    time.Time
	Sunset     time.Time
	PolarDay   bool
	PolarNight bool
}

// SunTimes computes sunrise and sunset for the UTC date containing t at the
// given position, using the standard sunrise equation.
func SunTimes(t time.Time, pos geo.GeoPosition) SolarTimes {
	utc := t.UTC()
	jd := satellite.JDay(utc.Year(), int(utc.Month()), utc.Day(), 0, 0, 0)
	n := math.Round(jd - j2000Epoch + 0.0008)

	meanSolarTime := n - pos.Longitude()/360

	meanAnomaly := math.Mod(357.5291+0.98560028*meanSolarTime, 360)
	mRad := meanAnomaly * degToRad
	center := 1.9148*math.Sin(mRad) + 0.0200*math.Sin(2*mRad) + 0.0003*math.Sin(3*mRad)

	eclipticLon := math.Mod(meanAnomaly+center+180+102.9372, 360)
	lRad := eclipticLon * degToRad

	transit := j2000Epoch + meanSolarTime + 0.0053*math.Sin(mRad) - 0.0069*math.Sin(2*lRad)

	sinDecl := math.Sin(lRad) * math.Sin(obliquityDeg*degToRad)
	decl := math.Asin(sinDecl)

	latRad := pos.Latitude() * degToRad
	cosHourAngle := (math.Sin(sunriseAltitudeDeg*degToRad) - math.Sin(latRad)*sinDecl) /
		(math.Cos(latRad) * math.Cos(decl))

	switch {
	case cosHourAngle > 1:
		return SolarTimes{PolarNight: true}
	case cosHourAngle < -1:
		return SolarTimes{PolarDay: true}
	}

	hourAngle := math.Acos(cosHourAngle) * radToDeg
	return SolarTimes{
		Sunrise: julianToTime(transit - hourAngle/360),
		Sunset:  julianToTime(transit + hourAngle/360),
	}
}

// julianToTime converts a Julian date to a UTC time.Time.
func julianToTime(jd float64) time.Time {
	const unixEpochJD = 2440587.5
	seconds := (jd - unixEpochJD) * 86400
	return time.Unix(int64(seconds), int64((seconds-math.Trunc(seconds))*1e9)).UTC()
}
