package gametime

import (
	"errors"
	"fmt"
	"time"
)

// ErrZeroDuration indicates a division by a zero duration or factor.
var ErrZeroDuration = errors.New("cannot divide by zero duration")

// Duration is a span of game time, stored in seconds. Unlike time.Duration
// it is a float, so fractional game-time rates survive arithmetic.
type Duration struct {
	seconds float64
}

// FromSeconds constructs a duration from seconds.
func FromSeconds(s float64) Duration { return Duration{s} }

// FromMinutes constructs a duration from minutes.
func FromMinutes(m float64) Duration { return Duration{m * 60} }

// FromHours constructs a duration from hours.
func FromHours(h float64) Duration { return Duration{h * 3600} }

// FromDays constructs a duration from days.
func FromDays(d float64) Duration { return Duration{d * 86400} }

// Seconds returns the total duration in seconds.
func (d Duration) Seconds() float64 { return d.seconds }

// Minutes returns the total duration in minutes.
func (d Duration) Minutes() float64 { return d.seconds / 60 }

// Hours returns the total duration in hours.
func (d Duration) Hours() float64 { return d.seconds / 3600 }

// Days returns the total duration in days.
func (d Duration) Days() float64 { return d.seconds / 86400 }

// Add returns d + other.
func (d Duration) Add(other Duration) Duration { return Duration{d.seconds + other.seconds} }

// Sub returns d − other.
func (d Duration) Sub(other Duration) Duration { return Duration{d.seconds - other.seconds} }

// Mul scales the duration by a factor.
func (d Duration) Mul(factor float64) Duration { return Duration{d.seconds * factor} }

// Div divides the duration by a factor.
func (d Duration) Div(factor float64) (Duration, error) {
	if factor == 0 {
		return Duration{}, ErrZeroDuration
	}
	return Duration{d.seconds / factor}, nil
}

// Ratio returns d / other as a plain number.
func (d Duration) Ratio(other Duration) (float64, error) {
	if other.seconds == 0 {
		return 0, ErrZeroDuration
	}
	return d.seconds / other.seconds, nil
}

// Less reports whether d < other.
func (d Duration) Less(other Duration) bool { return d.seconds < other.seconds }

// Greater reports whether d > other.
func (d Duration) Greater(other Duration) bool { return d.seconds > other.seconds }

// Std converts to a time.Duration, truncating below nanosecond resolution.
func (d Duration) Std() time.Duration {
	return time.Duration(d.seconds * float64(time.Second))
}

func (d Duration) String() string {
	return fmt.Sprintf("%gs", d.seconds)
}
