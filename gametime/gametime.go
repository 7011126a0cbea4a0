// Package gametime provides the simulation's time value types: an
// instantaneous Time bounded to a valid historical window, a float-seconds
// Duration, and a fixed-offset TimeZone.
package gametime

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingTimeZone indicates a Time constructed without an explicit zone.
	ErrMissingTimeZone = errors.New("game time requires an explicit time zone")
	// ErrTimeOutOfRange indicates a Time outside the valid game window. The
	// orchestrator matches this error specifically to end the game when the
	// clock runs past the window.
	ErrTimeOutOfRange = errors.New("game time outside valid range")
)

// Epoch is the lower bound of the valid game time window. The upper bound is
// wall-clock "now" at evaluation time.
var Epoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Time is a point in game time. It always carries an explicit zone and always
// lies within [Epoch, now]; construction and arithmetic enforce both.
type Time struct {
	t    time.Time
	zone TimeZone
}

// New validates and constructs a game time.
func New(t time.Time, zone TimeZone) (Time, error) {
	if zone.IsZero() {
		return Time{}, ErrMissingTimeZone
	}
	if err := checkBounds(t); err != nil {
		return Time{}, err
	}
	return Time{t: t, zone: zone}, nil
}

// Now returns the current wall-clock instant as a game time in the given zone.
func Now(zone TimeZone) (Time, error) {
	return New(time.Now(), zone)
}

func checkBounds(t time.Time) error {
	if t.Before(Epoch) {
		return fmt.Errorf("%w: %s is before %s", ErrTimeOutOfRange,
			t.UTC().Format(time.RFC3339), Epoch.Format(time.RFC3339))
	}
	if now := time.Now(); t.After(now) {
		return fmt.Errorf("%w: %s is in the future", ErrTimeOutOfRange,
			t.UTC().Format(time.RFC3339))
	}
	return nil
}

// Add returns the time advanced by d, failing with ErrTimeOutOfRange if the
// result leaves the valid window.
func (gt Time) Add(d Duration) (Time, error) {
	return New(gt.t.Add(d.Std()), gt.zone)
}

// Sub returns the time moved back by d, failing with ErrTimeOutOfRange if
// the result leaves the valid window.
func (gt Time) Sub(d Duration) (Time, error) {
	return New(gt.t.Add(-d.Std()), gt.zone)
}

// Since returns the duration elapsed from earlier to gt.
func (gt Time) Since(earlier Time) Duration {
	return FromSeconds(gt.t.Sub(earlier.t).Seconds())
}

// Before reports whether gt is before other.
func (gt Time) Before(other Time) bool { return gt.t.Before(other.t) }

// After reports whether gt is after other.
func (gt Time) After(other Time) bool { return gt.t.After(other.t) }

// Equal reports whether gt and other are the same instant, regardless of zone.
func (gt Time) Equal(other Time) bool { return gt.t.Equal(other.t) }

// InZone returns the same instant carrying a different zone.
func (gt Time) InZone(zone TimeZone) (Time, error) {
	if zone.IsZero() {
		return Time{}, ErrMissingTimeZone
	}
	return Time{t: gt.t, zone: zone}, nil
}

// Zone returns the time's zone.
func (gt Time) Zone() TimeZone { return gt.zone }

// Std returns the underlying time.Time localized to the game zone.
func (gt Time) Std() time.Time {
	return gt.t.In(gt.zone.Location())
}

// Format renders the time in its zone using a time.Format layout.
func (gt Time) Format(layout string) string {
	return gt.Std().Format(layout)
}

func (gt Time) String() string {
	return gt.Format(time.RFC3339)
}
