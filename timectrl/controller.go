package timectrl

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/midwatch/naval-simulator/gametime"
)

// Bounds on the time rate: the amount of game time one scheduler tick
// represents.
var (
	// MinTimeRate is one second of game time per tick.
	MinTimeRate = gametime.FromSeconds(1)
	// MaxTimeRate is one hour of game time per tick.
	MaxTimeRate = gametime.FromHours(1)
	// DefaultTimeRate is one minute of game time per tick.
	DefaultTimeRate = gametime.FromMinutes(1)
)

// ErrRateOutOfRange indicates a requested time rate outside
// [MinTimeRate, MaxTimeRate].
var ErrRateOutOfRange = errors.New("time rate outside valid range")

// TimeController owns the game clock. It pairs a mutex-guarded current game
// time and time rate with a Scheduler that advances the clock once per tick.
// All methods are safe for concurrent use.
type TimeController struct {
	mu        sync.RWMutex
	current   gametime.Time
	rate      gametime.Duration
	scheduler *Scheduler
}

// NewTimeController constructs a controller starting at the given game time
// with DefaultTimeRate. The scheduler is owned but not started.
func NewTimeController(start gametime.Time, scheduler *Scheduler) *TimeController {
	return &TimeController{
		current:   start,
		rate:      DefaultTimeRate,
		scheduler: scheduler,
	}
}

// Now returns the current game time.
func (tc *TimeController) Now() gametime.Time {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.current
}

// Rate returns the amount of game time one tick advances the clock.
func (tc *TimeController) Rate() gametime.Duration {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.rate
}

// SetRate sets the game time advanced per tick, rejecting rates outside
// [MinTimeRate, MaxTimeRate].
func (tc *TimeController) SetRate(rate gametime.Duration) error {
	if rate.Less(MinTimeRate) || rate.Greater(MaxTimeRate) {
		return fmt.Errorf("%w: %s not in [%s, %s]",
			ErrRateOutOfRange, rate, MinTimeRate, MaxTimeRate)
	}
	tc.mu.Lock()
	tc.rate = rate
	tc.mu.Unlock()
	return nil
}

// SetRateSeconds sets the rate in game seconds per tick.
func (tc *TimeController) SetRateSeconds(seconds float64) error {
	return tc.SetRate(gametime.FromSeconds(seconds))
}

// SetRateMinutes sets the rate in game minutes per tick.
func (tc *TimeController) SetRateMinutes(minutes float64) error {
	return tc.SetRate(gametime.FromMinutes(minutes))
}

// Advance moves the clock forward by one rate step and returns the new game
// time. If the step would push the clock past the valid game window the
// clock is left unchanged and the error from gametime.Time.Add is returned;
// callers match gametime.ErrTimeOutOfRange to detect the end of the window.
func (tc *TimeController) Advance() (gametime.Time, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	next, err := tc.current.Add(tc.rate)
	if err != nil {
		return tc.current, err
	}
	tc.current = next
	return next, nil
}

// StartScheduler starts the owned scheduler with the given handler.
func (tc *TimeController) StartScheduler(handler TickHandler) error {
	return tc.scheduler.Start(handler)
}

// StopScheduler stops the owned scheduler, blocking until its goroutine has
// exited.
func (tc *TimeController) StopScheduler() {
	tc.scheduler.Stop()
}

// SchedulerRunning reports whether the owned scheduler's loop is up.
func (tc *TimeController) SchedulerRunning() bool {
	return tc.scheduler.IsRunning()
}

// TickDelay returns the scheduler's wall-clock delay, for status reporting.
func (tc *TimeController) TickDelay() time.Duration {
	return tc.scheduler.Delay()
}
