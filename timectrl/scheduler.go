// Package timectrl drives the simulation clock: a wall-time Scheduler that
// fires ticks on a background goroutine, and a TimeController that maps each
// tick onto an advance of game time at a configurable rate.
package timectrl

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"github.com/midwatch/naval-simulator/internal/logging"
)

// DefaultTickDelay is the wall-clock interval between ticks when none is
// configured.
const DefaultTickDelay = time.Second

var (
	// ErrSchedulerRunning indicates Start was called on a running scheduler.
	ErrSchedulerRunning = errors.New("scheduler already running")
	// ErrNilHandler indicates Start was called without a tick handler.
	ErrNilHandler = errors.New("scheduler requires a tick handler")
)

// TickHandler is invoked once per scheduler tick on the scheduler's
// goroutine.
type TickHandler func()

// Scheduler fires a handler at a fixed wall-clock interval on a single
// background goroutine. A panicking handler is recovered and logged; the
// tick loop keeps running.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	log     logging.Logger
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewScheduler constructs a stopped scheduler. A non-positive delay falls
// back to DefaultTickDelay; a nil logger is replaced with a no-op one.
func NewScheduler(delay time.Duration, log logging.Logger) *Scheduler {
	if delay <= 0 {
		delay = DefaultTickDelay
	}
	if log == nil {
		log = logging.Noop()
	}
	return &Scheduler{delay: delay, log: log}
}

// Start launches the tick loop. It returns ErrSchedulerRunning if the loop
// is already up and ErrNilHandler if handler is nil.
func (s *Scheduler) Start(handler TickHandler) error {
	if handler == nil {
		return ErrNilHandler
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrSchedulerRunning
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(handler, s.stop, s.done)
	return nil
}

func (s *Scheduler) run(handler TickHandler, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.fire(handler)
		}
	}
}

// fire runs one tick, isolating handler panics so a bad tick cannot take
// the loop down.
func (s *Scheduler) fire(handler TickHandler) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error(context.Background(), "tick handler panicked",
				logging.Any("panic", r),
				logging.String("stack", string(debug.Stack())))
		}
	}()
	handler()
}

// Stop signals the tick loop to exit and blocks until its goroutine has
// finished. Stopping a stopped scheduler is a no-op. Stop must not be called
// from inside a tick handler; that would deadlock the join.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
}

// IsRunning reports whether the tick loop is up.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Delay returns the wall-clock interval between ticks.
func (s *Scheduler) Delay() time.Duration { return s.delay }
