package timectrl

import (
	"errors"
	"testing"
	"time"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/internal/logging"
)

func testStart(t *testing.T) gametime.Time {
	t.Helper()
	gt, err := gametime.New(time.Date(1942, time.June, 4, 4, 30, 0, 0, time.UTC), gametime.UTC())
	if err != nil {
		t.Fatalf("gametime.New: %v", err)
	}
	return gt
}

func newTestController(t *testing.T) *TimeController {
	t.Helper()
	return NewTimeController(testStart(t), NewScheduler(time.Millisecond, logging.Noop()))
}

func TestControllerDefaults(t *testing.T) {
	tc := newTestController(t)
	if got := tc.Rate().Minutes(); got != 1 {
		t.Errorf("default rate = %g minutes, want 1", got)
	}
	if !tc.Now().Equal(testStart(t)) {
		t.Errorf("Now() = %v, want start time", tc.Now())
	}
}

func TestControllerAdvance(t *testing.T) {
	tc := newTestController(t)
	if err := tc.SetRateMinutes(30); err != nil {
		t.Fatalf("SetRateMinutes: %v", err)
	}

	next, err := tc.Advance()
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got := next.Since(testStart(t)).Minutes(); got != 30 {
		t.Errorf("advanced %g minutes, want 30", got)
	}
	if !tc.Now().Equal(next) {
		t.Error("Now() does not reflect Advance")
	}
}

func TestControllerRateBounds(t *testing.T) {
	tc := newTestController(t)

	if err := tc.SetRateSeconds(0.5); !errors.Is(err, ErrRateOutOfRange) {
		t.Errorf("SetRateSeconds(0.5) error = %v, want ErrRateOutOfRange", err)
	}
	if err := tc.SetRate(gametime.FromHours(2)); !errors.Is(err, ErrRateOutOfRange) {
		t.Errorf("SetRate(2h) error = %v, want ErrRateOutOfRange", err)
	}
	if err := tc.SetRateSeconds(1); err != nil {
		t.Errorf("SetRateSeconds(1): %v", err)
	}
	if err := tc.SetRate(gametime.FromHours(1)); err != nil {
		t.Errorf("SetRate(1h): %v", err)
	}

	// A rejected rate leaves the previous one in place.
	if err := tc.SetRateMinutes(90); !errors.Is(err, ErrRateOutOfRange) {
		t.Errorf("SetRateMinutes(90) error = %v, want ErrRateOutOfRange", err)
	}
	if got := tc.Rate().Hours(); got != 1 {
		t.Errorf("rate after rejected set = %g hours, want 1", got)
	}
}

func TestControllerAdvancePastWindow(t *testing.T) {
	now, err := gametime.New(time.Now().Add(-30*time.Second), gametime.UTC())
	if err != nil {
		t.Fatalf("gametime.New: %v", err)
	}
	tc := NewTimeController(now, NewScheduler(time.Millisecond, logging.Noop()))
	if err := tc.SetRate(gametime.FromHours(1)); err != nil {
		t.Fatalf("SetRate: %v", err)
	}

	if _, err := tc.Advance(); !errors.Is(err, gametime.ErrTimeOutOfRange) {
		t.Fatalf("Advance past now error = %v, want gametime.ErrTimeOutOfRange", err)
	}
	if !tc.Now().Equal(now) {
		t.Error("clock moved despite failed Advance")
	}
}

func TestControllerSchedulerLifecycle(t *testing.T) {
	tc := newTestController(t)

	advanced := make(chan gametime.Time, 1)
	err := tc.StartScheduler(func() {
		gt, err := tc.Advance()
		if err != nil {
			return
		}
		select {
		case advanced <- gt:
		default:
		}
	})
	if err != nil {
		t.Fatalf("StartScheduler: %v", err)
	}
	if !tc.SchedulerRunning() {
		t.Error("SchedulerRunning() = false after start")
	}

	select {
	case gt := <-advanced:
		if !gt.After(testStart(t)) {
			t.Errorf("tick produced %v, not after start", gt)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick advanced the clock within a second")
	}

	tc.StopScheduler()
	if tc.SchedulerRunning() {
		t.Error("SchedulerRunning() = true after stop")
	}
}
