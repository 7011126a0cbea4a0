package core

import (
	"errors"
	"testing"
)

func TestStartOnlyFromInitializing(t *testing.T) {
	m := NewStateMachine()
	if got := m.State(); got != Initializing {
		t.Fatalf("initial state = %v, want INITIALIZING", got)
	}

	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := m.State(); got != Running {
		t.Errorf("state after Start = %v, want RUNNING", got)
	}

	if err := m.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Start error = %v, want ErrInvalidTransition", err)
	}
}

func TestPauseUnpause(t *testing.T) {
	m := NewStateMachine()

	// Pause before start is a no-op.
	m.Pause()
	if got := m.State(); got != Initializing {
		t.Errorf("state after early Pause = %v, want INITIALIZING", got)
	}
	if err := m.Unpause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Unpause from INITIALIZING error = %v, want ErrInvalidTransition", err)
	}

	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m.Pause()
	if got := m.State(); got != Paused {
		t.Fatalf("state after Pause = %v, want PAUSED", got)
	}
	if !m.IsPaused() {
		t.Error("IsPaused() = false while paused")
	}

	// Pausing again is a no-op.
	m.Pause()
	if got := m.State(); got != Paused {
		t.Errorf("state after double Pause = %v, want PAUSED", got)
	}

	if err := m.Unpause(); err != nil {
		t.Fatalf("Unpause: %v", err)
	}
	if got := m.State(); got != Running {
		t.Errorf("state after Unpause = %v, want RUNNING", got)
	}
	if err := m.Unpause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Unpause while RUNNING error = %v, want ErrInvalidTransition", err)
	}
}

func TestCompleteAlwaysSucceeds(t *testing.T) {
	for _, setup := range []func(*StateMachine){
		func(m *StateMachine) {},
		func(m *StateMachine) { m.Start() },
		func(m *StateMachine) { m.Start(); m.Pause() },
		func(m *StateMachine) { m.Complete() },
	} {
		m := NewStateMachine()
		setup(m)
		m.Complete()
		if got := m.State(); got != Completed {
			t.Errorf("state after Complete = %v, want COMPLETED", got)
		}
		// Idempotent.
		m.Complete()
		if got := m.State(); got != Completed {
			t.Errorf("state after second Complete = %v, want COMPLETED", got)
		}
	}
}

func TestCanTickOnlyWhenRunning(t *testing.T) {
	m := NewStateMachine()
	if m.CanTick() {
		t.Error("CanTick() = true while INITIALIZING")
	}
	m.Start()
	if !m.CanTick() {
		t.Error("CanTick() = false while RUNNING")
	}
	m.Pause()
	if m.CanTick() {
		t.Error("CanTick() = true while PAUSED")
	}
	m.Unpause()
	m.Complete()
	if m.CanTick() {
		t.Error("CanTick() = true while COMPLETED")
	}
}
