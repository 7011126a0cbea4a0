// Package core composes the simulation: a game lifecycle state machine and
// the orchestrator that ties the clock, the unit registry, and the tick
// pipeline together.
package core

import (
	"errors"
	"fmt"
	"sync"
)

// GameState is the lifecycle phase of a running game.
type GameState int

const (
	// Initializing is the state before start; units are registered here.
	Initializing GameState = iota
	// Running games process ticks.
	Running
	// Paused games keep the scheduler alive but ignore ticks.
	Paused
	// Completed is terminal, reachable from any state.
	Completed
)

var gameStateNames = map[GameState]string{
	Initializing: "INITIALIZING",
	Running:      "RUNNING",
	Paused:       "PAUSED",
	Completed:    "COMPLETED",
}

func (s GameState) String() string {
	if name, ok := gameStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ErrInvalidTransition indicates a lifecycle call that the current state
// does not allow.
var ErrInvalidTransition = errors.New("invalid game state transition")

// StateMachine gates whether ticks may mutate simulation state. All
// methods are safe for concurrent use; commands arrive from caller
// goroutines while CanTick is polled from the scheduler goroutine.
type StateMachine struct {
	mu    sync.RWMutex
	state GameState
}

// NewStateMachine constructs a machine in the INITIALIZING state.
func NewStateMachine() *StateMachine {
	return &StateMachine{state: Initializing}
}

// State returns the current lifecycle state.
func (m *StateMachine) State() GameState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Start moves INITIALIZING to RUNNING and fails from anywhere else.
func (m *StateMachine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Initializing {
		return fmt.Errorf("%w: cannot start from %s", ErrInvalidTransition, m.state)
	}
	m.state = Running
	return nil
}

// Pause moves RUNNING to PAUSED and is a no-op from any other state.
func (m *StateMachine) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Running {
		m.state = Paused
	}
}

// Unpause moves PAUSED back to RUNNING and fails from anywhere else.
func (m *StateMachine) Unpause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Paused {
		return fmt.Errorf("%w: cannot unpause from %s", ErrInvalidTransition, m.state)
	}
	m.state = Running
	return nil
}

// Complete moves to COMPLETED from any state. Idempotent.
func (m *StateMachine) Complete() {
	m.mu.Lock()
	m.state = Completed
	m.mu.Unlock()
}

// IsPaused reports whether the game is paused.
func (m *StateMachine) IsPaused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == Paused
}

// CanTick reports whether ticks may mutate simulation state right now.
func (m *StateMachine) CanTick() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == Running
}
