package unit

import (
	"errors"
	"fmt"
)

// State is a unit's lifecycle phase.
type State int

const (
	// Operating units run the full tick pipeline and fight at full capacity.
	Operating State = iota
	// Sinking units are combat-ineffective but still present and still
	// targetable. A unit enters this state when its health reaches zero.
	Sinking
	// Sunk units are out of play.
	Sunk
)

var stateNames = map[State]string{
	Operating: "OPERATING",
	Sinking:   "SINKING",
	Sunk:      "SUNK",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ErrInvalidStateTransition indicates a lifecycle transition that the state
// machine does not allow.
var ErrInvalidStateTransition = errors.New("invalid unit state transition")

// Lifecycle only moves forward: OPERATING -> SINKING -> SUNK.
var allowedTransitions = map[State][]State{
	Operating: {Sinking},
	Sinking:   {Sunk},
}

func validTransition(from, to State) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func transitionError(from, to State) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, from, to)
}
