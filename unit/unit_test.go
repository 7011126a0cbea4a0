package unit

import (
	"errors"
	"testing"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/geo"
)

func newShip(name, faction string, pos geo.Position) *Unit {
	return New(Attributes{
		Name:            name,
		HullDesignation: "DD",
		Category:        Destroyer,
		Faction:         faction,
		Position:        pos,
		MaxSpeed:        35,
		MaxHealth:       100,
		MaxFuel:         1000,
		DetectionRange:  geo.MustNauticalMiles(20),
		DetectionChance: 1,
	})
}

func TestNewFillsDefaults(t *testing.T) {
	u := newShip("Arashi", "IJN", geo.Position{})
	if u.ID().String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("New did not assign an ID")
	}
	if got := u.Health(); got != 100 {
		t.Errorf("Health() = %g, want max 100", got)
	}
	if got := u.Fuel(); got != 1000 {
		t.Errorf("Fuel() = %g, want max 1000", got)
	}
	if got := u.State(); got != Operating {
		t.Errorf("State() = %v, want OPERATING", got)
	}
}

func TestSetSpeedValidation(t *testing.T) {
	u := newShip("Cushing", "USN", geo.Position{})

	if err := u.SetSpeed(-1); !errors.Is(err, ErrNegativeSpeed) {
		t.Errorf("SetSpeed(-1) error = %v, want ErrNegativeSpeed", err)
	}
	if err := u.SetSpeed(36); !errors.Is(err, ErrSpeedExceedsMax) {
		t.Errorf("SetSpeed(36) error = %v, want ErrSpeedExceedsMax", err)
	}
	if got := u.Speed(); got != 0 {
		t.Errorf("Speed() after rejected sets = %g, want 0", got)
	}

	if err := u.SetSpeed(35); err != nil {
		t.Fatalf("SetSpeed(35): %v", err)
	}
	if got := u.Speed(); got != 35 {
		t.Errorf("Speed() = %g, want 35", got)
	}
}

func TestTakeDamageFloorsAtZero(t *testing.T) {
	u := newShip("Laffey", "USN", geo.Position{})

	if sank := u.TakeDamage(30); sank {
		t.Error("30 damage on 100 health reported sinking")
	}
	if got := u.Health(); got != 70 {
		t.Errorf("Health() = %g, want 70", got)
	}

	if sank := u.TakeDamage(500); !sank {
		t.Error("lethal damage did not report sinking")
	}
	if got := u.Health(); got != 0 {
		t.Errorf("Health() = %g, want floor 0", got)
	}
	if got := u.State(); got != Sinking {
		t.Errorf("State() = %v, want SINKING", got)
	}

	// Further damage on a sinking unit changes nothing.
	if sank := u.TakeDamage(10); sank {
		t.Error("damage on sinking unit reported sinking again")
	}
	if got := u.Health(); got != 0 {
		t.Errorf("Health() = %g, want 0", got)
	}
}

func TestTakeDamageIgnoresNonPositive(t *testing.T) {
	u := newShip("Sterett", "USN", geo.Position{})
	u.TakeDamage(-5)
	u.TakeDamage(0)
	if got := u.Health(); got != 100 {
		t.Errorf("Health() = %g, want untouched 100", got)
	}
}

func TestStateTransitions(t *testing.T) {
	u := newShip("Yudachi", "IJN", geo.Position{})

	if err := u.TransitionTo(Sunk); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("OPERATING->SUNK error = %v, want ErrInvalidStateTransition", err)
	}
	if err := u.TransitionTo(Sinking); err != nil {
		t.Fatalf("OPERATING->SINKING: %v", err)
	}
	if err := u.TransitionTo(Operating); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("SINKING->OPERATING error = %v, want ErrInvalidStateTransition", err)
	}
	if err := u.TransitionTo(Sunk); err != nil {
		t.Fatalf("SINKING->SUNK: %v", err)
	}
	if got := u.State(); got != Sunk {
		t.Errorf("State() = %v, want SUNK", got)
	}
}

func TestStateListenerFires(t *testing.T) {
	u := newShip("Barton", "USN", geo.Position{})

	var events []State
	u.OnStateChange(func(_ *Unit, from, to State) {
		events = append(events, to)
	})

	u.TakeDamage(100)
	if err := u.TransitionTo(Sunk); err != nil {
		t.Fatalf("TransitionTo(Sunk): %v", err)
	}

	if len(events) != 2 || events[0] != Sinking || events[1] != Sunk {
		t.Errorf("listener events = %v, want [SINKING SUNK]", events)
	}
}

func TestConsumeFuelClamps(t *testing.T) {
	u := newShip("Aaron Ward", "USN", geo.Position{})

	if got := u.ConsumeFuel(300); got != 300 {
		t.Errorf("ConsumeFuel(300) = %g, want 300", got)
	}
	if got := u.ConsumeFuel(5000); got != 700 {
		t.Errorf("ConsumeFuel(5000) = %g, want remaining 700", got)
	}
	if got := u.Fuel(); got != 0 {
		t.Errorf("Fuel() = %g, want 0", got)
	}
}

type countingModule struct {
	ticks int
}

func (m *countingModule) Init(*Unit) error { return nil }
func (m *countingModule) Tick(*Unit, gametime.Duration) error {
	m.ticks++
	return nil
}

func TestPerformTickGatedByState(t *testing.T) {
	u := newShip("Monssen", "USN", geo.Position{})
	counter := &countingModule{}
	if err := u.AttachModule("counter", counter); err != nil {
		t.Fatalf("AttachModule: %v", err)
	}

	if err := u.PerformTick(gametime.FromMinutes(1)); err != nil {
		t.Fatalf("PerformTick: %v", err)
	}
	if counter.ticks != 1 {
		t.Fatalf("ticks = %d, want 1", counter.ticks)
	}

	u.TakeDamage(100) // now SINKING
	if err := u.PerformTick(gametime.FromMinutes(1)); err != nil {
		t.Fatalf("PerformTick while sinking: %v", err)
	}
	if counter.ticks != 1 {
		t.Errorf("sinking unit still ticked its modules: %d", counter.ticks)
	}
}

func TestAttachModuleRejectsDuplicate(t *testing.T) {
	u := newShip("Fletcher", "USN", geo.Position{})
	if err := u.AttachModule("counter", &countingModule{}); err != nil {
		t.Fatalf("AttachModule: %v", err)
	}
	if err := u.AttachModule("counter", &countingModule{}); !errors.Is(err, ErrModuleExists) {
		t.Errorf("duplicate attach error = %v, want ErrModuleExists", err)
	}
	if u.ModuleByName("counter") == nil {
		t.Error("ModuleByName returned nil for attached module")
	}
}

func TestAssignGroup(t *testing.T) {
	u := newShip("Laffey", "USN", geo.Position{})
	if err := u.AssignGroup("TF-16"); err != nil {
		t.Fatalf("AssignGroup: %v", err)
	}
	if got := u.Group(); got != "TF-16" {
		t.Errorf("Group = %q, want %q", got, "TF-16")
	}
	if err := u.AssignGroup(""); !errors.Is(err, ErrEmptyGroup) {
		t.Errorf("empty assignment error = %v, want ErrEmptyGroup", err)
	}
	if got := u.Group(); got != "TF-16" {
		t.Errorf("Group after rejected assignment = %q, want %q", got, "TF-16")
	}
}
