package unit

import (
	"testing"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/geo"
)

func TestLegitimateTargetsFilter(t *testing.T) {
	attacker := newShip("Maury", "USN", geo.Position{})
	friend := newShip("Gwin", "USN", geo.Position{})
	enemy := newShip("Suzukaze", "IJN", geo.Position{})
	sinking := newShip("Murasame", "IJN", geo.Position{})
	sinking.TakeDamage(100)
	sunk := newShip("Yura", "IJN", geo.Position{})
	sunk.TakeDamage(100)
	if err := sunk.TransitionTo(Sunk); err != nil {
		t.Fatalf("TransitionTo(Sunk): %v", err)
	}

	got := LegitimateTargets(attacker, []*Unit{friend, enemy, sinking, sunk})
	if len(got) != 2 || got[0] != enemy || got[1] != sinking {
		t.Errorf("LegitimateTargets = %v, want [enemy sinking]", got)
	}
}

func TestChooseTargetNearest(t *testing.T) {
	attacker := newShip("Benham", "USN", geo.Position{X: 0, Y: 0})
	near := newShip("Samidare", "IJN", geo.Position{X: 0, Y: 5})
	far := newShip("Harusame", "IJN", geo.Position{X: 0, Y: 50})

	if got := ChooseTarget(attacker, []*Unit{far, near}); got != near {
		t.Errorf("ChooseTarget = %v, want the nearer unit", got)
	}
	if got := ChooseTarget(attacker, nil); got != nil {
		t.Errorf("ChooseTarget(nil) = %v, want nil", got)
	}
}

func TestChooseTargetTieGoesToFirstContact(t *testing.T) {
	attacker := newShip("Stack", "USN", geo.Position{X: 0, Y: 0})
	east := newShip("Yugure", "IJN", geo.Position{X: 5, Y: 0})
	west := newShip("Ariake", "IJN", geo.Position{X: -5, Y: 0})

	if got := ChooseTarget(attacker, []*Unit{east, west}); got != east {
		t.Errorf("tie broken to %v, want first contact", got)
	}
	if got := ChooseTarget(attacker, []*Unit{west, east}); got != west {
		t.Errorf("tie broken to %v, want first contact", got)
	}
}

func TestAttackEngagesNearestEnemy(t *testing.T) {
	attacker := newShip("Shaw", "USN", geo.Position{X: 0, Y: 0})
	enemy := newShip("Akigumo", "IJN", geo.Position{X: 0, Y: 5})
	friend := newShip("Conyngham", "USN", geo.Position{X: 0, Y: 1})
	attacker.SetContacts([]*Unit{friend, enemy})

	m := NewAttackModule(nil)
	if err := m.Tick(attacker, gametime.FromMinutes(1)); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := enemy.Health(); got != 100-BaseDamage {
		t.Errorf("enemy health = %g, want %g", got, 100-BaseDamage)
	}
	if got := friend.Health(); got != 100 {
		t.Errorf("friendly health = %g, friendly fire applied", got)
	}
}

func TestAttackNoTargetNoop(t *testing.T) {
	attacker := newShip("Ralph Talbot", "USN", geo.Position{})
	m := NewAttackModule(nil)
	if err := m.Tick(attacker, gametime.FromMinutes(1)); err != nil {
		t.Fatalf("Tick with no contacts: %v", err)
	}

	friend := newShip("Patterson", "USN", geo.Position{X: 1, Y: 1})
	attacker.SetContacts([]*Unit{friend})
	if err := m.Tick(attacker, gametime.FromMinutes(1)); err != nil {
		t.Fatalf("Tick with only friendlies: %v", err)
	}
	if got := friend.Health(); got != 100 {
		t.Errorf("friendly health = %g, want 100", got)
	}
}

func TestAttackSinksTarget(t *testing.T) {
	attacker := newShip("Bagley", "USN", geo.Position{X: 0, Y: 0})
	enemy := newShip("Hatsuyuki", "IJN", geo.Position{X: 0, Y: 3})
	enemy.TakeDamage(90) // one hit from sinking
	attacker.SetContacts([]*Unit{enemy})

	m := NewAttackModule(nil)
	if err := m.Tick(attacker, gametime.FromMinutes(1)); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := enemy.State(); got != Sinking {
		t.Errorf("enemy state = %v, want SINKING", got)
	}
	if got := enemy.Health(); got != 0 {
		t.Errorf("enemy health = %g, want 0", got)
	}
}
