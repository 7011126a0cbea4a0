package unit

import (
	"context"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/geo"
	"github.com/midwatch/naval-simulator/internal/logging"
)

// BaseDamage is the flat damage applied per engagement. Weapon and
// effectiveness modelling will replace this; see Effectiveness.
const BaseDamage = 10.0

// AttackModule engages the nearest legitimate target among the unit's
// current contacts.
type AttackModule struct {
	log logging.Logger
}

// NewAttackModule constructs an attack capability.
func NewAttackModule(log logging.Logger) *AttackModule {
	if log == nil {
		log = logging.Noop()
	}
	return &AttackModule{log: log}
}

// Init implements Module.
func (m *AttackModule) Init(u *Unit) error { return nil }

// Tick picks one target from the unit's contacts and applies damage to it.
// No legitimate target means no action.
func (m *AttackModule) Tick(u *Unit, delta gametime.Duration) error {
	if !u.HasWeapons() {
		return nil
	}

	target := ChooseTarget(u, LegitimateTargets(u, u.Contacts()))
	if target == nil {
		return nil
	}

	damage := m.Effectiveness(u, target)
	sank := target.TakeDamage(damage)

	m.log.Info(context.Background(), "unit engaged target",
		logging.String("unit", u.Name()),
		logging.String("target", target.Name()),
		logging.Float("damage", damage),
		logging.Float("target_health", target.Health()))
	if sank {
		m.log.Info(context.Background(), "target is sinking",
			logging.String("target", target.Name()))
	}
	return nil
}

// Effectiveness computes the damage u deals to target. Currently a flat
// value regardless of the pairing.
func (m *AttackModule) Effectiveness(u, target *Unit) float64 {
	return BaseDamage
}

// LegitimateTargets filters contacts down to units the attacker may
// engage: different faction and not yet sunk. Contact order is preserved.
func LegitimateTargets(attacker *Unit, contacts []*Unit) []*Unit {
	var targets []*Unit
	for _, c := range contacts {
		if c.Faction() == attacker.Faction() {
			continue
		}
		if c.State() == Sunk {
			continue
		}
		targets = append(targets, c)
	}
	return targets
}

// ChooseTarget returns the target nearest to the attacker by plane
// distance. Ties go to the earliest contact. Nil when there are no
// targets.
func ChooseTarget(attacker *Unit, targets []*Unit) *Unit {
	var (
		best     *Unit
		bestDist geo.NauticalMiles
	)
	for _, t := range targets {
		dist := geo.CartesianDistance(attacker.Position(), t.Position())
		if best == nil || dist.Less(bestDist) {
			best = t
			bestDist = dist
		}
	}
	return best
}
