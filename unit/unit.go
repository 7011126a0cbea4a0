// Package unit defines the simulation's unit entity: an attribute record, a
// forward-only lifecycle state, and a table of named capability modules
// (movement, detection, attack) that the tick pipeline invokes in order.
package unit

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/geo"
)

// Capability module names.
const (
	ModuleMovement  = "movement"
	ModuleDetection = "detection"
	ModuleAttack    = "attack"
)

var (
	// ErrNegativeSpeed indicates a speed below zero.
	ErrNegativeSpeed = errors.New("speed cannot be negative")
	// ErrSpeedExceedsMax indicates a speed above the unit's maximum.
	ErrSpeedExceedsMax = errors.New("speed exceeds unit maximum")
	// ErrModuleExists indicates a capability name already attached.
	ErrModuleExists = errors.New("capability module already attached")
	// ErrEmptyGroup indicates a task force assignment with no name.
	ErrEmptyGroup = errors.New("task force name cannot be empty")
)

// Module is a pluggable per-unit capability. Init runs once at attach time;
// Tick runs once per simulation tick on the scheduler goroutine.
type Module interface {
	Init(u *Unit) error
	Tick(u *Unit, delta gametime.Duration) error
}

type namedModule struct {
	name   string
	module Module
}

// StateListener observes lifecycle transitions. Listeners run outside the
// unit's lock, on whichever goroutine triggered the transition.
type StateListener func(u *Unit, from, to State)

// Unit is one entity in the simulation. All accessors are safe for
// concurrent use; mutation happens on the tick goroutine, reads may come
// from caller goroutines serving status queries.
type Unit struct {
	mu    sync.RWMutex
	attrs Attributes
	state State

	// Attach order is tick order.
	modules []namedModule

	contacts  []*Unit
	listeners []StateListener
}

// New constructs an operating unit from its attributes. Health and fuel
// start at their maxima when left zero.
func New(attrs Attributes) *Unit {
	if attrs.ID == uuid.Nil {
		attrs.ID = uuid.New()
	}
	if attrs.CurrentHealth == 0 && attrs.MaxHealth > 0 {
		attrs.CurrentHealth = attrs.MaxHealth
	}
	if attrs.CurrentFuel == 0 && attrs.MaxFuel > 0 {
		attrs.CurrentFuel = attrs.MaxFuel
	}
	return &Unit{attrs: attrs, state: Operating}
}

// ID returns the unit's identifier.
func (u *Unit) ID() uuid.UUID {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.ID
}

// Name returns the unit's display name.
func (u *Unit) Name() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.Name
}

// Faction returns the unit's side.
func (u *Unit) Faction() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.Faction
}

// Group returns the task force the unit is assigned to, empty if unassigned.
func (u *Unit) Group() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.Group
}

// AssignGroup moves the unit to the named task force.
func (u *Unit) AssignGroup(name string) error {
	if name == "" {
		return ErrEmptyGroup
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.attrs.Group = name
	return nil
}

// Category returns the unit's class.
func (u *Unit) Category() Category {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.Category
}

// State returns the current lifecycle state.
func (u *Unit) State() State {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.state
}

// Position returns the unit's plane position.
func (u *Unit) Position() geo.Position {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.Position
}

// SetPosition moves the unit.
func (u *Unit) SetPosition(p geo.Position) {
	u.mu.Lock()
	u.attrs.Position = p
	u.mu.Unlock()
}

// Destination returns the movement target, if any.
func (u *Unit) Destination() (geo.Position, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.attrs.Destination == nil {
		return geo.Position{}, false
	}
	return *u.attrs.Destination, true
}

// SetDestination orders the unit toward a plane position.
func (u *Unit) SetDestination(p geo.Position) {
	u.mu.Lock()
	u.attrs.Destination = &p
	u.mu.Unlock()
}

// ClearDestination cancels any movement order.
func (u *Unit) ClearDestination() {
	u.mu.Lock()
	u.attrs.Destination = nil
	u.mu.Unlock()
}

// Speed returns the current speed in knots.
func (u *Unit) Speed() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.CurrentSpeed
}

// MaxSpeed returns the maximum speed in knots.
func (u *Unit) MaxSpeed() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.MaxSpeed
}

// SetSpeed sets the current speed in knots, rejecting negative values and
// values above the unit maximum.
func (u *Unit) SetSpeed(knots float64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if knots < 0 {
		return fmt.Errorf("%w: %g", ErrNegativeSpeed, knots)
	}
	if knots > u.attrs.MaxSpeed {
		return fmt.Errorf("%w: %g > %g", ErrSpeedExceedsMax, knots, u.attrs.MaxSpeed)
	}
	u.attrs.CurrentSpeed = knots
	return nil
}

// Health returns the current health.
func (u *Unit) Health() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.CurrentHealth
}

// Fuel returns the current fuel.
func (u *Unit) Fuel() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.CurrentFuel
}

// ConsumeFuel burns up to amount of fuel and returns how much was actually
// consumed. Fuel never goes below zero.
func (u *Unit) ConsumeFuel(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	consumed := amount
	if consumed > u.attrs.CurrentFuel {
		consumed = u.attrs.CurrentFuel
	}
	u.attrs.CurrentFuel -= consumed
	return consumed
}

// DetectionRange returns the base visual detection range.
func (u *Unit) DetectionRange() geo.NauticalMiles {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.DetectionRange
}

// DetectionChance returns the probability a contact inside range is
// actually spotted this tick.
func (u *Unit) DetectionChance() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.attrs.DetectionChance
}

// HasWeapons reports whether the unit can apply damage. Always true for
// now; weapon loadouts are a future refinement.
func (u *Unit) HasWeapons() bool { return true }

// Snapshot returns a copy of the unit's attributes for status surfaces.
func (u *Unit) Snapshot() Attributes {
	u.mu.RLock()
	defer u.mu.RUnlock()
	attrs := u.attrs
	if u.attrs.Destination != nil {
		dest := *u.attrs.Destination
		attrs.Destination = &dest
	}
	return attrs
}

// TakeDamage reduces health by amount, floored at zero, and reports whether
// this call pushed the unit from OPERATING to SINKING. Non-positive amounts
// do nothing.
func (u *Unit) TakeDamage(amount float64) bool {
	if amount <= 0 {
		return false
	}

	u.mu.Lock()
	u.attrs.CurrentHealth -= amount
	if u.attrs.CurrentHealth < 0 {
		u.attrs.CurrentHealth = 0
	}
	sank := u.attrs.CurrentHealth == 0 && u.state == Operating
	var from State
	if sank {
		from = u.state
		u.state = Sinking
	}
	listeners := append([]StateListener{}, u.listeners...)
	u.mu.Unlock()

	if sank {
		for _, fn := range listeners {
			fn(u, from, Sinking)
		}
	}
	return sank
}

// TransitionTo forces a lifecycle transition, failing with
// ErrInvalidStateTransition when the move is not allowed.
func (u *Unit) TransitionTo(to State) error {
	u.mu.Lock()
	from := u.state
	if !validTransition(from, to) {
		u.mu.Unlock()
		return transitionError(from, to)
	}
	u.state = to
	listeners := append([]StateListener{}, u.listeners...)
	u.mu.Unlock()

	for _, fn := range listeners {
		fn(u, from, to)
	}
	return nil
}

// OnStateChange registers a lifecycle transition listener.
func (u *Unit) OnStateChange(fn StateListener) {
	u.mu.Lock()
	u.listeners = append(u.listeners, fn)
	u.mu.Unlock()
}

// AttachModule wires a capability module under a name and runs its Init.
// Attach order is tick order.
func (u *Unit) AttachModule(name string, m Module) error {
	u.mu.Lock()
	for _, nm := range u.modules {
		if nm.name == name {
			u.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrModuleExists, name)
		}
	}
	u.modules = append(u.modules, namedModule{name: name, module: m})
	u.mu.Unlock()

	return m.Init(u)
}

// ModuleByName returns the attached module with the given name, or nil.
func (u *Unit) ModuleByName(name string) Module {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, nm := range u.modules {
		if nm.name == name {
			return nm.module
		}
	}
	return nil
}

// SetContacts records the units detected this tick.
func (u *Unit) SetContacts(contacts []*Unit) {
	u.mu.Lock()
	u.contacts = contacts
	u.mu.Unlock()
}

// Contacts returns a snapshot of the units detected on the last tick.
func (u *Unit) Contacts() []*Unit {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return append([]*Unit{}, u.contacts...)
}

// PerformTick runs the unit's capability modules in attach order. Units not
// in the OPERATING state skip the pipeline entirely. The first module error
// aborts the rest of this unit's tick and is returned to the caller.
func (u *Unit) PerformTick(delta gametime.Duration) error {
	if u.State() != Operating {
		return nil
	}

	u.mu.RLock()
	modules := append([]namedModule{}, u.modules...)
	u.mu.RUnlock()

	for _, nm := range modules {
		if err := nm.module.Tick(u, delta); err != nil {
			return fmt.Errorf("%s module: %w", nm.name, err)
		}
	}
	return nil
}

func (u *Unit) String() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return fmt.Sprintf("%s %s (%s)", u.attrs.HullDesignation, u.attrs.Name, u.state)
}
