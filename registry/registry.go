// Package registry owns the collection of registered units and fans the
// per-tick pipeline out across them.
package registry

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/internal/logging"
	"github.com/midwatch/naval-simulator/unit"
)

// EventType indicates what kind of change happened in the registry.
type EventType int

const (
	EventUnitAdded EventType = iota
	EventUnitStateChanged
)

// Event is emitted to subscribers when something interesting happens.
type Event struct {
	Type   EventType
	UnitID uuid.UUID
	From   unit.State
	To     unit.State
}

// Registry is an in-memory, thread-safe store of units. Iteration order is
// insertion order, which keeps tick fan-out and target tie-breaking
// deterministic.
type Registry struct {
	mu sync.RWMutex

	units map[uuid.UUID]*unit.Unit
	order []*unit.Unit

	subs    []subscriber
	nextSub int
	log     logging.Logger
}

type subscriber struct {
	id int
	fn func(Event)
}

// NewRegistry constructs an empty registry.
func NewRegistry(log logging.Logger) *Registry {
	if log == nil {
		log = logging.Noop()
	}
	return &Registry{
		units: make(map[uuid.UUID]*unit.Unit),
		log:   log,
	}
}

// Add registers a unit. It returns an error if the ID already exists.
func (r *Registry) Add(u *unit.Unit) error {
	id := u.ID()

	r.mu.Lock()
	if _, exists := r.units[id]; exists {
		r.mu.Unlock()
		return fmt.Errorf("unit with ID %q already exists", id)
	}
	r.units[id] = u
	r.order = append(r.order, u)
	r.mu.Unlock()

	// Republish the unit's lifecycle transitions as registry events.
	u.OnStateChange(func(changed *unit.Unit, from, to unit.State) {
		r.publish(Event{
			Type:   EventUnitStateChanged,
			UnitID: changed.ID(),
			From:   from,
			To:     to,
		})
	})

	r.publish(Event{Type: EventUnitAdded, UnitID: id})
	return nil
}

// Get returns the unit with the given ID, or nil if not found.
func (r *Registry) Get(id uuid.UUID) *unit.Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.units[id]
}

// List returns a snapshot slice of all units in insertion order.
func (r *Registry) List() []*unit.Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*unit.Unit{}, r.order...)
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Tick runs one simulation step for every unit. A failing or panicking
// unit is logged and skipped; it never aborts the fan-out for the rest.
func (r *Registry) Tick(delta gametime.Duration) {
	for _, u := range r.List() {
		r.tickOne(u, delta)
	}
}

func (r *Registry) tickOne(u *unit.Unit, delta gametime.Duration) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error(context.Background(), "unit tick panicked",
				logging.String("unit", u.Name()),
				logging.Any("panic", rec),
				logging.String("stack", string(debug.Stack())))
		}
	}()

	if err := u.PerformTick(delta); err != nil {
		r.log.Error(context.Background(), "unit tick failed",
			logging.String("unit", u.Name()),
			logging.Err(err))
	}
}

// Subscribe registers a callback for registry events. It returns an
// unsubscribe function; calling it more than once is harmless.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextSub
	r.nextSub++
	r.subs = append(r.subs, subscriber{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, sub := range r.subs {
			if sub.id == id {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

// publish notifies subscribers outside the lock to avoid deadlocks.
func (r *Registry) publish(event Event) {
	r.mu.RLock()
	subs := append([]subscriber{}, r.subs...)
	r.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(event)
	}
}
