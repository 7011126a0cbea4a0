package unit

import (
	"context"
	"math"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/geo"
	"github.com/midwatch/naval-simulator/internal/logging"
)

// arrivalThresholdNM is how close to the destination counts as arrived.
const arrivalThresholdNM = 0.1

// MovementModule advances a unit toward its destination using plane
// kinematics. Speeds are knots and plane distances are treated as nautical
// miles, so one hour of game time at speed 10 covers 10 plane units.
type MovementModule struct {
	log logging.Logger
}

// NewMovementModule constructs a movement capability.
func NewMovementModule(log logging.Logger) *MovementModule {
	if log == nil {
		log = logging.Noop()
	}
	return &MovementModule{log: log}
}

// Init implements Module.
func (m *MovementModule) Init(u *Unit) error { return nil }

// Tick moves the unit toward its destination, snapping onto it and
// clearing the order once within arrivalThresholdNM. A unit with no
// destination, no speed, or dry tanks holds position.
func (m *MovementModule) Tick(u *Unit, delta gametime.Duration) error {
	dest, ok := u.Destination()
	if !ok {
		return nil
	}

	travel := u.Speed() * delta.Hours()
	if travel <= 0 {
		return nil
	}
	if u.Fuel() <= 0 {
		m.log.Debug(context.Background(), "unit out of fuel, holding position",
			logging.String("unit", u.Name()))
		return nil
	}

	pos := u.Position()
	remaining := geo.CartesianDistance(pos, dest)
	if remaining.Value() <= travel {
		m.arrive(u, dest, remaining.Value())
		return nil
	}

	rad := geo.CartesianBearing(pos, dest).Radians()
	next := geo.Position{
		X: pos.X + travel*math.Sin(rad),
		Y: pos.Y + travel*math.Cos(rad),
	}
	if geo.CartesianDistance(next, dest).Value() <= arrivalThresholdNM {
		m.arrive(u, dest, remaining.Value())
		return nil
	}

	u.SetPosition(next)
	u.ConsumeFuel(travel)
	return nil
}

func (m *MovementModule) arrive(u *Unit, dest geo.Position, traveled float64) {
	u.SetPosition(dest)
	u.ClearDestination()
	u.ConsumeFuel(traveled)
	m.log.Debug(context.Background(), "unit arrived at destination",
		logging.String("unit", u.Name()),
		logging.Float("x", dest.X),
		logging.Float("y", dest.Y))
}
