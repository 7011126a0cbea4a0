package unit

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/midwatch/naval-simulator/environment"
	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/geo"
	"github.com/midwatch/naval-simulator/internal/logging"
)

// TacticalPicture is the detection module's view of the game: every
// registered unit and the current game time. The orchestrator implements
// it.
type TacticalPicture interface {
	AllUnits() []*Unit
	CurrentTime() gametime.Time
}

// DetectionModule scans every other unit, keeping those within the
// environment-adjusted visual range that pass a probability draw. Results
// land on the unit's contact list for the attack module.
type DetectionModule struct {
	picture     TacticalPicture
	cycle       environment.DayNightCycle
	rng         *rand.Rand
	scaleFactor float64
	log         logging.Logger
}

// NewDetectionModule constructs a detection capability. A nil rng gets a
// time-seeded source. scaleFactor maps plane coordinates to geographic
// degrees for the surface-distance checks.
func NewDetectionModule(picture TacticalPicture, rng *rand.Rand, scaleFactor float64, log logging.Logger) *DetectionModule {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = logging.Noop()
	}
	return &DetectionModule{
		picture:     picture,
		rng:         rng,
		scaleFactor: scaleFactor,
		log:         log,
	}
}

// Init implements Module.
func (m *DetectionModule) Init(u *Unit) error { return nil }

// Tick rebuilds the unit's contact list. A contact whose surface-distance
// computation fails to converge is treated as not detected this tick; the
// rest of the scan continues.
func (m *DetectionModule) Tick(u *Unit, delta gametime.Duration) error {
	now := m.picture.CurrentTime()
	effective := m.effectiveRange(u, now)

	var contacts []*Unit
	for _, other := range m.picture.AllUnits() {
		if other == u || other.ID() == u.ID() {
			continue
		}

		dist, err := geo.SurfaceDistance(u.Position(), other.Position(), m.scaleFactor)
		if err != nil {
			if errors.Is(err, geo.ErrNoConvergence) {
				m.log.Warn(context.Background(), "surface distance did not converge, skipping contact",
					logging.String("unit", u.Name()),
					logging.String("contact", other.Name()))
				continue
			}
			return err
		}

		if dist.LessOrEqual(effective) && m.rng.Float64() <= u.DetectionChance() {
			contacts = append(contacts, other)
		}
	}

	u.SetContacts(contacts)
	return nil
}

// effectiveRange applies the day/night cycle to the unit's base range.
// When the unit's plane position does not map to valid geographic
// coordinates the base range is used unmodified.
func (m *DetectionModule) effectiveRange(u *Unit, now gametime.Time) geo.NauticalMiles {
	base := u.DetectionRange()
	pos, err := geo.GeoFromPosition(u.Position(), m.scaleFactor)
	if err != nil {
		m.log.Warn(context.Background(), "unit position off the map, using base detection range",
			logging.String("unit", u.Name()), logging.Err(err))
		return base
	}
	return m.cycle.DetectionRangeAt(now, pos, base)
}
