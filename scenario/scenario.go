// Package scenario loads battle setups from JSON and builds fully
// outfitted units from the hull template catalog.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/midwatch/naval-simulator/gametime"
	"github.com/midwatch/naval-simulator/geo"
	"github.com/midwatch/naval-simulator/internal/logging"
	"github.com/midwatch/naval-simulator/unit"
)

// Scenario is a validated battle setup ready to hand to the orchestrator.
type Scenario struct {
	Name        string
	StartTime   gametime.Time
	ScaleFactor float64
	Units       []UnitSpec
}

// UnitSpec is one unit entry from a scenario file.
type UnitSpec struct {
	Name        string
	Hull        string
	Faction     string
	Group       string
	Position    geo.Position
	Destination *geo.Position
	Speed       float64 // knots; 0 means the template cruise speed
}

// JSON shapes stay unexported so the file format can evolve.
type scenarioJSON struct {
	Name          string         `json:"name"`
	StartTime     string         `json:"start_time"` // RFC 3339
	TimeZoneHours float64        `json:"time_zone_offset_hours"`
	TimeZoneName  string         `json:"time_zone_name"`
	ScaleFactor   *float64       `json:"scale_factor"`
	Units         []unitSpecJSON `json:"units"`
}

type unitSpecJSON struct {
	Name        string        `json:"name"`
	Hull        string        `json:"hull"`
	Faction     string        `json:"faction"`
	Group       string        `json:"group"`
	X           float64       `json:"x"`
	Y           float64       `json:"y"`
	Destination *positionJSON `json:"destination"`
	Speed       float64       `json:"speed"`
}

type positionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Load reads a JSON scenario from r and validates it: the start time must
// parse and fall inside the valid game window, every unit needs a name, a
// faction, and a known hull designation.
func Load(r io.Reader) (*Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("scenario: decode failed: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339, payload.StartTime)
	if err != nil {
		return nil, fmt.Errorf("scenario: bad start_time %q: %w", payload.StartTime, err)
	}
	start, err := gametime.New(parsed, gametime.ZoneFromHours(payload.TimeZoneHours, payload.TimeZoneName))
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	scale := 1.0
	if payload.ScaleFactor != nil {
		if *payload.ScaleFactor <= 0 {
			return nil, fmt.Errorf("scenario: scale_factor must be positive, got %g", *payload.ScaleFactor)
		}
		scale = *payload.ScaleFactor
	}

	s := &Scenario{
		Name:        payload.Name,
		StartTime:   start,
		ScaleFactor: scale,
		Units:       make([]UnitSpec, 0, len(payload.Units)),
	}

	for i, ju := range payload.Units {
		if ju.Name == "" {
			return nil, fmt.Errorf("scenario: unit %d has no name", i)
		}
		if ju.Faction == "" {
			return nil, fmt.Errorf("scenario: unit %q has no faction", ju.Name)
		}
		if _, err := TemplateFor(ju.Hull); err != nil {
			return nil, fmt.Errorf("scenario: unit %q: %w", ju.Name, err)
		}

		spec := UnitSpec{
			Name:     ju.Name,
			Hull:     ju.Hull,
			Faction:  ju.Faction,
			Group:    ju.Group,
			Position: geo.Position{X: ju.X, Y: ju.Y},
			Speed:    ju.Speed,
		}
		if ju.Destination != nil {
			spec.Destination = &geo.Position{X: ju.Destination.X, Y: ju.Destination.Y}
		}
		s.Units = append(s.Units, spec)
	}

	return s, nil
}

// LoadFile reads a JSON scenario from disk.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// BuildUnits turns the scenario's unit specs into outfitted units with
// movement, detection, and attack modules attached. picture is the
// orchestrator's tactical view; rng drives the detection draws.
func (s *Scenario) BuildUnits(picture unit.TacticalPicture, rng *rand.Rand, log logging.Logger) ([]*unit.Unit, error) {
	if log == nil {
		log = logging.Noop()
	}

	units := make([]*unit.Unit, 0, len(s.Units))
	for _, spec := range s.Units {
		tpl, err := TemplateFor(spec.Hull)
		if err != nil {
			return nil, err
		}

		u := unit.New(tpl.attributes(spec.Name, spec.Group, spec.Faction, spec.Position))
		if spec.Destination != nil {
			u.SetDestination(*spec.Destination)
		}

		speed := spec.Speed
		if speed == 0 {
			speed = tpl.CruiseSpeed
		}
		if err := u.SetSpeed(speed); err != nil {
			return nil, fmt.Errorf("scenario: unit %q: %w", spec.Name, err)
		}

		modules := []struct {
			name   string
			module unit.Module
		}{
			{unit.ModuleMovement, unit.NewMovementModule(log)},
			{unit.ModuleDetection, unit.NewDetectionModule(picture, rng, s.ScaleFactor, log)},
			{unit.ModuleAttack, unit.NewAttackModule(log)},
		}
		for _, m := range modules {
			if err := u.AttachModule(m.name, m.module); err != nil {
				return nil, fmt.Errorf("scenario: unit %q: %w", spec.Name, err)
			}
		}

		units = append(units, u)
	}
	return units, nil
}
