package unit

import (
	"github.com/google/uuid"

	"github.com/midwatch/naval-simulator/geo"
)

// Category is the broad class of a unit.
type Category int

const (
	Destroyer Category = iota
	Cruiser
	Battleship
	Carrier
	Fighter
	DiveBomber
	TorpedoBomber
	Transport
	NavalBase
)

var categoryNames = map[Category]string{
	Destroyer:     "DESTROYER",
	Cruiser:       "CRUISER",
	Battleship:    "BATTLESHIP",
	Carrier:       "CARRIER",
	Fighter:       "FIGHTER",
	DiveBomber:    "DIVE_BOMBER",
	TorpedoBomber: "TORPEDO_BOMBER",
	Transport:     "TRANSPORT",
	NavalBase:     "NAVAL_BASE",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Attributes is the full mutable record for one unit. It is owned
// exclusively by its Unit; everything else reads it through the Unit's
// accessors.
type Attributes struct {
	ID              uuid.UUID
	Name            string
	HullDesignation string
	Category        Category
	Group           string
	Classification  string
	Faction         string

	Position    geo.Position
	Destination *geo.Position

	// Speeds in knots.
	MaxSpeed     float64
	CruiseSpeed  float64
	CurrentSpeed float64

	MaxHealth     float64
	CurrentHealth float64

	MaxFuel     float64
	CurrentFuel float64

	Crew    int
	Tonnage float64

	// Base visual sensor performance, before environment adjustment.
	DetectionRange  geo.NauticalMiles
	DetectionChance float64
}
