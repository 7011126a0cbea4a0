package scenario

import (
	"fmt"
	"strings"

	"github.com/midwatch/naval-simulator/geo"
	"github.com/midwatch/naval-simulator/unit"
)

// Template is the attribute catalog entry for one hull type. Speeds are
// knots; health, fuel and tonnage are abstract points.
type Template struct {
	HullDesignation string
	Category        unit.Category
	Classification  string
	MaxSpeed        float64
	CruiseSpeed     float64
	MaxHealth       float64
	MaxFuel         float64
	Crew            int
	Tonnage         float64
	DetectionRange  float64 // nautical miles
	DetectionChance float64
}

// templates maps hull designation to the catalog entry. Aircraft carry the
// best lookouts, capital ships the toughest hulls.
var templates = map[string]Template{
	"DD": {
		HullDesignation: "DD", Category: unit.Destroyer, Classification: "destroyer",
		MaxSpeed: 35, CruiseSpeed: 15, MaxHealth: 100, MaxFuel: 1000,
		Crew: 200, Tonnage: 2100, DetectionRange: 15, DetectionChance: 0.75,
	},
	"CA": {
		HullDesignation: "CA", Category: unit.Cruiser, Classification: "heavy cruiser",
		MaxSpeed: 33, CruiseSpeed: 15, MaxHealth: 150, MaxFuel: 1200,
		Crew: 900, Tonnage: 13000, DetectionRange: 18, DetectionChance: 0.75,
	},
	"BB": {
		HullDesignation: "BB", Category: unit.Battleship, Classification: "battleship",
		MaxSpeed: 28, CruiseSpeed: 14, MaxHealth: 250, MaxFuel: 1500,
		Crew: 2200, Tonnage: 38000, DetectionRange: 20, DetectionChance: 0.75,
	},
	"CV": {
		HullDesignation: "CV", Category: unit.Carrier, Classification: "fleet carrier",
		MaxSpeed: 33, CruiseSpeed: 15, MaxHealth: 175, MaxFuel: 2000,
		Crew: 2200, Tonnage: 25000, DetectionRange: 20, DetectionChance: 0.75,
	},
	"VF": {
		HullDesignation: "VF", Category: unit.Fighter, Classification: "fighter",
		MaxSpeed: 280, CruiseSpeed: 160, MaxHealth: 50, MaxFuel: 300,
		Crew: 1, Tonnage: 3, DetectionRange: 30, DetectionChance: 0.9,
	},
	"VB": {
		HullDesignation: "VB", Category: unit.DiveBomber, Classification: "dive bomber",
		MaxSpeed: 240, CruiseSpeed: 140, MaxHealth: 60, MaxFuel: 400,
		Crew: 2, Tonnage: 5, DetectionRange: 30, DetectionChance: 0.9,
	},
	"VT": {
		HullDesignation: "VT", Category: unit.TorpedoBomber, Classification: "torpedo bomber",
		MaxSpeed: 220, CruiseSpeed: 130, MaxHealth: 70, MaxFuel: 450,
		Crew: 3, Tonnage: 6, DetectionRange: 30, DetectionChance: 0.9,
	},
	"AP": {
		HullDesignation: "AP", Category: unit.Transport, Classification: "transport",
		MaxSpeed: 16, CruiseSpeed: 12, MaxHealth: 80, MaxFuel: 1800,
		Crew: 250, Tonnage: 8000, DetectionRange: 12, DetectionChance: 0.6,
	},
	"NB": {
		HullDesignation: "NB", Category: unit.NavalBase, Classification: "naval base",
		MaxSpeed: 0, CruiseSpeed: 0, MaxHealth: 500, MaxFuel: 5000,
		Crew: 500, Tonnage: 0, DetectionRange: 25, DetectionChance: 0.8,
	},
}

// TemplateFor returns the catalog entry for a hull designation.
func TemplateFor(hull string) (Template, error) {
	tpl, ok := templates[strings.ToUpper(strings.TrimSpace(hull))]
	if !ok {
		return Template{}, fmt.Errorf("unknown hull designation %q", hull)
	}
	return tpl, nil
}

// HullDesignations lists the known hull types, for error messages and
// validation surfaces.
func HullDesignations() []string {
	hulls := make([]string, 0, len(templates))
	for hull := range templates {
		hulls = append(hulls, hull)
	}
	return hulls
}

// attributes builds an attribute record from the template plus the
// per-unit fields a scenario supplies.
func (t Template) attributes(name, group, faction string, pos geo.Position) unit.Attributes {
	return unit.Attributes{
		Name:            name,
		HullDesignation: t.HullDesignation,
		Category:        t.Category,
		Group:           group,
		Classification:  t.Classification,
		Faction:         faction,
		Position:        pos,
		MaxSpeed:        t.MaxSpeed,
		CruiseSpeed:     t.CruiseSpeed,
		MaxHealth:       t.MaxHealth,
		MaxFuel:         t.MaxFuel,
		Crew:            t.Crew,
		Tonnage:         t.Tonnage,
		DetectionRange:  geo.MustNauticalMiles(t.DetectionRange),
		DetectionChance: t.DetectionChance,
	}
}
