// Package environment models ambient conditions that affect sensors: the
// day/night cycle at a position, the phase of the moon, and the visual
// detection range they imply.
package environment

// Illumination classifies the ambient light level at a time and place.
type Illumination int

const (
	// Day runs from the end of dawn to the start of dusk.
	Day Illumination = iota
	// Dawn is the half hour before sunrise through sunrise.
	Dawn
	// Dusk is sunset through the half hour after sunset.
	Dusk
	// Night is everything outside the dawn-to-dusk span.
	Night
)

var illuminationNames = map[Illumination]string{
	Day:   "DAY",
	Dawn:  "DAWN",
	Dusk:  "DUSK",
	Night: "NIGHT",
}

func (i Illumination) String() string {
	if name, ok := illuminationNames[i]; ok {
		return name
	}
	return "UNKNOWN"
}
