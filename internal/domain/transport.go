package domain

import "fmt"

// TransportMode is how the player travels to a course.
type TransportMode string

const (
	ModeWalk    TransportMode = "walk"
	ModeBike    TransportMode = "bike"
	ModeCar     TransportMode = "car"
	ModeTransit TransportMode = "transit"
)

// speeds holds the fixed average speed of every mode in km/h.
var speeds = map[TransportMode]float64{
	ModeWalk:    5,
	ModeBike:    15,
	ModeCar:     35,
	ModeTransit: 12,
}

// TransportModes lists every supported mode in display order.
func TransportModes() []TransportMode {
	return []TransportMode{ModeWalk, ModeBike, ModeCar, ModeTransit}
}

// SpeedKmh returns the average speed of the mode. Unknown modes report 0.
func (m TransportMode) SpeedKmh() float64 {
	return speeds[m]
}

// Valid reports whether m is one of the four supported modes.
func (m TransportMode) Valid() bool {
	_, ok := speeds[m]
	return ok
}

// ParseTransportMode converts user input into a TransportMode.
// Returns ErrValidation for anything outside the speed table.
func ParseTransportMode(s string) (TransportMode, error) {
	m := TransportMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown transport mode %q", ErrValidation, s)
	}
	return m, nil
}
