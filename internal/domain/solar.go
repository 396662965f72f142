package domain

import "time"

// SolarAngle is the sun's elevation relative to the horizon in degrees.
// 0 is the horizon crossing, negative values are below it (twilight bands),
// positive values are above it (golden hour).
type SolarAngle float64

// Canonical angles for which the ephemeris supplies exact instants.
const (
	AngleGoldenHour   SolarAngle = 6
	AngleHorizon      SolarAngle = 0
	AngleCivil        SolarAngle = -6
	AngleNautical     SolarAngle = -12
	AngleAstronomical SolarAngle = -18
)

// Preset is a named angle offered to the player as a one-click choice.
type Preset struct {
	Name  string     `json:"name"`
	Angle SolarAngle `json:"angle"`
}

// Presets returns the preset angles in display order.
func Presets() []Preset {
	return []Preset{
		{Name: "golden hour", Angle: AngleGoldenHour},
		{Name: "sunset", Angle: AngleHorizon},
		{Name: "civil twilight", Angle: AngleCivil},
		{Name: "nautical twilight", Angle: AngleNautical},
		{Name: "astronomical twilight", Angle: AngleAstronomical},
	}
}

// Direction selects the evening (sunset-ward) or morning (sunrise-ward) family
// of solar events.
type Direction string

const (
	Evening Direction = "evening"
	Morning Direction = "morning"
)

// SolarTimes is the set of named instants the ephemeris produces for one
// location and civil date. A zero time means the sun never reaches that
// elevation on that date (polar day or night).
type SolarTimes struct {
	Sunrise       time.Time `json:"sunrise"`
	Sunset        time.Time `json:"sunset"`
	Dawn          time.Time `json:"dawn"`
	Dusk          time.Time `json:"dusk"`
	NauticalDawn  time.Time `json:"nautical_dawn"`
	NauticalDusk  time.Time `json:"nautical_dusk"`
	NightEnd      time.Time `json:"night_end"`
	Night         time.Time `json:"night"`
	GoldenHourEnd time.Time `json:"golden_hour_end"`
	GoldenHour    time.Time `json:"golden_hour"`
}

// DaylightEvent is a resolved clock instant for a location, date, angle and direction.
type DaylightEvent struct {
	Angle     SolarAngle `json:"angle"`
	Direction Direction  `json:"direction"`
	At        time.Time  `json:"at"`
}
