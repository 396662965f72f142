// Package domain contains the core data types for the disc golf daylight planner.
// It is imported by every other internal package (geo, travel, daylight,
// feasibility, weather, repo, service, handler).
package domain

import "fmt"

// Location is a WGS84-ish coordinate pair in degrees. No datum correction is applied.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders the location with five decimals, the precision shown to users.
func (l Location) String() string {
	return fmt.Sprintf("%.5f, %.5f", l.Lat, l.Lng)
}

// Valid reports whether the coordinates lie within the latitude/longitude ranges.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Destination is one of the fixed disc golf courses.
type Destination struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Icon     string   `json:"icon"`
}

// OSMLink returns the OpenStreetMap "view on map" URL for the course.
func (d Destination) OSMLink() string {
	return fmt.Sprintf("https://www.openstreetmap.org/#map=19/%g/%g", d.Location.Lat, d.Location.Lng)
}

// destinations is the static course set. It is never mutated after init.
var destinations = []Destination{
	{
		ID:       "jaskowa",
		Name:     "Jaśkowa Dolina",
		Location: Location{Lat: 54.372664, Lng: 18.590667},
		Icon:     "🌲",
	},
	{
		ID:       "reagana",
		Name:     "Ronalda Reagana",
		Location: Location{Lat: 54.408414, Lng: 18.616033},
		Icon:     "🏞️",
	},
	{
		ID:       "zbocze",
		Name:     "Na Zboczu",
		Location: Location{Lat: 54.346376, Lng: 18.608766},
		Icon:     "⛰️",
	},
}

// Destinations returns a copy of the static course set in display order.
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}

// DestinationByID looks up a course by identifier.
// Returns ErrNotFound if no course has that ID.
func DestinationByID(id string) (Destination, error) {
	for _, d := range destinations {
		if d.ID == id {
			return d, nil
		}
	}
	return Destination{}, fmt.Errorf("destination %q: %w", id, ErrNotFound)
}
