package domain

// Default preference values used on first start and whenever a stored
// snapshot value is absent or corrupt.
const (
	DefaultTransportMode = ModeCar
	DefaultPrepMinutes   = 5
	DefaultSunAngle      = SolarAngle(0)
)

// Preferences is the mutable per-session state chosen by the player.
// UserLocation is nil until the player geolocates or picks a point on the map.
// TravelOverrides maps destination ID to manual minutes; a missing key means
// "use the estimate".
type Preferences struct {
	UserLocation    *Location      `json:"user_location,omitempty"`
	TransportMode   TransportMode  `json:"transport_mode"`
	PrepMinutes     int            `json:"prep_minutes"`
	SunAngle        SolarAngle     `json:"sun_angle"`
	TravelOverrides map[string]int `json:"travel_overrides"`
}

// DefaultPreferences returns the preferences of a brand new session.
func DefaultPreferences() Preferences {
	return Preferences{
		TransportMode:   DefaultTransportMode,
		PrepMinutes:     DefaultPrepMinutes,
		SunAngle:        DefaultSunAngle,
		TravelOverrides: map[string]int{},
	}
}

// Override returns the manual travel time for a destination, or nil.
func (p Preferences) Override(destinationID string) *int {
	if v, ok := p.TravelOverrides[destinationID]; ok {
		return &v
	}
	return nil
}

// Clone returns a deep copy so callers can mutate without aliasing session state.
func (p Preferences) Clone() Preferences {
	out := p
	if p.UserLocation != nil {
		loc := *p.UserLocation
		out.UserLocation = &loc
	}
	out.TravelOverrides = make(map[string]int, len(p.TravelOverrides))
	for k, v := range p.TravelOverrides {
		out.TravelOverrides[k] = v
	}
	return out
}
