package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// Wire types. Instants are RFC 3339; every instant and duration also has a
// display label rendered in the server's zone ("15:04", "1h 5min").

// LocationResponse is a latitude/longitude pair.
type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DestinationResponse describes one disc golf course.
type DestinationResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Icon     string           `json:"icon"`
	Location LocationResponse `json:"location"`
	OSMLink  string           `json:"osm_link"`
}

// AdvisoryResponse is the weather advisory for the play window.
type AdvisoryResponse struct {
	Kind              domain.AdvisoryKind `json:"kind"`
	LeaveBy           *time.Time          `json:"leave_by,omitempty"`
	LeaveByLabel      string              `json:"leave_by_label,omitempty"`
	StartAt           time.Time           `json:"start_at"`
	StartAtLabel      string              `json:"start_at_label"`
	PlayWindowMinutes int                 `json:"play_window_minutes"`
	PlayWindowLabel   string              `json:"play_window_label"`
}

// DestinationPlanResponse is the feasibility result for one destination.
type DestinationPlanResponse struct {
	Destination       DestinationResponse     `json:"destination"`
	State             domain.FeasibilityState `json:"state"`
	EstimateMinutes   *int                    `json:"estimate_minutes"`
	Overridden        bool                    `json:"overridden"`
	TravelMinutes     *int                    `json:"travel_minutes"`
	SunTime           *time.Time              `json:"sun_time"`
	SunTimeLabel      string                  `json:"sun_time_label"`
	SunriseTime       *time.Time              `json:"sunrise_time"`
	SunriseLabel      string                  `json:"sunrise_label"`
	Arrival           *time.Time              `json:"arrival"`
	ArrivalLabel      string                  `json:"arrival_label"`
	PlayWindowMinutes *int                    `json:"play_window_minutes"`
	PlayWindowLabel   string                  `json:"play_window_label,omitempty"`
	LatenessMinutes   *int                    `json:"lateness_minutes"`
	LatenessLabel     string                  `json:"lateness_label,omitempty"`
	Advisory          *AdvisoryResponse       `json:"advisory"`
}

// PreferencesResponse is the persisted user preferences.
type PreferencesResponse struct {
	UserLocation    *LocationResponse `json:"user_location"`
	TransportMode   string            `json:"transport_mode"`
	PrepMinutes     int               `json:"prep_minutes"`
	SunAngle        float64           `json:"sun_angle"`
	TravelOverrides map[string]int    `json:"travel_overrides"`
}

// PlanResponse is one evaluation pass over every destination.
type PlanResponse struct {
	ID           uuid.UUID                 `json:"id"`
	GeneratedAt  time.Time                 `json:"generated_at"`
	Preferences  PreferencesResponse       `json:"preferences"`
	Destinations []DestinationPlanResponse `json:"destinations"`
	Weather      domain.WeatherAdvisory    `json:"weather"`
}

// PresetResponse names a selectable sun angle.
type PresetResponse struct {
	Name  string  `json:"name"`
	Angle float64 `json:"angle"`
}

// Request bodies. Pointer fields distinguish "missing" from zero.

// LocationRequest sets the user's starting point.
type LocationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// TransportRequest selects the transport mode.
type TransportRequest struct {
	Mode string `json:"mode"`
}

// PrepTimeRequest sets the preparation minutes added before travel.
type PrepTimeRequest struct {
	Minutes *int `json:"minutes"`
}

// SunAngleRequest selects the sun elevation that ends play.
type SunAngleRequest struct {
	Angle *float64 `json:"angle"`
}

// OverrideRequest sets a manual travel time; a null minutes clears it.
type OverrideRequest struct {
	Minutes *int `json:"minutes"`
}

// ---- mapping ----------------------------------------------------------------

// EncodePlan converts a domain plan to its wire form, labelling instants in zone.
func EncodePlan(p domain.Plan, zone *time.Location) PlanResponse {
	dests := make([]DestinationPlanResponse, 0, len(p.Destinations))
	for _, d := range p.Destinations {
		dests = append(dests, encodeDestinationPlan(d, zone))
	}
	return PlanResponse{
		ID:           p.ID,
		GeneratedAt:  p.GeneratedAt,
		Preferences:  encodePreferences(p.Preferences),
		Destinations: dests,
		Weather:      p.Weather,
	}
}

func encodeDestination(d domain.Destination) DestinationResponse {
	return DestinationResponse{
		ID:       d.ID,
		Name:     d.Name,
		Icon:     d.Icon,
		Location: LocationResponse{Lat: d.Location.Lat, Lng: d.Location.Lng},
		OSMLink:  d.OSMLink(),
	}
}

func encodeDestinationPlan(d domain.DestinationPlan, zone *time.Location) DestinationPlanResponse {
	r := d.Result
	out := DestinationPlanResponse{
		Destination:     encodeDestination(d.Destination),
		State:           r.State,
		EstimateMinutes: d.Estimate,
		Overridden:      d.Overridden,
		TravelMinutes:   r.TravelMinutes,
		SunTime:         instant(r.SunTime),
		SunTimeLabel:    domain.FormatClock(r.SunTime, zone),
		SunriseTime:     instant(r.SunriseTime),
		SunriseLabel:    domain.FormatClock(r.SunriseTime, zone),
		ArrivalLabel:    "--:--",
	}
	if r.Arrival != nil {
		out.Arrival = r.Arrival
		out.ArrivalLabel = domain.FormatClock(*r.Arrival, zone)
	}
	if r.PlayWindow != nil {
		m := domain.RoundMinutes(*r.PlayWindow)
		out.PlayWindowMinutes = &m
		out.PlayWindowLabel = domain.FormatDuration(*r.PlayWindow)
	}
	if r.Lateness != nil {
		m := domain.RoundMinutes(*r.Lateness)
		out.LatenessMinutes = &m
		out.LatenessLabel = domain.FormatDuration(*r.Lateness)
	}
	if a := r.Advisory; a != nil {
		adv := &AdvisoryResponse{
			Kind:              a.Kind,
			StartAt:           a.StartAt,
			StartAtLabel:      domain.FormatClock(a.StartAt, zone),
			PlayWindowMinutes: domain.RoundMinutes(a.PlayWindow),
			PlayWindowLabel:   domain.FormatDuration(a.PlayWindow),
		}
		if a.LeaveBy != nil {
			adv.LeaveBy = a.LeaveBy
			adv.LeaveByLabel = domain.FormatClock(*a.LeaveBy, zone)
		}
		out.Advisory = adv
	}
	return out
}

func encodePreferences(p domain.Preferences) PreferencesResponse {
	out := PreferencesResponse{
		TransportMode:   string(p.TransportMode),
		PrepMinutes:     p.PrepMinutes,
		SunAngle:        float64(p.SunAngle),
		TravelOverrides: p.TravelOverrides,
	}
	if out.TravelOverrides == nil {
		out.TravelOverrides = map[string]int{}
	}
	if p.UserLocation != nil {
		out.UserLocation = &LocationResponse{Lat: p.UserLocation.Lat, Lng: p.UserLocation.Lng}
	}
	return out
}

// instant maps the zero time (sun never reaches the angle) to null.
func instant(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
