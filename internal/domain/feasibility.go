package domain

import "time"

// FeasibilityState classifies one destination for one evaluation.
// Exactly one state applies per destination per evaluation.
type FeasibilityState string

const (
	// StateNoLocation means no travel time is known (no location, no override).
	StateNoLocation FeasibilityState = "no_location"
	// StateNight means it is currently before today's sunrise-direction instant.
	StateNight FeasibilityState = "night"
	// StateInTime means the player arrives before the evening cutoff.
	StateInTime FeasibilityState = "in_time"
	// StateTooLate means the player arrives at or after the evening cutoff.
	StateTooLate FeasibilityState = "too_late"
)

// AdvisoryKind tells the presentation layer which next-action block to show.
type AdvisoryKind string

const (
	// AdvisoryLeaveBy: leave by LeaveBy to arrive at the morning instant StartAt.
	AdvisoryLeaveBy AdvisoryKind = "leave_by"
	// AdvisoryTomorrow: come back tomorrow from StartAt for PlayWindow.
	AdvisoryTomorrow AdvisoryKind = "tomorrow"
)

// Advisory is the optional next-action block attached to Night and TooLate results.
type Advisory struct {
	Kind       AdvisoryKind  `json:"kind"`
	LeaveBy    *time.Time    `json:"leave_by,omitempty"`
	StartAt    time.Time     `json:"start_at"`
	PlayWindow time.Duration `json:"play_window"`
}

// FeasibilityResult is the outcome of the feasibility engine for one destination.
// Durations are continuous; round only when displaying (see FormatDuration).
type FeasibilityResult struct {
	DestinationID string           `json:"destination_id"`
	State         FeasibilityState `json:"state"`
	// SunTime is the resolved evening instant for the requested angle today.
	SunTime time.Time `json:"sun_time"`
	// SunriseTime is the resolved morning instant for the requested angle today.
	SunriseTime time.Time `json:"sunrise_time"`
	// TravelMinutes is the effective travel time used (nil for NoLocation).
	TravelMinutes *int `json:"travel_minutes,omitempty"`
	// Arrival is the instant used downstream (weather anchor). For Night it is
	// the morning instant, not now+travel.
	Arrival    *time.Time     `json:"arrival,omitempty"`
	PlayWindow *time.Duration `json:"play_window,omitempty"`
	Lateness   *time.Duration `json:"lateness,omitempty"`
	Advisory   *Advisory      `json:"advisory,omitempty"`
}
