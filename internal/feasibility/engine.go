// Package feasibility classifies each destination into one of the temporal
// scenarios (no location, night, in time, too late) and computes the play
// window and next-action advisory the player sees.
package feasibility

import (
	"time"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// DaylightResolver is the subset of daylight.Resolver the engine depends on.
type DaylightResolver interface {
	Evening(loc domain.Location, angle domain.SolarAngle, date time.Time) time.Time
	Morning(loc domain.Location, angle domain.SolarAngle, date time.Time) time.Time
}

// Input is everything one destination evaluation needs.
// TravelMinutes is the effective travel time; nil means no location is known.
type Input struct {
	Now           time.Time
	Destination   domain.Destination
	TravelMinutes *int
	PrepMinutes   int
	Angle         domain.SolarAngle
}

// Engine evaluates destinations. It never fails and holds no mutable state.
type Engine struct {
	daylight DaylightResolver
}

// NewEngine returns an Engine resolving solar instants through r.
func NewEngine(r DaylightResolver) *Engine {
	return &Engine{daylight: r}
}

// Evaluate classifies one destination.
//
// Arithmetic stays in continuous time; only the display layer rounds to minutes.
// A remaining window of exactly zero is TooLate.
func (e *Engine) Evaluate(in Input) domain.FeasibilityResult {
	loc := in.Destination.Location
	sunset := e.daylight.Evening(loc, in.Angle, in.Now)
	sunrise := e.daylight.Morning(loc, in.Angle, in.Now)

	res := domain.FeasibilityResult{
		DestinationID: in.Destination.ID,
		SunTime:       sunset,
		SunriseTime:   sunrise,
	}

	if in.TravelMinutes == nil {
		res.State = domain.StateNoLocation
		return res
	}
	travel := *in.TravelMinutes
	res.TravelMinutes = &travel
	total := minutes(in.PrepMinutes + travel)

	if in.Now.Before(sunrise) {
		leaveBy := sunrise.Add(-total)
		window := sunset.Sub(sunrise)
		arrival := sunrise
		res.State = domain.StateNight
		res.Arrival = &arrival
		res.PlayWindow = &window
		res.Advisory = &domain.Advisory{
			Kind:       domain.AdvisoryLeaveBy,
			LeaveBy:    &leaveBy,
			StartAt:    sunrise,
			PlayWindow: window,
		}
		return res
	}

	arrival := in.Now.Add(total)
	remaining := sunset.Sub(arrival)
	res.Arrival = &arrival

	if remaining > 0 {
		res.State = domain.StateInTime
		res.PlayWindow = &remaining
		return res
	}

	lateness := -remaining
	res.State = domain.StateTooLate
	res.Lateness = &lateness
	res.Advisory = e.tomorrow(loc, in.Angle, in.Now)
	return res
}

// tomorrow resolves the next day's window for the same angle.
func (e *Engine) tomorrow(loc domain.Location, angle domain.SolarAngle, now time.Time) *domain.Advisory {
	next := now.AddDate(0, 0, 1)
	start := e.daylight.Morning(loc, angle, next)
	end := e.daylight.Evening(loc, angle, next)
	return &domain.Advisory{
		Kind:       domain.AdvisoryTomorrow,
		StartAt:    start,
		PlayWindow: end.Sub(start),
	}
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
