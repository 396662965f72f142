// Package daylight converts a requested solar elevation angle into a clock
// instant for a location and date, in either the evening or the morning
// direction.
//
// The ephemeris supplies exact instants at five elevations (+6, 0, -6, -12,
// -18). Angles between two of them are interpolated linearly; angles above
// the horizon extrapolate along the golden-hour band, taking the golden-hour
// instant as the +6° reference point. Anything else (below -18°, NaN) falls
// back to the horizon instant, as does any canonical elevation the sun never
// reaches on that date.
package daylight

import (
	"math"
	"time"

	"github.com/pkordes/discgolf-planner/internal/domain"
	"github.com/pkordes/discgolf-planner/internal/ephemeris"
)

// anchor pairs an elevation with the instant the sun crosses it.
type anchor struct {
	angle domain.SolarAngle
	at    time.Time
}

// ladder is the ordered anchor table of one direction, highest angle first.
// Index 1 is always the horizon.
type ladder [5]anchor

const horizon = 1

func eveningLadder(st domain.SolarTimes) ladder {
	return ladder{
		{domain.AngleGoldenHour, st.GoldenHour},
		{domain.AngleHorizon, st.Sunset},
		{domain.AngleCivil, st.Dusk},
		{domain.AngleNautical, st.NauticalDusk},
		{domain.AngleAstronomical, st.Night},
	}
}

func morningLadder(st domain.SolarTimes) ladder {
	return ladder{
		{domain.AngleGoldenHour, st.GoldenHourEnd},
		{domain.AngleHorizon, st.Sunrise},
		{domain.AngleCivil, st.Dawn},
		{domain.AngleNautical, st.NauticalDawn},
		{domain.AngleAstronomical, st.NightEnd},
	}
}

// resolve maps angle onto the ladder. It never fails.
func (l ladder) resolve(angle domain.SolarAngle) time.Time {
	fallback := l[horizon].at
	if math.IsNaN(float64(angle)) {
		return fallback
	}

	// Exact lookups at the canonical angles. +6 is deliberately not one of
	// them; it goes through the extrapolation below, which yields the same
	// instant. A canonical instant the sun never reaches on this date (zero
	// time) falls back to the horizon like the bands around it.
	for _, a := range l[horizon:] {
		if angle == a.angle {
			if a.at.IsZero() {
				return fallback
			}
			return a.at
		}
	}

	if angle > domain.AngleHorizon {
		return between(l[0], l[horizon], angle, fallback)
	}
	for i := horizon; i < len(l)-1; i++ {
		hi, lo := l[i], l[i+1]
		if angle < hi.angle && angle > lo.angle {
			return between(hi, lo, angle, fallback)
		}
	}
	return fallback
}

// between interpolates linearly from hi toward lo. ratio is 0 at hi.angle and
// 1 at lo.angle; it exceeds that range only for extrapolated angles.
// If either bounding instant is missing the fallback is returned.
func between(hi, lo anchor, angle domain.SolarAngle, fallback time.Time) time.Time {
	if hi.at.IsZero() || lo.at.IsZero() {
		return fallback
	}
	ratio := float64(hi.angle-angle) / float64(hi.angle-lo.angle)
	span := lo.at.Sub(hi.at)
	return hi.at.Add(time.Duration(math.Round(float64(span) * ratio)))
}

// Resolver resolves solar angles using an ephemeris provider.
type Resolver struct {
	ephemeris ephemeris.Provider
}

// NewResolver returns a Resolver backed by p.
func NewResolver(p ephemeris.Provider) *Resolver {
	return &Resolver{ephemeris: p}
}

// Evening returns the instant on the civil date of date at which the sun
// passes angle on its way down (sunset-ward). Angle 0 is sunset.
func (r *Resolver) Evening(loc domain.Location, angle domain.SolarAngle, date time.Time) time.Time {
	return eveningLadder(r.ephemeris.Times(date, loc)).resolve(angle)
}

// Morning returns the instant on the civil date of date at which the sun
// passes angle on its way up (sunrise-ward). Angle 0 is sunrise.
func (r *Resolver) Morning(loc domain.Location, angle domain.SolarAngle, date time.Time) time.Time {
	return morningLadder(r.ephemeris.Times(date, loc)).resolve(angle)
}

// Event resolves angle in the given direction and wraps it as a DaylightEvent.
func (r *Resolver) Event(loc domain.Location, angle domain.SolarAngle, date time.Time, dir domain.Direction) domain.DaylightEvent {
	var at time.Time
	if dir == domain.Morning {
		at = r.Morning(loc, angle, date)
	} else {
		at = r.Evening(loc, angle, date)
	}
	return domain.DaylightEvent{Angle: angle, Direction: dir, At: at}
}
