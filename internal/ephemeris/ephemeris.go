// Package ephemeris supplies the named solar instants (sunrise, sunset and the
// twilight/golden-hour crossings) for a location and civil date.
package ephemeris

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// Provider returns the ten named instants for the civil date of date at loc.
type Provider interface {
	Times(date time.Time, loc domain.Location) domain.SolarTimes
}

// Sunrise is a Provider backed by github.com/nathan-osman/go-sunrise.
// The civil date is taken in Zone, and results are returned in Zone.
// Instants the sun never reaches on that date are left as the zero time.
type Sunrise struct {
	Zone *time.Location
}

// NewSunrise returns a go-sunrise backed Provider for the given zone.
// A nil zone means UTC.
func NewSunrise(zone *time.Location) *Sunrise {
	if zone == nil {
		zone = time.UTC
	}
	return &Sunrise{Zone: zone}
}

// Times implements Provider.
func (s *Sunrise) Times(date time.Time, loc domain.Location) domain.SolarTimes {
	y, m, d := date.In(s.Zone).Date()

	rise, set := sunrise.SunriseSunset(loc.Lat, loc.Lng, y, m, d)
	dawn, dusk := sunrise.TimeOfElevation(loc.Lat, loc.Lng, float64(domain.AngleCivil), y, m, d)
	nDawn, nDusk := sunrise.TimeOfElevation(loc.Lat, loc.Lng, float64(domain.AngleNautical), y, m, d)
	nightEnd, night := sunrise.TimeOfElevation(loc.Lat, loc.Lng, float64(domain.AngleAstronomical), y, m, d)
	goldenEnd, golden := sunrise.TimeOfElevation(loc.Lat, loc.Lng, float64(domain.AngleGoldenHour), y, m, d)

	return domain.SolarTimes{
		Sunrise:       s.in(rise),
		Sunset:        s.in(set),
		Dawn:          s.in(dawn),
		Dusk:          s.in(dusk),
		NauticalDawn:  s.in(nDawn),
		NauticalDusk:  s.in(nDusk),
		NightEnd:      s.in(nightEnd),
		Night:         s.in(night),
		GoldenHourEnd: s.in(goldenEnd),
		GoldenHour:    s.in(golden),
	}
}

func (s *Sunrise) in(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(s.Zone)
}

// Fixed is a Provider that always returns the same instants. It is useful for
// tests and for replaying a recorded day.
type Fixed domain.SolarTimes

// Times implements Provider.
func (f Fixed) Times(time.Time, domain.Location) domain.SolarTimes {
	return domain.SolarTimes(f)
}

var (
	_ Provider = (*Sunrise)(nil)
	_ Provider = Fixed{}
)
