// Package weather turns hourly forecasts into the risk advisory shown next to
// the plan, and provides the forecast sources that feed it: an Open-Meteo
// client, a rate limiter and a memoizing cache.
package weather

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// SampledHours is how many consecutive hourly buckets an advisory covers.
const SampledHours = 3

// Thresholds. Wind values are m/s after conversion from km/h.
const (
	precipBad      = 70
	precipWarning  = 40
	gustBad        = 15.0
	gustWarning    = 10.0
	windWarning    = 8.0
	frostCelsius   = 0
	heatCelsius    = 30
	kmhPerMetreSec = 3.6
)

// SelectAnchor returns the earliest arrival strictly after now, or now when
// there is none. Nil arrivals are skipped.
func SelectAnchor(now time.Time, arrivals []*time.Time) time.Time {
	var best *time.Time
	for _, a := range arrivals {
		if a == nil || !a.After(now) {
			continue
		}
		if best == nil || a.Before(*best) {
			best = a
		}
	}
	if best == nil {
		return now
	}
	return *best
}

// Unavailable is the advisory shown when no forecast could be obtained.
func Unavailable(anchor time.Time) domain.WeatherAdvisory {
	return domain.WeatherAdvisory{
		Status:  domain.WeatherNoData,
		Anchor:  anchor,
		Hours:   []domain.HourSummary{},
		Alerts:  []domain.Alert{},
		Message: "forecast unavailable",
	}
}

// Assess builds the advisory for the SampledHours hours starting at the hour
// containing anchor. Forecast timestamps are matched in zone; when the exact
// hour is missing the closest sample is used as the start.
// All triggered conditions produce an alert; the status is the worst seen.
func Assess(f domain.Forecast, anchor time.Time, zone *time.Location) domain.WeatherAdvisory {
	if len(f.Samples) == 0 {
		return Unavailable(anchor)
	}
	if zone == nil {
		zone = time.UTC
	}

	start := startIndex(f.Samples, hourOf(anchor, zone))
	end := min(start+SampledHours, len(f.Samples))
	window := f.Samples[start:end]

	if !slices.ContainsFunc(window, func(s domain.WeatherSample) bool { return !s.Empty() }) {
		adv := Unavailable(anchor)
		adv.Stale = f.Stale
		adv.Message = "forecast has no data for these hours"
		return adv
	}

	adv := domain.WeatherAdvisory{
		Status: domain.WeatherGood,
		Anchor: anchor,
		Hours:  make([]domain.HourSummary, 0, len(window)),
		Alerts: []domain.Alert{},
		Stale:  f.Stale,
	}
	for _, s := range window {
		adv.Hours = append(adv.Hours, summarize(s, zone))
	}

	add := func(status domain.WeatherStatus, level domain.AlertLevel, text string) {
		adv.Status = adv.Status.Worse(status)
		adv.Alerts = append(adv.Alerts, domain.Alert{Level: level, Text: text})
	}

	// Only measured values count; a missing field never raises an alert.
	worstRank, worst := -1, ""
	maxPrecip, maxWind, maxGust := 0, 0.0, 0.0
	var temps []int
	for i, s := range window {
		h := adv.Hours[i]
		if s.Has(domain.FieldCode) {
			if r := codeRank(s.Code); r > worstRank {
				worstRank, worst = r, h.Description
			}
		}
		if s.Has(domain.FieldPrecipitation) {
			maxPrecip = max(maxPrecip, h.PrecipitationProbability)
		}
		if s.Has(domain.FieldWind) {
			maxWind = max(maxWind, h.WindMs)
		}
		if s.Has(domain.FieldGust) {
			maxGust = max(maxGust, h.GustMs)
		}
		if s.Has(domain.FieldTemperature) {
			temps = append(temps, h.TemperatureC)
		}
	}

	switch worstRank {
	case rankStorm, rankHeavy:
		add(domain.WeatherBad, domain.AlertDanger,
			fmt.Sprintf("⚠️ %s - consider postponing the round!", worst))
	case rankLight:
		add(domain.WeatherWarning, domain.AlertWarning,
			fmt.Sprintf("⚡ %s - take a jacket!", worst))
	}

	switch {
	case maxPrecip >= precipBad:
		add(domain.WeatherBad, domain.AlertDanger,
			fmt.Sprintf("🌧️ %d%% chance of precipitation - it will be wet!", maxPrecip))
	case maxPrecip >= precipWarning:
		add(domain.WeatherWarning, domain.AlertWarning,
			fmt.Sprintf("🌧️ %d%% chance of precipitation - take a jacket", maxPrecip))
	}

	switch {
	case maxGust >= gustBad:
		add(domain.WeatherBad, domain.AlertDanger,
			fmt.Sprintf("💨 Gusts of %.1f m/s - discs will fly!", maxGust))
	case maxWind >= windWarning || maxGust >= gustWarning:
		add(domain.WeatherWarning, domain.AlertWarning, "💨 Strong wind - pick stable discs")
	}

	if len(temps) > 0 {
		if slices.Min(temps) <= frostCelsius {
			add(domain.WeatherWarning, domain.AlertWarning, "🥶 Frost! Dress warmly")
		}
		if slices.Max(temps) >= heatCelsius {
			add(domain.WeatherWarning, domain.AlertWarning, "🥵 Heat! Bring plenty of water")
		}
	}

	return adv
}

// hourOf truncates t to the start of its civil hour in zone.
func hourOf(t time.Time, zone *time.Location) time.Time {
	l := t.In(zone)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), 0, 0, 0, zone)
}

func startIndex(samples []domain.WeatherSample, target time.Time) int {
	best, bestDiff := 0, time.Duration(math.MaxInt64)
	for i, s := range samples {
		if s.Time.Equal(target) {
			return i
		}
		diff := s.Time.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

func summarize(s domain.WeatherSample, zone *time.Location) domain.HourSummary {
	c := LookupCondition(s.Code)
	if !s.Has(domain.FieldCode) {
		c = noDataCondition
	}
	return domain.HourSummary{
		Hour:                     s.Time,
		Label:                    s.Time.In(zone).Format("15:04"),
		Icon:                     c.Icon,
		Description:              c.Description,
		TemperatureC:             int(math.Round(s.TemperatureC)),
		WindMs:                   toMetresPerSecond(s.WindKmh),
		GustMs:                   toMetresPerSecond(s.GustKmh),
		PrecipitationProbability: s.PrecipitationProbability,
		CloudCover:               s.CloudCover,
		Missing:                  s.Missing,
	}
}

// toMetresPerSecond converts km/h to m/s rounded to one decimal.
func toMetresPerSecond(kmh float64) float64 {
	return math.Round(kmh/kmhPerMetreSec*10) / 10
}
