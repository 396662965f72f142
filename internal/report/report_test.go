package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/discgolf-planner/internal/domain"
	"github.com/pkordes/discgolf-planner/internal/report"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestRender(t *testing.T) {
	zone := time.UTC
	now := time.Date(2026, 6, 21, 17, 0, 0, 0, zone)
	sunset := time.Date(2026, 6, 21, 20, 0, 0, 0, zone)
	arrival := now.Add(25 * time.Minute)
	travel := 20
	window := sunset.Sub(arrival)
	late := 15 * time.Minute
	tomorrow := time.Date(2026, 6, 22, 4, 30, 0, 0, zone)

	dests := domain.Destinations()
	plan := domain.Plan{
		GeneratedAt: now,
		Preferences: domain.Preferences{
			UserLocation:  &domain.Location{Lat: 54.35, Lng: 18.6},
			TransportMode: domain.ModeBike,
			PrepMinutes:   5,
		},
		Destinations: []domain.DestinationPlan{
			{
				Destination: dests[0],
				Result: domain.FeasibilityResult{
					State: domain.StateInTime, SunTime: sunset,
					TravelMinutes: &travel, Arrival: &arrival, PlayWindow: &window,
				},
			},
			{
				Destination: dests[1],
				Overridden:  true,
				Result: domain.FeasibilityResult{
					State: domain.StateTooLate, SunTime: sunset,
					TravelMinutes: &travel, Arrival: &arrival, Lateness: &late,
					Advisory: &domain.Advisory{
						Kind: domain.AdvisoryTomorrow, StartAt: tomorrow, PlayWindow: 2 * time.Hour,
					},
				},
			},
			{Destination: dests[2], Result: domain.FeasibilityResult{State: domain.StateNoLocation}},
		},
		Weather: domain.WeatherAdvisory{
			Status: domain.WeatherWarning,
			Hours: []domain.HourSummary{
				{Label: "17:00", Icon: "☁️", TemperatureC: 18, WindMs: 8.5, GustMs: 11},
				{Label: "18:00", Icon: "☁️", WindMs: 8.5, GustMs: 11, Missing: []domain.Field{domain.FieldTemperature}},
			},
			Alerts: []domain.Alert{{Level: domain.AlertWarning, Text: "strong wind"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, plan, zone))
	out := buf.String()

	assert.Contains(t, out, "Disc golf plan for 17:00")
	assert.Contains(t, out, "by bike, 5 min prep")
	assert.Contains(t, out, "Jaśkowa Dolina")
	assert.Contains(t, out, "in time")
	assert.Contains(t, out, "2h 35min of play")
	assert.Contains(t, out, "20 min (manual)")
	assert.Contains(t, out, "15 min too late")
	assert.Contains(t, out, "tomorrow from 04:30, 2 h of play")
	assert.Contains(t, out, "set a location")
	assert.Contains(t, out, "Weather: warning")
	assert.Contains(t, out, "! strong wind")
	assert.Contains(t, out, "17:00 ☁️ 18°C wind 8.5 m/s")
	assert.Contains(t, out, "18:00 ☁️ -- wind 8.5 m/s")
	assert.NotContains(t, out, "\x1b[", "colors disabled in tests")
}

func TestRender_NoLocation(t *testing.T) {
	plan := domain.Plan{
		GeneratedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Preferences: domain.DefaultPreferences(),
		Weather:     domain.WeatherAdvisory{Status: domain.WeatherNoData, Message: "forecast unavailable", Stale: true},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, plan, time.UTC))

	assert.Contains(t, buf.String(), "From no location by car")
	assert.Contains(t, buf.String(), "Weather: no_data (stale)")
	assert.Contains(t, buf.String(), "forecast unavailable")
}
