// Package report renders a plan as a colored terminal table for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	blue   = color.New(color.FgBlue)
	grey   = color.New(color.FgHiBlack)
	bold   = color.New(color.Bold)
)

// stateColor picks the row color for a feasibility state.
func stateColor(s domain.FeasibilityState) *color.Color {
	switch s {
	case domain.StateInTime:
		return green
	case domain.StateTooLate:
		return red
	case domain.StateNight:
		return blue
	default:
		return grey
	}
}

func weatherColor(s domain.WeatherStatus) *color.Color {
	switch s {
	case domain.WeatherGood:
		return green
	case domain.WeatherWarning:
		return yellow
	case domain.WeatherBad:
		return red
	default:
		return grey
	}
}

// Render writes p to w with instants labelled in zone.
func Render(w io.Writer, p domain.Plan, zone *time.Location) error {
	var b strings.Builder

	prefs := p.Preferences
	bold.Fprintf(&b, "🥏 Disc golf plan for %s\n", domain.FormatClock(p.GeneratedAt, zone))
	b.WriteString(strings.Repeat("─", 50) + "\n")
	from := "no location"
	if prefs.UserLocation != nil {
		from = prefs.UserLocation.String()
	}
	fmt.Fprintf(&b, "From %s by %s, %d min prep, sun angle %g°\n\n",
		from, prefs.TransportMode, prefs.PrepMinutes, float64(prefs.SunAngle))

	for _, d := range p.Destinations {
		writeDestination(&b, d, zone)
	}

	writeWeather(&b, p.Weather)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDestination(b *strings.Builder, d domain.DestinationPlan, zone *time.Location) {
	r := d.Result
	c := stateColor(r.State)

	c.Fprintf(b, "%s %-18s %s\n", d.Destination.Icon, d.Destination.Name, stateLabel(r.State))

	travel := "--"
	if r.TravelMinutes != nil {
		travel = domain.FormatDuration(time.Duration(*r.TravelMinutes) * time.Minute)
		if d.Overridden {
			travel += " (manual)"
		}
	}
	arrival := "--:--"
	if r.Arrival != nil {
		arrival = domain.FormatClock(*r.Arrival, zone)
	}
	fmt.Fprintf(b, "   travel %s, arrive %s, light until %s\n",
		travel, arrival, domain.FormatClock(r.SunTime, zone))

	switch {
	case r.PlayWindow != nil:
		c.Fprintf(b, "   %s of play\n", domain.FormatDuration(*r.PlayWindow))
	case r.Lateness != nil:
		c.Fprintf(b, "   %s too late\n", domain.FormatDuration(*r.Lateness))
	}

	if a := r.Advisory; a != nil {
		switch a.Kind {
		case domain.AdvisoryLeaveBy:
			leave := "--:--"
			if a.LeaveBy != nil {
				leave = domain.FormatClock(*a.LeaveBy, zone)
			}
			fmt.Fprintf(b, "   leave by %s to start at %s\n", leave, domain.FormatClock(a.StartAt, zone))
		case domain.AdvisoryTomorrow:
			fmt.Fprintf(b, "   tomorrow from %s, %s of play\n",
				domain.FormatClock(a.StartAt, zone), domain.FormatDuration(a.PlayWindow))
		}
	}
	b.WriteString("\n")
}

func writeWeather(b *strings.Builder, w domain.WeatherAdvisory) {
	c := weatherColor(w.Status)
	c.Fprintf(b, "Weather: %s", w.Status)
	if w.Stale {
		grey.Fprint(b, " (stale)")
	}
	b.WriteString("\n")
	if w.Message != "" {
		grey.Fprintf(b, "   %s\n", w.Message)
	}
	for _, h := range w.Hours {
		fmt.Fprintf(b, "   %s %s %s wind %s gusts %s rain %s\n", h.Label, h.Icon,
			measured(h, domain.FieldTemperature, fmt.Sprintf("%d°C", h.TemperatureC)),
			measured(h, domain.FieldWind, fmt.Sprintf("%.1f m/s", h.WindMs)),
			measured(h, domain.FieldGust, fmt.Sprintf("%.1f m/s", h.GustMs)),
			measured(h, domain.FieldPrecipitation, fmt.Sprintf("%d%%", h.PrecipitationProbability)))
	}
	for _, a := range w.Alerts {
		ac := yellow
		if a.Level == domain.AlertDanger {
			ac = red
		}
		ac.Fprintf(b, "   ! %s\n", a.Text)
	}
}

// measured returns text, or "--" when the forecast left f empty.
func measured(h domain.HourSummary, f domain.Field, text string) string {
	if !h.Has(f) {
		return "--"
	}
	return text
}

func stateLabel(s domain.FeasibilityState) string {
	switch s {
	case domain.StateInTime:
		return "in time"
	case domain.StateTooLate:
		return "too late"
	case domain.StateNight:
		return "night"
	default:
		return "set a location"
	}
}
