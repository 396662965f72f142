package domain

import (
	"fmt"
	"math"
	"time"
)

// RoundMinutes rounds a continuous duration to the nearest whole minute.
// This is the only place durations lose sub-minute precision.
func RoundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

// FormatDuration renders a duration the way the planner displays it:
// "45 min", "2 h" or "1h 5min". Negative durations are rendered by magnitude.
func FormatDuration(d time.Duration) string {
	m := RoundMinutes(d)
	if m < 0 {
		m = -m
	}
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	h, rest := m/60, m%60
	if rest == 0 {
		return fmt.Sprintf("%d h", h)
	}
	return fmt.Sprintf("%dh %dmin", h, rest)
}

// FormatClock renders t as HH:MM in loc, or "--:--" for the zero time.
func FormatClock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "--:--"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("15:04")
}
