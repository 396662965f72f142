package domain

import (
	"time"

	"github.com/google/uuid"
)

// DestinationPlan is the evaluation of one course plus the inputs the
// presentation layer shows next to it.
type DestinationPlan struct {
	Destination Destination       `json:"destination"`
	Estimate    *int              `json:"estimate_minutes,omitempty"`
	Overridden  bool              `json:"overridden"`
	Result      FeasibilityResult `json:"result"`
}

// Plan is the output of one full evaluation pass.
type Plan struct {
	ID           uuid.UUID         `json:"id"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Preferences  Preferences       `json:"preferences"`
	Destinations []DestinationPlan `json:"destinations"`
	Weather      WeatherAdvisory   `json:"weather"`
}
