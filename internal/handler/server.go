// Package handler implements the HTTP handlers for the planner API.
// All handlers are methods on Server. They are split into resource files
// (health.go, plan.go, preferences.go, ...) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// Planner defines the session operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the clock, ephemeris or weather.
type Planner interface {
	Plan(ctx context.Context) domain.Plan
	Preferences() domain.Preferences
	SetLocation(ctx context.Context, loc domain.Location) (domain.Plan, error)
	ClearLocation(ctx context.Context) domain.Plan
	SetTransportMode(ctx context.Context, mode string) (domain.Plan, error)
	SetPrepMinutes(ctx context.Context, minutes int) (domain.Plan, error)
	SetSunAngle(ctx context.Context, angle float64) (domain.Plan, error)
	SetTravelOverride(ctx context.Context, destinationID string, minutes *int) (domain.Plan, error)
}

// Streamer upgrades a request to a plan stream, sending initial first.
type Streamer interface {
	Serve(w http.ResponseWriter, r *http.Request, initial []byte)
}

// Server holds the handler dependencies.
type Server struct {
	planner Planner
	stream  Streamer
	zone    *time.Location
	logger  *slog.Logger
}

// NewServer constructs the Server. stream may be nil, in which case /ws is
// not registered.
func NewServer(planner Planner, stream Streamer, zone *time.Location, logger *slog.Logger) *Server {
	if zone == nil {
		zone = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{planner: planner, stream: stream, zone: zone, logger: logger}
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/destinations", s.ListDestinations)
	r.Get("/destinations/{id}/links", s.GetDestinationLinks)
	r.Get("/presets", s.ListPresets)
	r.Get("/plan", s.GetPlan)

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/", s.GetPreferences)
		r.Put("/location", s.PutLocation)
		r.Delete("/location", s.DeleteLocation)
		r.Put("/transport", s.PutTransport)
		r.Put("/prep-time", s.PutPrepTime)
		r.Put("/sun-angle", s.PutSunAngle)
		r.Put("/overrides/{id}", s.PutOverride)
	})

	if s.stream != nil {
		r.Get("/ws", s.GetStream)
	}
}
