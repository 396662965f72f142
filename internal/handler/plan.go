package handler

import (
	"net/http"

	"github.com/pkordes/discgolf-planner/internal/domain"
	"github.com/pkordes/discgolf-planner/internal/navigation"
	"github.com/pkordes/discgolf-planner/internal/websocket"
)

// GetPlan handles GET /plan: one full evaluation pass.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, EncodePlan(s.planner.Plan(r.Context()), s.zone))
}

// ListDestinations handles GET /destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, _ *http.Request) {
	dests := domain.Destinations()
	out := make([]DestinationResponse, 0, len(dests))
	for _, d := range dests {
		out = append(out, encodeDestination(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetDestinationLinks handles GET /destinations/{id}/links?platform=mobile|desktop.
func (s *Server) GetDestinationLinks(w http.ResponseWriter, r *http.Request) {
	id, ok := bindDestinationID(w, r)
	if !ok {
		return
	}
	platform, ok := bindPlatform(w, r)
	if !ok {
		return
	}
	dest, err := domain.DestinationByID(id)
	if err != nil {
		s.writeError(w, r, err, "destination not found")
		return
	}

	prefs := s.planner.Preferences()
	writeJSON(w, http.StatusOK, navigation.For(dest, prefs.UserLocation, prefs.TransportMode, platform))
}

// ListPresets handles GET /presets.
func (s *Server) ListPresets(w http.ResponseWriter, _ *http.Request) {
	presets := domain.Presets()
	out := make([]PresetResponse, 0, len(presets))
	for _, p := range presets {
		out = append(out, PresetResponse{Name: p.Name, Angle: float64(p.Angle)})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetStream handles GET /ws. The current plan is sent as soon as the
// connection opens; later plans arrive on every tick and mutation.
func (s *Server) GetStream(w http.ResponseWriter, r *http.Request) {
	plan := s.planner.Plan(r.Context())
	initial, err := websocket.NewMessage(websocket.TypePlanUpdated, plan.GeneratedAt, EncodePlan(plan, s.zone)).JSON()
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.stream.Serve(w, r, initial)
}
