package handler

import (
	"net/http"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// GetPreferences handles GET /preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, encodePreferences(s.planner.Preferences()))
}

// PutLocation handles PUT /preferences/location.
func (s *Server) PutLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Lat == nil || req.Lng == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("lat and lng are required"))
		return
	}

	plan, err := s.planner.SetLocation(r.Context(), domain.Location{Lat: *req.Lat, Lng: *req.Lng})
	s.respondPlan(w, r, plan, err)
}

// DeleteLocation handles DELETE /preferences/location.
func (s *Server) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	s.respondPlan(w, r, s.planner.ClearLocation(r.Context()), nil)
}

// PutTransport handles PUT /preferences/transport.
func (s *Server) PutTransport(w http.ResponseWriter, r *http.Request) {
	var req TransportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	plan, err := s.planner.SetTransportMode(r.Context(), req.Mode)
	s.respondPlan(w, r, plan, err)
}

// PutPrepTime handles PUT /preferences/prep-time.
func (s *Server) PutPrepTime(w http.ResponseWriter, r *http.Request) {
	var req PrepTimeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Minutes == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("minutes is required"))
		return
	}

	plan, err := s.planner.SetPrepMinutes(r.Context(), *req.Minutes)
	s.respondPlan(w, r, plan, err)
}

// PutSunAngle handles PUT /preferences/sun-angle.
func (s *Server) PutSunAngle(w http.ResponseWriter, r *http.Request) {
	var req SunAngleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Angle == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("angle is required"))
		return
	}

	plan, err := s.planner.SetSunAngle(r.Context(), *req.Angle)
	s.respondPlan(w, r, plan, err)
}

// PutOverride handles PUT /preferences/overrides/{id}.
// {"minutes": null} clears the override.
func (s *Server) PutOverride(w http.ResponseWriter, r *http.Request) {
	id, ok := bindDestinationID(w, r)
	if !ok {
		return
	}
	var req OverrideRequest
	if !decodeBody(w, r, &req) {
		return
	}

	plan, err := s.planner.SetTravelOverride(r.Context(), id, req.Minutes)
	s.respondPlan(w, r, plan, err)
}

func (s *Server) respondPlan(w http.ResponseWriter, r *http.Request, plan domain.Plan, err error) {
	if err != nil {
		s.writeError(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, EncodePlan(plan, s.zone))
}
