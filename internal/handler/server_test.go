package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/discgolf-planner/internal/domain"
	"github.com/pkordes/discgolf-planner/internal/handler"
)

// mockPlanner is a hand-written test double for handler.Planner.
// Each method is a function field; set only the ones your test needs.
type mockPlanner struct {
	plan          func(ctx context.Context) domain.Plan
	preferences   func() domain.Preferences
	setLocation   func(ctx context.Context, loc domain.Location) (domain.Plan, error)
	clearLocation func(ctx context.Context) domain.Plan
	setTransport  func(ctx context.Context, mode string) (domain.Plan, error)
	setPrep       func(ctx context.Context, minutes int) (domain.Plan, error)
	setAngle      func(ctx context.Context, angle float64) (domain.Plan, error)
	setOverride   func(ctx context.Context, id string, minutes *int) (domain.Plan, error)
}

func (m *mockPlanner) Plan(ctx context.Context) domain.Plan { return m.plan(ctx) }
func (m *mockPlanner) Preferences() domain.Preferences      { return m.preferences() }
func (m *mockPlanner) SetLocation(ctx context.Context, loc domain.Location) (domain.Plan, error) {
	return m.setLocation(ctx, loc)
}
func (m *mockPlanner) ClearLocation(ctx context.Context) domain.Plan { return m.clearLocation(ctx) }
func (m *mockPlanner) SetTransportMode(ctx context.Context, mode string) (domain.Plan, error) {
	return m.setTransport(ctx, mode)
}
func (m *mockPlanner) SetPrepMinutes(ctx context.Context, minutes int) (domain.Plan, error) {
	return m.setPrep(ctx, minutes)
}
func (m *mockPlanner) SetSunAngle(ctx context.Context, angle float64) (domain.Plan, error) {
	return m.setAngle(ctx, angle)
}
func (m *mockPlanner) SetTravelOverride(ctx context.Context, id string, minutes *int) (domain.Plan, error) {
	return m.setOverride(ctx, id, minutes)
}

// compile-time check: mockPlanner must satisfy handler.Planner.
var _ handler.Planner = (*mockPlanner)(nil)

// ---- helpers ---------------------------------------------------------------

func at(h, m int) time.Time {
	return time.Date(2025, 4, 15, h, m, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// samplePlan has one of each interesting state.
func samplePlan() domain.Plan {
	dests := domain.Destinations()
	leaveBy := at(7, 5)
	return domain.Plan{
		ID:          uuid.MustParse("8f4a1c2e-0000-4000-8000-000000000001"),
		GeneratedAt: at(2, 0),
		Preferences: domain.DefaultPreferences(),
		Destinations: []domain.DestinationPlan{
			{
				Destination: dests[0],
				Estimate:    ptr(20),
				Result: domain.FeasibilityResult{
					DestinationID: dests[0].ID,
					State:         domain.StateNight,
					SunTime:       at(18, 30),
					SunriseTime:   at(7, 30),
					TravelMinutes: ptr(20),
					Arrival:       ptr(at(7, 30)),
					PlayWindow:    ptr(11 * time.Hour),
					Advisory: &domain.Advisory{
						Kind:       domain.AdvisoryLeaveBy,
						LeaveBy:    &leaveBy,
						StartAt:    at(7, 30),
						PlayWindow: 11 * time.Hour,
					},
				},
			},
			{
				Destination: dests[1],
				Overridden:  true,
				Result: domain.FeasibilityResult{
					DestinationID: dests[1].ID,
					State:         domain.StateTooLate,
					SunTime:       at(18, 30),
					TravelMinutes: ptr(25),
					Arrival:       ptr(at(18, 45)),
					Lateness:      ptr(15 * time.Minute),
				},
			},
			{
				Destination: dests[2],
				Result: domain.FeasibilityResult{
					DestinationID: dests[2].ID,
					State:         domain.StateNoLocation,
				},
			},
		},
		Weather: domain.WeatherAdvisory{Status: domain.WeatherNoData, Hours: []domain.HourSummary{}, Alerts: []domain.Alert{}},
	}
}

func newRouter(p *mockPlanner) http.Handler {
	r := chi.NewRouter()
	handler.NewServer(p, nil, time.UTC, nil).Register(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// ---- GET /plan -------------------------------------------------------------

func TestGetPlan_EncodesStatesAndLabels(t *testing.T) {
	h := newRouter(&mockPlanner{plan: func(context.Context) domain.Plan { return samplePlan() }})

	rec := do(t, h, http.MethodGet, "/plan", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.PlanResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Destinations, 3)

	night := body.Destinations[0]
	assert.Equal(t, domain.StateNight, night.State)
	assert.Equal(t, "18:30", night.SunTimeLabel)
	assert.Equal(t, "07:30", night.ArrivalLabel)
	require.NotNil(t, night.Advisory)
	assert.Equal(t, "07:05", night.Advisory.LeaveByLabel)
	assert.Equal(t, "11 h", night.Advisory.PlayWindowLabel)

	late := body.Destinations[1]
	assert.True(t, late.Overridden)
	assert.Nil(t, late.EstimateMinutes)
	require.NotNil(t, late.LatenessMinutes)
	assert.Equal(t, 15, *late.LatenessMinutes)
	assert.Equal(t, "15 min", late.LatenessLabel)
	assert.Nil(t, late.SunriseTime, "zero instant encodes as null")
	assert.Equal(t, "--:--", late.SunriseLabel)

	none := body.Destinations[2]
	assert.Equal(t, domain.StateNoLocation, none.State)
	assert.Nil(t, none.Arrival)
	assert.Equal(t, "--:--", none.ArrivalLabel)
	assert.Nil(t, none.Advisory)

	assert.Equal(t, domain.WeatherNoData, body.Weather.Status)
	assert.Equal(t, "car", body.Preferences.TransportMode)
}

// ---- static resources ------------------------------------------------------

func TestListDestinations(t *testing.T) {
	rec := do(t, newRouter(&mockPlanner{}), http.MethodGet, "/destinations", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []handler.DestinationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 3)
	assert.Equal(t, "jaskowa", body[0].ID)
	assert.Contains(t, body[0].OSMLink, "openstreetmap.org")
}

func TestListPresets(t *testing.T) {
	rec := do(t, newRouter(&mockPlanner{}), http.MethodGet, "/presets", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []handler.PresetResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 5)
	assert.Equal(t, 6.0, body[0].Angle)
	assert.Equal(t, -18.0, body[4].Angle)
}

func TestGetDestinationLinks(t *testing.T) {
	p := &mockPlanner{preferences: func() domain.Preferences {
		prefs := domain.DefaultPreferences()
		prefs.UserLocation = &domain.Location{Lat: 54.35, Lng: 18.65}
		prefs.TransportMode = domain.ModeTransit
		return prefs
	}}
	h := newRouter(p)

	rec := do(t, h, http.MethodGet, "/destinations/zbocze/links?platform=mobile", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Route    struct{ URL string } `json:"route"`
		Navigate struct{ URL string } `json:"navigate"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Route.URL, "jakdojade.pl")
	assert.Contains(t, body.Navigate.URL, "geo:")
}

func TestGetDestinationLinks_Errors(t *testing.T) {
	p := &mockPlanner{preferences: domain.DefaultPreferences}
	h := newRouter(p)

	rec := do(t, h, http.MethodGet, "/destinations/atlantis/links", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error.Code)

	rec = do(t, h, http.MethodGet, "/destinations/zbocze/links?platform=watch", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, `unknown platform "watch"`, decodeError(t, rec).Error.Message)
}

func TestParameterBinding(t *testing.T) {
	var gotID string
	p := &mockPlanner{
		preferences: domain.DefaultPreferences,
		setOverride: func(_ context.Context, id string, _ *int) (domain.Plan, error) {
			gotID = id
			return samplePlan(), nil
		},
	}
	h := newRouter(p)

	// Percent-encoded path segments are decoded before lookup.
	rec := do(t, h, http.MethodGet, "/destinations/%7Abocze/links", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPut, "/preferences/overrides/%72eagana", `{"minutes":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reagana", gotID)

	// A segment that is not valid percent-encoding is rejected.
	req := httptest.NewRequest(http.MethodGet, "/destinations/zbocze/links", nil)
	req.URL.RawPath = "/destinations/%zz/links"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Contains(t, body.Error.Message, "parameter id")

	// platform is a single value.
	rec = do(t, h, http.MethodGet, "/destinations/zbocze/links?platform=mobile&platform=desktop", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body = decodeError(t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Contains(t, body.Error.Message, "parameter platform")
}

// ---- preferences -----------------------------------------------------------

func TestGetPreferences(t *testing.T) {
	h := newRouter(&mockPlanner{preferences: domain.DefaultPreferences})

	rec := do(t, h, http.MethodGet, "/preferences", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"user_location":null,"transport_mode":"car","prep_minutes":5,"sun_angle":0,"travel_overrides":{}}`,
		rec.Body.String())
}

func TestPutLocation(t *testing.T) {
	var got domain.Location
	p := &mockPlanner{setLocation: func(_ context.Context, loc domain.Location) (domain.Plan, error) {
		got = loc
		return samplePlan(), nil
	}}

	rec := do(t, newRouter(p), http.MethodPut, "/preferences/location", `{"lat":54.35,"lng":18.65}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Location{Lat: 54.35, Lng: 18.65}, got)
}

func TestPutLocation_BadRequests(t *testing.T) {
	p := &mockPlanner{setLocation: func(context.Context, domain.Location) (domain.Plan, error) {
		return domain.Plan{}, fmt.Errorf("service.Planner.SetLocation: %w: location 95.00000, 0.00000 is out of range", domain.ErrValidation)
	}}
	h := newRouter(p)

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"malformed", `{"lat":`, "malformed JSON body"},
		{"unknown field", `{"lat":1,"lng":2,"alt":3}`, "malformed JSON body"},
		{"missing lng", `{"lat":1}`, "lat and lng are required"},
		{"out of range", `{"lat":95,"lng":0}`, "location 95.00000, 0.00000 is out of range"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPut, "/preferences/location", tc.body)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "validation_error", body.Error.Code)
			assert.Equal(t, tc.msg, body.Error.Message)
		})
	}
}

func TestDeleteLocation(t *testing.T) {
	called := false
	p := &mockPlanner{clearLocation: func(context.Context) domain.Plan {
		called = true
		return samplePlan()
	}}

	rec := do(t, newRouter(p), http.MethodDelete, "/preferences/location", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestPutTransport(t *testing.T) {
	p := &mockPlanner{setTransport: func(_ context.Context, mode string) (domain.Plan, error) {
		if mode != "bike" {
			_, err := domain.ParseTransportMode(mode)
			return domain.Plan{}, fmt.Errorf("service.Planner.SetTransportMode: %w", err)
		}
		return samplePlan(), nil
	}}
	h := newRouter(p)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/preferences/transport", `{"mode":"bike"}`).Code)

	rec := do(t, h, http.MethodPut, "/preferences/transport", `{"mode":"rocket"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, `unknown transport mode "rocket"`, decodeError(t, rec).Error.Message)
}

func TestPutPrepTime(t *testing.T) {
	var got int
	p := &mockPlanner{setPrep: func(_ context.Context, minutes int) (domain.Plan, error) {
		got = minutes
		return samplePlan(), nil
	}}
	h := newRouter(p)

	rec := do(t, h, http.MethodPut, "/preferences/prep-time", `{"minutes":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, got)

	rec = do(t, h, http.MethodPut, "/preferences/prep-time", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPutSunAngle(t *testing.T) {
	var got float64
	p := &mockPlanner{setAngle: func(_ context.Context, angle float64) (domain.Plan, error) {
		got = angle
		return samplePlan(), nil
	}}

	rec := do(t, newRouter(p), http.MethodPut, "/preferences/sun-angle", `{"angle":-3.5}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -3.5, got)
}

func TestPutOverride(t *testing.T) {
	var gotID string
	var gotMinutes *int
	p := &mockPlanner{setOverride: func(_ context.Context, id string, minutes *int) (domain.Plan, error) {
		if id == "atlantis" {
			_, err := domain.DestinationByID(id)
			return domain.Plan{}, fmt.Errorf("service.Planner.SetTravelOverride: %w", err)
		}
		gotID, gotMinutes = id, minutes
		return samplePlan(), nil
	}}
	h := newRouter(p)

	rec := do(t, h, http.MethodPut, "/preferences/overrides/reagana", `{"minutes":25}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reagana", gotID)
	require.NotNil(t, gotMinutes)
	assert.Equal(t, 25, *gotMinutes)

	rec = do(t, h, http.MethodPut, "/preferences/overrides/reagana", `{"minutes":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotMinutes)

	rec = do(t, h, http.MethodPut, "/preferences/overrides/atlantis", `{"minutes":5}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "destination not found", decodeError(t, rec).Error.Message)
}

func TestWriteError_UnexpectedErrorIs500(t *testing.T) {
	p := &mockPlanner{setPrep: func(context.Context, int) (domain.Plan, error) {
		return domain.Plan{}, fmt.Errorf("boom")
	}}

	rec := do(t, newRouter(p), http.MethodPut, "/preferences/prep-time", `{"minutes":3}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Error.Code)
}

func TestStreamRoute_OnlyWhenConfigured(t *testing.T) {
	rec := do(t, newRouter(&mockPlanner{}), http.MethodGet, "/ws", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// fakeStreamer records the initial message instead of upgrading.
type fakeStreamer struct{ initial []byte }

func (f *fakeStreamer) Serve(w http.ResponseWriter, _ *http.Request, initial []byte) {
	f.initial = initial
	w.WriteHeader(http.StatusSwitchingProtocols)
}

func TestGetStream_SendsCurrentPlanFirst(t *testing.T) {
	stream := &fakeStreamer{}
	r := chi.NewRouter()
	handler.NewServer(&mockPlanner{plan: func(context.Context) domain.Plan { return samplePlan() }}, stream, time.UTC, nil).Register(r)

	do(t, r, http.MethodGet, "/ws", "")

	var msg struct {
		Type    string               `json:"type"`
		Payload handler.PlanResponse `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(stream.initial, &msg))
	assert.Equal(t, "plan.updated", msg.Type)
	assert.Equal(t, samplePlan().ID, msg.Payload.ID)
}
