// Package service contains the session logic of the planner.
// The Planner owns the player's preferences, validates mutations, and runs
// the evaluation pass that turns preferences plus the clock into a Plan.
// No SQL lives here; the Planner depends on repo and weather interfaces.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/discgolf-planner/internal/domain"
	"github.com/pkordes/discgolf-planner/internal/feasibility"
	"github.com/pkordes/discgolf-planner/internal/repo"
	"github.com/pkordes/discgolf-planner/internal/travel"
	"github.com/pkordes/discgolf-planner/internal/weather"
)

// ForecastDays is the forecast horizon requested per evaluation. Two days
// covers a "tomorrow" advisory anchored on the next sunrise.
const ForecastDays = 2

// Evaluator classifies a single destination. *feasibility.Engine satisfies it.
type Evaluator interface {
	Evaluate(in feasibility.Input) domain.FeasibilityResult
}

// Publisher receives every plan produced by the Planner.
type Publisher interface {
	Publish(plan domain.Plan)
}

// Options carries the Planner's collaborators that have sensible defaults.
type Options struct {
	// Zone is the civil time zone used for forecast hour labels.
	Zone *time.Location
	// ForecastPoint is where the forecast is fetched for.
	ForecastPoint domain.Location
	// Now is the clock; nil means time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// Planner is the explicit session context. Preference reads and writes and
// the per-destination classification run under mu; the forecast fetch does not.
type Planner struct {
	mu    sync.Mutex
	prefs domain.Preferences

	repo      repo.PreferenceRepo
	engine    Evaluator
	forecasts weather.Source

	publishersMu sync.RWMutex
	publishers   []Publisher

	zone   *time.Location
	point  domain.Location
	now    func() time.Time
	logger *slog.Logger
}

// NewPlanner constructs a Planner starting from default preferences.
// Call Restore to load the persisted snapshot.
func NewPlanner(r repo.PreferenceRepo, engine Evaluator, forecasts weather.Source, opts Options) *Planner {
	if opts.Zone == nil {
		opts.Zone = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Planner{
		prefs:     domain.DefaultPreferences(),
		repo:      r,
		engine:    engine,
		forecasts: forecasts,
		zone:      opts.Zone,
		point:     opts.ForecastPoint,
		now:       opts.Now,
		logger:    opts.Logger,
	}
}

// Subscribe registers pub to receive every plan.
func (p *Planner) Subscribe(pub Publisher) {
	p.publishersMu.Lock()
	defer p.publishersMu.Unlock()
	p.publishers = append(p.publishers, pub)
}

// Restore loads the persisted preferences. A load failure keeps defaults and
// is only logged: a missing snapshot is not an error for the player.
func (p *Planner) Restore(ctx context.Context) {
	prefs, err := p.repo.Load(ctx)
	if err != nil {
		p.logger.Warn("load preferences failed, using defaults", "error", err)
		return
	}
	p.mu.Lock()
	p.prefs = prefs
	p.mu.Unlock()
}

// Preferences returns a copy of the current preferences.
func (p *Planner) Preferences() domain.Preferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prefs.Clone()
}

// Plan runs one evaluation pass without publishing it.
func (p *Planner) Plan(ctx context.Context) domain.Plan {
	p.mu.Lock()
	now := p.now()
	prefs := p.prefs.Clone()
	dests := p.classify(now, prefs)
	p.mu.Unlock()

	arrivals := make([]*time.Time, 0, len(dests))
	for _, d := range dests {
		arrivals = append(arrivals, d.Result.Arrival)
	}
	anchor := weather.SelectAnchor(now, arrivals)

	return domain.Plan{
		ID:           uuid.New(),
		GeneratedAt:  now,
		Preferences:  prefs,
		Destinations: dests,
		Weather:      p.advise(ctx, anchor),
	}
}

// Tick runs an evaluation pass and publishes it.
func (p *Planner) Tick(ctx context.Context) domain.Plan {
	plan := p.Plan(ctx)
	p.publish(plan)
	return plan
}

// SetLocation sets the player's position.
func (p *Planner) SetLocation(ctx context.Context, loc domain.Location) (domain.Plan, error) {
	if math.IsNaN(loc.Lat) || math.IsNaN(loc.Lng) || !loc.Valid() {
		return domain.Plan{}, fmt.Errorf("service.Planner.SetLocation: %w: location %s is out of range", domain.ErrValidation, loc)
	}
	return p.mutate(ctx, func(prefs *domain.Preferences) { prefs.UserLocation = &loc }), nil
}

// ClearLocation forgets the player's position.
func (p *Planner) ClearLocation(ctx context.Context) domain.Plan {
	return p.mutate(ctx, func(prefs *domain.Preferences) { prefs.UserLocation = nil })
}

// SetTransportMode changes how the player travels.
func (p *Planner) SetTransportMode(ctx context.Context, mode string) (domain.Plan, error) {
	m, err := domain.ParseTransportMode(mode)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.Planner.SetTransportMode: %w", err)
	}
	return p.mutate(ctx, func(prefs *domain.Preferences) { prefs.TransportMode = m }), nil
}

// SetPrepMinutes changes the preparation time added before travel.
func (p *Planner) SetPrepMinutes(ctx context.Context, minutes int) (domain.Plan, error) {
	if minutes < 0 {
		return domain.Plan{}, fmt.Errorf("service.Planner.SetPrepMinutes: %w: prep time must not be negative", domain.ErrValidation)
	}
	return p.mutate(ctx, func(prefs *domain.Preferences) { prefs.PrepMinutes = minutes }), nil
}

// SetSunAngle changes the target solar elevation. Any finite angle is
// accepted; out-of-ladder angles resolve to the horizon instant.
func (p *Planner) SetSunAngle(ctx context.Context, angle float64) (domain.Plan, error) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return domain.Plan{}, fmt.Errorf("service.Planner.SetSunAngle: %w: angle must be a finite number", domain.ErrValidation)
	}
	return p.mutate(ctx, func(prefs *domain.Preferences) { prefs.SunAngle = domain.SolarAngle(angle) }), nil
}

// SetTravelOverride sets a manual travel time for one destination.
// A nil minutes clears the override.
func (p *Planner) SetTravelOverride(ctx context.Context, destinationID string, minutes *int) (domain.Plan, error) {
	if _, err := domain.DestinationByID(destinationID); err != nil {
		return domain.Plan{}, fmt.Errorf("service.Planner.SetTravelOverride: %w", err)
	}
	if minutes != nil && *minutes < 0 {
		return domain.Plan{}, fmt.Errorf("service.Planner.SetTravelOverride: %w: travel time must not be negative", domain.ErrValidation)
	}
	return p.mutate(ctx, func(prefs *domain.Preferences) {
		if minutes == nil {
			delete(prefs.TravelOverrides, destinationID)
			return
		}
		prefs.TravelOverrides[destinationID] = *minutes
	}), nil
}

// mutate applies fn to the session preferences, persists them best effort,
// then re-evaluates and publishes.
func (p *Planner) mutate(ctx context.Context, fn func(*domain.Preferences)) domain.Plan {
	p.mu.Lock()
	fn(&p.prefs)
	snapshot := p.prefs.Clone()
	p.mu.Unlock()

	if err := p.repo.Save(ctx, snapshot); err != nil {
		p.logger.Warn("save preferences failed", "error", err)
	}
	return p.Tick(ctx)
}

// classify evaluates every destination. Caller holds mu.
func (p *Planner) classify(now time.Time, prefs domain.Preferences) []domain.DestinationPlan {
	dests := domain.Destinations()
	out := make([]domain.DestinationPlan, 0, len(dests))
	for _, d := range dests {
		estimate := travel.Estimate(prefs.UserLocation, d.Location, prefs.TransportMode)
		override := prefs.Override(d.ID)
		res := p.engine.Evaluate(feasibility.Input{
			Now:           now,
			Destination:   d,
			TravelMinutes: travel.EffectiveTravelTime(override, estimate),
			PrepMinutes:   prefs.PrepMinutes,
			Angle:         prefs.SunAngle,
		})
		out = append(out, domain.DestinationPlan{
			Destination: d,
			Estimate:    estimate,
			Overridden:  override != nil,
			Result:      res,
		})
	}
	return out
}

// advise fetches the forecast and assesses it around anchor. A failed fetch
// degrades to the "no data" advisory.
func (p *Planner) advise(ctx context.Context, anchor time.Time) domain.WeatherAdvisory {
	if p.forecasts == nil {
		return weather.Unavailable(anchor)
	}
	f, err := p.forecasts.FetchForecast(ctx, p.point, ForecastDays)
	if err != nil {
		p.logger.Warn("forecast unavailable", "source", p.forecasts.Name(), "error", err)
		return weather.Unavailable(anchor)
	}
	return weather.Assess(f, anchor, p.zone)
}

func (p *Planner) publish(plan domain.Plan) {
	p.publishersMu.RLock()
	defer p.publishersMu.RUnlock()
	for _, pub := range p.publishers {
		pub.Publish(plan)
	}
}
