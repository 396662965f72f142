// Package scheduler re-runs the evaluation pass on a fixed interval so
// connected clients see the countdown advance without any user action.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// DefaultInterval is the evaluation tick.
const DefaultInterval = 30 * time.Second

// Ticker runs and publishes one evaluation pass. *service.Planner satisfies it.
type Ticker interface {
	Tick(ctx context.Context) domain.Plan
}

// Scheduler owns the cron instance driving the ticks.
type Scheduler struct {
	cron     *cron.Cron
	ticker   Ticker
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

// New creates a scheduler. Intervals below one second are raised to one
// second, the cron resolution.
func New(t Ticker, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval < time.Second {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		ticker:   t,
		interval: interval,
		timeout:  interval,
		logger:   logger,
	}
}

// Start schedules the tick and starts cron. Each run gets a context bounded
// by the interval and derived from ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("scheduler.Scheduler.Start: add %q: %w", spec, err)
	}
	s.cron.Start()
	s.logger.Info("evaluation scheduler started", "interval", s.interval.String())
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("evaluation scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	plan := s.ticker.Tick(ctx)
	s.logger.Debug("evaluation tick",
		"plan_id", plan.ID,
		"weather", plan.Weather.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
