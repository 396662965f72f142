// Package main is a one-shot CLI that evaluates the courses once and prints
// the plan as a colored table.
//
// Usage:
//
//	plan -lat 54.35 -lng 18.60 -mode bike -prep 10 -angle -6 -at 19:30
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/pkordes/discgolf-planner/internal/config"
	"github.com/pkordes/discgolf-planner/internal/daylight"
	"github.com/pkordes/discgolf-planner/internal/domain"
	"github.com/pkordes/discgolf-planner/internal/ephemeris"
	"github.com/pkordes/discgolf-planner/internal/feasibility"
	"github.com/pkordes/discgolf-planner/internal/repo"
	"github.com/pkordes/discgolf-planner/internal/report"
	"github.com/pkordes/discgolf-planner/internal/service"
	"github.com/pkordes/discgolf-planner/internal/weather"
)

// overrides collects repeated -override id=minutes flags.
type overrides map[string]int

func (o overrides) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v))
	}
	return strings.Join(parts, ",")
}

func (o overrides) Set(s string) error {
	id, raw, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("want id=minutes, got %q", s)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("minutes for %q: %w", id, err)
	}
	o[id] = n
	return nil
}

// offline is the forecast source used with -offline.
type offline struct{}

func (offline) Name() string { return "offline" }

func (offline) FetchForecast(context.Context, domain.Location, int) (domain.Forecast, error) {
	return domain.Forecast{}, fmt.Errorf("offline: %w", domain.ErrForecastUnavailable)
}

// options is the parsed command line.
type options struct {
	lat, lng      float64
	mode          string
	prep          int
	angle         float64
	tz            string
	dbURL         string
	at            string
	forecastPoint domain.Location
	offline       bool
	verbose       bool
	manual        overrides
	// set holds the names of flags given on the command line.
	set map[string]bool

	// forecasts replaces the Open-Meteo source when set.
	forecasts weather.Source
}

// defaultOptions mirrors the API server's defaults.
func defaultOptions() options {
	return options{
		mode:          string(domain.DefaultTransportMode),
		prep:          domain.DefaultPrepMinutes,
		angle:         float64(domain.DefaultSunAngle),
		tz:            envOr("TIMEZONE", "Europe/Warsaw"),
		dbURL:         envOr("DATABASE_URL", "memory://"),
		forecastPoint: domain.Location{Lat: config.DefaultWeatherLatitude, Lng: config.DefaultWeatherLongitude},
		manual:        overrides{},
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: could not read .env:", err)
	}

	opts := defaultOptions()
	flag.Float64Var(&opts.lat, "lat", 0, "your latitude")
	flag.Float64Var(&opts.lng, "lng", 0, "your longitude")
	flag.StringVar(&opts.mode, "mode", opts.mode, "transport mode: walk, bike, car, transit")
	flag.IntVar(&opts.prep, "prep", opts.prep, "preparation minutes before leaving")
	flag.Float64Var(&opts.angle, "angle", opts.angle, "sun elevation cutoff in degrees")
	flag.StringVar(&opts.tz, "tz", opts.tz, "IANA time zone for labels")
	flag.StringVar(&opts.dbURL, "db", opts.dbURL, "preference store; stored preferences are loaded, then flags applied")
	flag.StringVar(&opts.at, "at", "", "evaluate at this instant: RFC 3339, or HH:MM today in -tz")
	flag.Float64Var(&opts.forecastPoint.Lat, "forecast-lat", opts.forecastPoint.Lat, "forecast point latitude")
	flag.Float64Var(&opts.forecastPoint.Lng, "forecast-lng", opts.forecastPoint.Lng, "forecast point longitude")
	flag.BoolVar(&opts.offline, "offline", false, "skip the weather forecast")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.BoolVar(&opts.verbose, "v", false, "log to stderr")
	flag.Var(opts.manual, "override", "manual travel minutes as id=minutes (repeatable)")
	flag.Parse()
	opts.set = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if *noColor {
		color.NoColor = true
	}

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run evaluates once and prints the plan. Every exit path releases the store.
func run(ctx context.Context, opts options, out io.Writer) error {
	level := slog.LevelError
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	zone, err := time.LoadLocation(opts.tz)
	if err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	if !opts.forecastPoint.Valid() {
		return fmt.Errorf("invalid forecast point %s", opts.forecastPoint)
	}

	now := time.Now
	if opts.at != "" {
		fixed, err := parseAt(opts.at, zone, time.Now())
		if err != nil {
			return fmt.Errorf("invalid -at: %w", err)
		}
		now = func() time.Time { return fixed }
	}

	store, err := repo.Open(ctx, opts.dbURL, logger)
	if err != nil {
		return fmt.Errorf("open preference store: %w", err)
	}
	defer store.Close()

	forecasts := opts.forecasts
	switch {
	case opts.offline:
		forecasts = offline{}
	case forecasts == nil:
		forecasts = weather.NewCachedSource(weather.NewOpenMeteo(weather.DefaultBaseURL, zone, logger), 15*time.Minute, nil, logger)
	}

	engine := feasibility.NewEngine(daylight.NewResolver(ephemeris.NewSunrise(zone)))
	planner := service.NewPlanner(store.Preferences, engine, forecasts, service.Options{
		Zone:          zone,
		ForecastPoint: opts.forecastPoint,
		Now:           now,
		Logger:        logger,
	})
	planner.Restore(ctx)

	if err := apply(ctx, planner, opts); err != nil {
		return fmt.Errorf("invalid option: %w", err)
	}

	if err := report.Render(out, planner.Plan(ctx), zone); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// apply pushes the explicitly given flags through the planner's validated mutators.
func apply(ctx context.Context, p *service.Planner, opts options) error {
	set := opts.set
	if set["lat"] || set["lng"] {
		if _, err := p.SetLocation(ctx, domain.Location{Lat: opts.lat, Lng: opts.lng}); err != nil {
			return err
		}
	}
	if set["mode"] {
		if _, err := p.SetTransportMode(ctx, opts.mode); err != nil {
			return err
		}
	}
	if set["prep"] {
		if _, err := p.SetPrepMinutes(ctx, opts.prep); err != nil {
			return err
		}
	}
	if set["angle"] {
		if _, err := p.SetSunAngle(ctx, opts.angle); err != nil {
			return err
		}
	}
	for id, m := range opts.manual {
		if _, err := p.SetTravelOverride(ctx, id, &m); err != nil {
			return err
		}
	}
	return nil
}

// parseAt accepts an RFC 3339 instant or a wall clock time on today's date.
func parseAt(s string, zone *time.Location, today time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	clock, err := time.ParseInLocation("15:04", s, zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC 3339 or HH:MM, got %q", s)
	}
	y, m, d := today.In(zone).Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, zone), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
