// Package main is the entry point for the planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pkordes/discgolf-planner/internal/config"
	"github.com/pkordes/discgolf-planner/internal/daylight"
	"github.com/pkordes/discgolf-planner/internal/domain"
	"github.com/pkordes/discgolf-planner/internal/ephemeris"
	"github.com/pkordes/discgolf-planner/internal/feasibility"
	"github.com/pkordes/discgolf-planner/internal/handler"
	"github.com/pkordes/discgolf-planner/internal/middleware"
	"github.com/pkordes/discgolf-planner/internal/repo"
	"github.com/pkordes/discgolf-planner/internal/scheduler"
	"github.com/pkordes/discgolf-planner/internal/service"
	"github.com/pkordes/discgolf-planner/internal/weather"
	"github.com/pkordes/discgolf-planner/internal/websocket"
)

// maxBodyBytes caps request bodies; every request body here is a tiny JSON object.
const maxBodyBytes = 64 << 10

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Preference store -------------------------------------------------
	store, err := repo.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		slog.Error("failed to open preference store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("preference store ready", "backend", store.Backend)

	// --- Domain -----------------------------------------------------------
	engine := feasibility.NewEngine(daylight.NewResolver(ephemeris.NewSunrise(cfg.Zone)))

	var forecasts weather.Source = weather.NewOpenMeteo(cfg.WeatherBaseURL, cfg.Zone, logger)
	forecasts = weather.NewRateLimitedSource(forecasts, cfg.WeatherRateLimit, 2)
	forecasts = weather.NewCachedSource(forecasts, cfg.WeatherCacheTTL, nil, logger)
	slog.Info("forecast source configured", "source", forecasts.Name())

	planner := service.NewPlanner(store.Preferences, engine, forecasts, service.Options{
		Zone:          cfg.Zone,
		ForecastPoint: domain.Location{Lat: cfg.WeatherLatitude, Lng: cfg.WeatherLongitude},
		Logger:        logger,
	})
	planner.Restore(ctx)

	// --- Live updates -----------------------------------------------------
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)
	planner.Subscribe(websocket.NewPlanBroadcaster(hub, func(p domain.Plan) any {
		return handler.EncodePlan(p, cfg.Zone)
	}, logger))
	stream := websocket.NewServer(hub, allowOrigin(cfg.CORSOrigins), logger)

	sched := scheduler.New(planner, cfg.TickInterval, logger)
	if err := sched.Start(ctx); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body cap.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	handler.NewServer(planner, stream, cfg.Zone, logger).Register(r)

	// --- HTTP Server ------------------------------------------------------
	// No WriteTimeout: it would cut long-lived websocket connections.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

// allowOrigin accepts websocket upgrades from the configured CORS origins and
// from clients that send no Origin header (CLI tools, same-origin proxies).
func allowOrigin(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin)
	}
}
