// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default forecast point: the metro centre, close to every course.
const (
	DefaultWeatherLatitude  = 54.372
	DefaultWeatherLongitude = 18.60
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL selects the preference store. Required.
	// postgres://... uses Postgres, sqlite://path or file:path uses SQLite,
	// memory:// keeps preferences in process memory.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Zone is the civil time zone for dates, labels and forecast timestamps.
	// Set TIMEZONE to an IANA name. Defaults to Europe/Warsaw.
	Zone *time.Location

	// TickInterval is how often the plan is re-evaluated and pushed.
	TickInterval time.Duration

	// WeatherBaseURL is the Open-Meteo forecast endpoint.
	WeatherBaseURL string

	// WeatherCacheTTL is how long a fetched forecast is reused.
	WeatherCacheTTL time.Duration

	// WeatherRateLimit is the maximum forecast requests per second.
	WeatherRateLimit float64

	// WeatherLatitude and WeatherLongitude are the forecast point.
	WeatherLatitude  float64
	WeatherLongitude float64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or any
// variables whose value cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		WeatherBaseURL: getEnv("WEATHER_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	zone, err := time.LoadLocation(getEnv("TIMEZONE", "Europe/Warsaw"))
	if err != nil {
		invalid = append(invalid, "TIMEZONE")
	}
	cfg.Zone = zone

	cfg.TickInterval = getDuration("TICK_INTERVAL", 30*time.Second, &invalid)
	cfg.WeatherCacheTTL = getDuration("WEATHER_CACHE_TTL", 15*time.Minute, &invalid)
	cfg.WeatherRateLimit = getFloat("WEATHER_RATE_LIMIT", 1, &invalid)
	cfg.WeatherLatitude = getFloat("WEATHER_LATITUDE", DefaultWeatherLatitude, &invalid)
	cfg.WeatherLongitude = getFloat("WEATHER_LONGITUDE", DefaultWeatherLongitude, &invalid)

	if cfg.WeatherRateLimit <= 0 {
		invalid = append(invalid, "WEATHER_RATE_LIMIT")
	}
	if cfg.WeatherLatitude < -90 || cfg.WeatherLatitude > 90 {
		invalid = append(invalid, "WEATHER_LATITUDE")
	}
	if cfg.WeatherLongitude < -180 || cfg.WeatherLongitude > 180 {
		invalid = append(invalid, "WEATHER_LONGITUDE")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses a positive time.Duration, recording key in invalid on failure.
func getDuration(key string, fallback time.Duration, invalid *[]string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*invalid = append(*invalid, key)
		return fallback
	}
	return d
}

// getFloat parses a float, recording key in invalid on failure.
func getFloat(key string, fallback float64, invalid *[]string) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*invalid = append(*invalid, key)
		return fallback
	}
	return f
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
