package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// DefaultBaseURL is the public Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// hourlyFields are the hourly variables requested from Open-Meteo.
var hourlyFields = []string{
	"temperature_2m",
	"weathercode",
	"windspeed_10m",
	"windgusts_10m",
	"precipitation_probability",
	"cloudcover",
}

// OpenMeteo fetches forecasts from the Open-Meteo API. Timestamps in the
// response are local civil time in zone without an offset marker.
type OpenMeteo struct {
	baseURL    string
	zone       *time.Location
	httpClient *http.Client
	logger     *slog.Logger
	attempts   uint
	delay      time.Duration
	now        func() time.Time
}

// Option configures an OpenMeteo client.
type Option func(*OpenMeteo)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *OpenMeteo) { o.httpClient = c }
}

// WithRetry sets the number of attempts and the initial backoff delay.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(o *OpenMeteo) {
		o.attempts = attempts
		o.delay = delay
	}
}

// WithClock sets the clock used to stamp FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(o *OpenMeteo) { o.now = now }
}

// NewOpenMeteo creates a client for baseURL. An empty baseURL uses DefaultBaseURL.
func NewOpenMeteo(baseURL string, zone *time.Location, logger *slog.Logger, opts ...Option) *OpenMeteo {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if zone == nil {
		zone = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &OpenMeteo{
		baseURL: baseURL,
		zone:    zone,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:   logger,
		attempts: 3,
		delay:    time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider name.
func (c *OpenMeteo) Name() string {
	return "open-meteo"
}

// hourlyResponse mirrors the subset of the Open-Meteo payload we use.
// Numeric arrays may contain nulls.
type hourlyResponse struct {
	Hourly struct {
		Time                     []string   `json:"time"`
		Temperature              []*float64 `json:"temperature_2m"`
		WeatherCode              []*float64 `json:"weathercode"`
		WindSpeed                []*float64 `json:"windspeed_10m"`
		WindGusts                []*float64 `json:"windgusts_10m"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
		CloudCover               []*float64 `json:"cloudcover"`
	} `json:"hourly"`
}

// FetchForecast fetches days of hourly data for loc. Network errors and 5xx
// responses are retried with backoff; any failure is reported wrapping
// domain.ErrForecastUnavailable.
func (c *OpenMeteo) FetchForecast(ctx context.Context, loc domain.Location, days int) (domain.Forecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Lng, 'f', -1, 64))
	params.Set("hourly", strings.Join(hourlyFields, ","))
	params.Set("timezone", c.zone.String())
	params.Set("forecast_days", strconv.Itoa(days))
	endpoint := c.baseURL + "?" + params.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("weather.OpenMeteo.FetchForecast: %w: %w", domain.ErrForecastUnavailable, err)
	}

	samples, err := c.decode(body)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("weather.OpenMeteo.FetchForecast: %w: %w", domain.ErrForecastUnavailable, err)
	}

	return domain.Forecast{
		Provider:  c.Name(),
		Location:  loc,
		Samples:   samples,
		FetchedAt: c.now(),
	}, nil
}

func (c *OpenMeteo) get(ctx context.Context, endpoint string) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("execute request: %w", err)
			}
			defer resp.Body.Close()

			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read response body: %w", err)
			}

			switch {
			case resp.StatusCode == http.StatusOK:
				body = b
				return nil
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(b))
			default:
				return retry.Unrecoverable(fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(b)))
			}
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying forecast request",
				"attempt", n+1,
				"provider", c.Name(),
				"error", err,
			)
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *OpenMeteo) decode(body []byte) ([]domain.WeatherSample, error) {
	var r hourlyResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	h := r.Hourly
	n := len(h.Time)
	if n == 0 {
		return nil, fmt.Errorf("parse response: no hourly data")
	}
	for name, col := range map[string][]*float64{
		"temperature_2m":            h.Temperature,
		"weathercode":               h.WeatherCode,
		"windspeed_10m":             h.WindSpeed,
		"windgusts_10m":             h.WindGusts,
		"precipitation_probability": h.PrecipitationProbability,
		"cloudcover":                h.CloudCover,
	} {
		if len(col) != n {
			return nil, fmt.Errorf("parse response: %s has %d values, want %d", name, len(col), n)
		}
	}

	samples := make([]domain.WeatherSample, n)
	for i, ts := range h.Time {
		t, err := time.ParseInLocation("2006-01-02T15:04", ts, c.zone)
		if err != nil {
			return nil, fmt.Errorf("parse response: time %q: %w", ts, err)
		}
		s := domain.WeatherSample{Time: t}
		value := func(v *float64, f domain.Field) float64 {
			if v == nil {
				s.Missing = append(s.Missing, f)
				return 0
			}
			return *v
		}
		s.TemperatureC = value(h.Temperature[i], domain.FieldTemperature)
		s.Code = int(value(h.WeatherCode[i], domain.FieldCode))
		s.WindKmh = value(h.WindSpeed[i], domain.FieldWind)
		s.GustKmh = value(h.WindGusts[i], domain.FieldGust)
		s.PrecipitationProbability = int(value(h.PrecipitationProbability[i], domain.FieldPrecipitation))
		s.CloudCover = int(value(h.CloudCover[i], domain.FieldCloudCover))
		samples[i] = s
	}
	return samples, nil
}

var _ Source = (*OpenMeteo)(nil)
