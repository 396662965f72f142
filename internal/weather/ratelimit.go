package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// RateLimitedSource wraps a Source with a token-bucket limiter.
type RateLimitedSource struct {
	source  Source
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedSource creates a rate limited source.
// rps is the maximum requests per second (may be fractional), burst the
// maximum burst size.
func NewRateLimitedSource(source Source, rps float64, burst int) *RateLimitedSource {
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchForecast waits for limiter permission, then forwards to the wrapped source.
func (r *RateLimitedSource) FetchForecast(ctx context.Context, loc domain.Location, days int) (domain.Forecast, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return domain.Forecast{}, fmt.Errorf("rate limit wait canceled: %w: %w", domain.ErrForecastUnavailable, err)
	}
	return r.source.FetchForecast(ctx, loc, days)
}

// Name returns the source name.
func (r *RateLimitedSource) Name() string {
	return r.name
}

var _ Source = (*RateLimitedSource)(nil)
