package weather

import (
	"context"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// Source fetches hourly forecasts. Implementations wrap each other: the
// Open-Meteo client at the bottom, then RateLimitedSource, then CachedSource.
type Source interface {
	// FetchForecast returns at least days*24 hourly samples for loc.
	FetchForecast(ctx context.Context, loc domain.Location, days int) (domain.Forecast, error)

	// Name returns the source's name for logs.
	Name() string
}
