package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// DefaultTTL is how long a fetched forecast is considered fresh.
const DefaultTTL = 15 * time.Minute

// staleFor is how long past its TTL a forecast may still be served when a
// refresh fails. It matches the two-day forecast horizon.
const staleFor = 48 * time.Hour

type cacheEntry struct {
	Forecast domain.Forecast
	StoredAt time.Time
}

// CachedSource memoizes forecasts per location and horizon.
// Freshness is judged with the injected clock; otter only bounds memory.
// Concurrent refreshes are not coalesced: the last write wins.
type CachedSource struct {
	source Source
	cache  *otter.Cache[string, cacheEntry]
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedSource wraps source with a ttl memo. A nil clock means time.Now.
func NewCachedSource(source Source, ttl time.Duration, now func() time.Time, logger *slog.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSource{
		source: source,
		cache: otter.Must(&otter.Options[string, cacheEntry]{
			MaximumSize:      64,
			ExpiryCalculator: otter.ExpiryWriting[string, cacheEntry](ttl + staleFor),
		}),
		ttl:    ttl,
		now:    now,
		logger: logger,
	}
}

// Name returns the underlying source name with a [Cached] suffix.
func (c *CachedSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchForecast returns the memoized forecast while it is fresh. Otherwise it
// refetches; if that fails and an older forecast exists, the older one is
// returned marked Stale so the display keeps showing the last known data.
func (c *CachedSource) FetchForecast(ctx context.Context, loc domain.Location, days int) (domain.Forecast, error) {
	key := fmt.Sprintf("%.4f:%.4f:%d", loc.Lat, loc.Lng, days)

	entry, found := c.cache.GetIfPresent(key)
	if found {
		age := c.now().Sub(entry.StoredAt)
		if age < c.ttl {
			c.hits.Add(1)
			c.logger.Debug("forecast cache hit", "key", key, "source", c.source.Name(), "age", age.Round(time.Second))
			return entry.Forecast, nil
		}
	}

	c.misses.Add(1)
	c.logger.Debug("forecast cache miss", "key", key, "source", c.source.Name())

	forecast, err := c.source.FetchForecast(ctx, loc, days)
	if err != nil {
		if found {
			c.logger.Warn("forecast refresh failed, serving stale forecast",
				"key", key,
				"stored_at", entry.StoredAt,
				"error", err,
			)
			stale := entry.Forecast
			stale.Stale = true
			return stale, nil
		}
		return domain.Forecast{}, err
	}

	c.cache.Set(key, cacheEntry{Forecast: forecast, StoredAt: c.now()})
	return forecast, nil
}

// CacheStats returns cache hit and miss counts.
func (c *CachedSource) CacheStats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

var _ Source = (*CachedSource)(nil)
