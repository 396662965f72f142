// Package travel converts distance and transport mode into travel-time
// estimates and merges them with manual overrides.
package travel

import (
	"math"

	"github.com/pkordes/discgolf-planner/internal/domain"
	"github.com/pkordes/discgolf-planner/internal/geo"
)

// RouteFactor converts straight-line distance into estimated road distance.
const RouteFactor = 1.3

// Estimate returns the estimated travel time in whole minutes from user to
// dest using mode, or nil when the user location is unknown.
func Estimate(user *domain.Location, dest domain.Location, mode domain.TransportMode) *int {
	if user == nil {
		return nil
	}
	speed := mode.SpeedKmh()
	if speed <= 0 {
		return nil
	}
	route := geo.DistanceKm(*user, dest) * RouteFactor
	minutes := int(math.Round(route / speed * 60))
	return &minutes
}

// EffectiveTravelTime picks the manual override when set, else the estimate.
// A nil result means no location is selected.
func EffectiveTravelTime(override, estimate *int) *int {
	if override != nil {
		v := *override
		return &v
	}
	if estimate != nil {
		v := *estimate
		return &v
	}
	return nil
}
