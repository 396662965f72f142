package travel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/discgolf-planner/internal/domain"
	"github.com/pkordes/discgolf-planner/internal/travel"
)

func intPtr(v int) *int { return &v }

func TestEstimate_NoUserLocation(t *testing.T) {
	dest := domain.Location{Lat: 54.372664, Lng: 18.590667}
	assert.Nil(t, travel.Estimate(nil, dest, domain.ModeCar))
}

func TestEstimate_KnownValue(t *testing.T) {
	// One degree of latitude is ~111.19 km; route 144.55 km by car at 35 km/h
	// is ~247.8 minutes.
	user := domain.Location{Lat: 0, Lng: 0}
	dest := domain.Location{Lat: 1, Lng: 0}

	got := travel.Estimate(&user, dest, domain.ModeCar)

	require.NotNil(t, got)
	assert.Equal(t, 248, *got)
}

func TestEstimate_SameLocationIsZero(t *testing.T) {
	loc := domain.Location{Lat: 54.35, Lng: 18.6}
	got := travel.Estimate(&loc, loc, domain.ModeWalk)
	require.NotNil(t, got)
	assert.Equal(t, 0, *got)
}

func TestEstimate_MonotonicInDistance(t *testing.T) {
	user := domain.Location{Lat: 54.35, Lng: 18.6}
	prev := -1
	for _, dLat := range []float64{0, 0.01, 0.02, 0.05, 0.1, 0.5} {
		dest := domain.Location{Lat: user.Lat + dLat, Lng: user.Lng}
		got := travel.Estimate(&user, dest, domain.ModeBike)
		require.NotNil(t, got)
		assert.GreaterOrEqual(t, *got, prev, "dLat=%v", dLat)
		prev = *got
	}
}

func TestEstimate_FasterModeIsNeverSlower(t *testing.T) {
	user := domain.Location{Lat: 54.35, Lng: 18.6}
	dest := domain.Location{Lat: 54.41, Lng: 18.62}

	walk := travel.Estimate(&user, dest, domain.ModeWalk)
	transit := travel.Estimate(&user, dest, domain.ModeTransit)
	bike := travel.Estimate(&user, dest, domain.ModeBike)
	car := travel.Estimate(&user, dest, domain.ModeCar)

	assert.GreaterOrEqual(t, *walk, *transit)
	assert.GreaterOrEqual(t, *transit, *bike)
	assert.GreaterOrEqual(t, *bike, *car)
}

func TestEstimate_UnknownModeYieldsNil(t *testing.T) {
	user := domain.Location{Lat: 54.35, Lng: 18.6}
	assert.Nil(t, travel.Estimate(&user, user, domain.TransportMode("teleport")))
}

func TestEffectiveTravelTime(t *testing.T) {
	tests := []struct {
		name     string
		override *int
		estimate *int
		want     *int
	}{
		{"override wins", intPtr(12), intPtr(30), intPtr(12)},
		{"override zero still wins", intPtr(0), intPtr(30), intPtr(0)},
		{"estimate fallback", nil, intPtr(30), intPtr(30)},
		{"both nil", nil, nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, travel.EffectiveTravelTime(tc.override, tc.estimate))
		})
	}
}
