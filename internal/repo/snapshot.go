// Package repo persists the player's preferences as a flat key/value snapshot.
// Each backend has its own file; all of them share the codec in this file.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// Snapshot keys.
const (
	keyUserLat        = "user_lat"
	keyUserLng        = "user_lng"
	keyTransportMode  = "transport_mode"
	keyPrepMinutes    = "prep_minutes"
	keySunAngle       = "sun_angle"
	keyOverridePrefix = "travel_override."
)

// Encode flattens preferences into snapshot key/value pairs.
// Absent values (no location, no override) produce no key.
func Encode(p domain.Preferences) map[string]string {
	out := map[string]string{
		keyTransportMode: string(p.TransportMode),
		keyPrepMinutes:   strconv.Itoa(p.PrepMinutes),
		keySunAngle:      strconv.FormatFloat(float64(p.SunAngle), 'f', -1, 64),
	}
	if p.UserLocation != nil {
		out[keyUserLat] = strconv.FormatFloat(p.UserLocation.Lat, 'f', -1, 64)
		out[keyUserLng] = strconv.FormatFloat(p.UserLocation.Lng, 'f', -1, 64)
	}
	for id, minutes := range p.TravelOverrides {
		out[keyOverridePrefix+id] = strconv.Itoa(minutes)
	}
	return out
}

// Decode rebuilds preferences from a snapshot. Every key is decoded on its
// own: a missing or corrupt value leaves that field at its default, and
// unknown keys are ignored. Decode never fails.
func Decode(kv map[string]string) domain.Preferences {
	p := domain.DefaultPreferences()

	if v, ok := kv[keyTransportMode]; ok {
		if mode, err := domain.ParseTransportMode(v); err == nil {
			p.TransportMode = mode
		}
	}
	if v, ok := kv[keyPrepMinutes]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.PrepMinutes = n
		}
	}
	if v, ok := kv[keySunAngle]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			p.SunAngle = domain.SolarAngle(f)
		}
	}

	lat, latErr := strconv.ParseFloat(kv[keyUserLat], 64)
	lng, lngErr := strconv.ParseFloat(kv[keyUserLng], 64)
	if latErr == nil && lngErr == nil {
		loc := domain.Location{Lat: lat, Lng: lng}
		if loc.Valid() {
			p.UserLocation = &loc
		}
	}

	for k, v := range kv {
		id, ok := strings.CutPrefix(k, keyOverridePrefix)
		if !ok {
			continue
		}
		if _, err := domain.DestinationByID(id); err != nil {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.TravelOverrides[id] = n
		}
	}

	return p
}

// sortedKeys returns the snapshot keys in a stable order so writes are
// deterministic.
func sortedKeys(kv map[string]string) []string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
