// Package navigation builds external map and directions URLs for a course.
package navigation

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// Platform selects between a desktop browser and a phone with a maps app.
type Platform string

const (
	PlatformDesktop Platform = "desktop"
	PlatformMobile  Platform = "mobile"
)

// ParsePlatform accepts "mobile" or "desktop"; empty means desktop.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case "", PlatformDesktop:
		return PlatformDesktop, nil
	case PlatformMobile:
		return PlatformMobile, nil
	}
	return "", fmt.Errorf("%w: unknown platform %q", domain.ErrValidation, s)
}

// Link is one labelled URL.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Links are the two links shown for a course: the route planner and the
// navigate button.
type Links struct {
	DestinationID string `json:"destination_id"`
	Route         Link   `json:"route"`
	Navigate      Link   `json:"navigate"`
}

var googleTravelModes = map[domain.TransportMode]string{
	domain.ModeWalk: "walking",
	domain.ModeBike: "bicycling",
	domain.ModeCar:  "driving",
}

// For builds the links for dest. Without a user location both links fall back
// to the OpenStreetMap view of the course.
func For(dest domain.Destination, user *domain.Location, mode domain.TransportMode, platform Platform) Links {
	view := Link{Label: "📍 View on map", URL: dest.OSMLink()}
	if user == nil {
		return Links{DestinationID: dest.ID, Route: view, Navigate: view}
	}

	links := Links{DestinationID: dest.ID, Route: routeLink(dest, *user, mode)}
	switch platform {
	case PlatformMobile:
		links.Navigate = Link{Label: "🧭 Navigate", URL: geoURI(dest)}
	default:
		links.Navigate = Link{Label: "🧭 Navigate", URL: googleDirections(dest, *user, "driving")}
	}
	return links
}

func routeLink(dest domain.Destination, user domain.Location, mode domain.TransportMode) Link {
	if mode == domain.ModeTransit {
		u := fmt.Sprintf("https://jakdojade.pl/gdansk/trasa/?fn=Moja%%20lokalizacja&fc=%s:%s&tn=%s&tc=%s:%s",
			coord(user.Lat), coord(user.Lng),
			url.PathEscape(dest.Name),
			coord(dest.Location.Lat), coord(dest.Location.Lng),
		)
		return Link{Label: "🚌 Check on jakdojade", URL: u}
	}

	travelMode, ok := googleTravelModes[mode]
	if !ok {
		travelMode = "driving"
	}
	return Link{Label: "📍 Check the route", URL: googleDirections(dest, user, travelMode)}
}

func googleDirections(dest domain.Destination, user domain.Location, travelMode string) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&origin=%s,%s&destination=%s,%s&travelmode=%s",
		coord(user.Lat), coord(user.Lng),
		coord(dest.Location.Lat), coord(dest.Location.Lng),
		travelMode,
	)
}

func geoURI(dest domain.Destination) string {
	lat, lng := coord(dest.Location.Lat), coord(dest.Location.Lng)
	return fmt.Sprintf("geo:%s,%s?q=%s,%s(%s)", lat, lng, lat, lng, url.PathEscape(dest.Name))
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
