package domain

import (
	"slices"
	"time"
)

// Field names one measured value of a forecast hour.
type Field string

const (
	FieldTemperature   Field = "temperature"
	FieldCode          Field = "weather_code"
	FieldWind          Field = "wind"
	FieldGust          Field = "gust"
	FieldPrecipitation Field = "precipitation_probability"
	FieldCloudCover    Field = "cloud_cover"
)

// SampleFields lists every measured field of a WeatherSample.
func SampleFields() []Field {
	return []Field{FieldTemperature, FieldCode, FieldWind, FieldGust, FieldPrecipitation, FieldCloudCover}
}

// WeatherSample is one hourly forecast bucket as reported by the weather
// collaborator. Speeds are km/h, probabilities and cover are percentages.
// Missing lists the fields the provider left empty; their values are zero
// and must not be read as measurements.
type WeatherSample struct {
	Time                     time.Time `json:"time"`
	TemperatureC             float64   `json:"temperature_c"`
	Code                     int       `json:"code"`
	WindKmh                  float64   `json:"wind_kmh"`
	GustKmh                  float64   `json:"gust_kmh"`
	PrecipitationProbability int       `json:"precipitation_probability"`
	CloudCover               int       `json:"cloud_cover"`
	Missing                  []Field   `json:"missing,omitempty"`
}

// Has reports whether f carries a measured value.
func (s WeatherSample) Has(f Field) bool {
	return !slices.Contains(s.Missing, f)
}

// Empty reports whether no field carries a measured value.
func (s WeatherSample) Empty() bool {
	for _, f := range SampleFields() {
		if s.Has(f) {
			return false
		}
	}
	return true
}

// Forecast is an hourly forecast for one point, immutable once fetched.
type Forecast struct {
	Provider  string          `json:"provider"`
	Location  Location        `json:"location"`
	Samples   []WeatherSample `json:"samples"`
	FetchedAt time.Time       `json:"fetched_at"`
	// Stale is set when the forecast is older than the cache lifetime and was
	// served because a refresh failed.
	Stale bool `json:"stale,omitempty"`
}

// WeatherStatus is the overall risk rating across the sampled hours.
type WeatherStatus string

const (
	WeatherGood    WeatherStatus = "good"
	WeatherWarning WeatherStatus = "warning"
	WeatherBad     WeatherStatus = "bad"
	WeatherNoData  WeatherStatus = "no_data"
)

// severity orders statuses so the maximum can be taken.
var severity = map[WeatherStatus]int{
	WeatherGood:    0,
	WeatherWarning: 1,
	WeatherBad:     2,
}

// Worse returns the more severe of s and other.
func (s WeatherStatus) Worse(other WeatherStatus) WeatherStatus {
	if severity[other] > severity[s] {
		return other
	}
	return s
}

// AlertLevel is the severity of a single alert line.
type AlertLevel string

const (
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

// Alert is one human-readable weather alert.
type Alert struct {
	Level AlertLevel `json:"level"`
	Text  string     `json:"text"`
}

// HourSummary is a display-ready view of one sampled forecast hour.
type HourSummary struct {
	Hour                     time.Time `json:"hour"`
	Label                    string    `json:"label"`
	Icon                     string    `json:"icon"`
	Description              string    `json:"description"`
	TemperatureC             int       `json:"temperature_c"`
	WindMs                   float64   `json:"wind_ms"`
	GustMs                   float64   `json:"gust_ms"`
	PrecipitationProbability int       `json:"precipitation_probability"`
	CloudCover               int       `json:"cloud_cover"`
	Missing                  []Field   `json:"missing,omitempty"`
}

// Has reports whether f carries a measured value.
func (h HourSummary) Has(f Field) bool {
	return !slices.Contains(h.Missing, f)
}

// WeatherAdvisory is the weather block of a plan.
type WeatherAdvisory struct {
	Status  WeatherStatus `json:"status"`
	Anchor  time.Time     `json:"anchor"`
	Hours   []HourSummary `json:"hours"`
	Alerts  []Alert       `json:"alerts"`
	Stale   bool          `json:"stale,omitempty"`
	Message string        `json:"message,omitempty"`
}
