package weather_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/discgolf-planner/internal/domain"
	"github.com/pkordes/discgolf-planner/internal/weather"
)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 10, h, m, 0, 0, time.UTC)
}

// calm returns a sample with no risk factors.
func calm(h int) domain.WeatherSample {
	return domain.WeatherSample{
		Time:                     at(h, 0),
		TemperatureC:             18,
		Code:                     0,
		WindKmh:                  7.2,
		GustKmh:                  10.8,
		PrecipitationProbability: 5,
		CloudCover:               10,
	}
}

func forecastOf(samples ...domain.WeatherSample) domain.Forecast {
	return domain.Forecast{Provider: "test", Samples: samples}
}

func TestSelectAnchor_EarliestFutureArrival(t *testing.T) {
	now := at(12, 0)
	late, early, past := at(15, 0), at(13, 30), at(11, 0)

	got := weather.SelectAnchor(now, []*time.Time{&late, nil, &past, &early})

	assert.Equal(t, early, got)
}

func TestSelectAnchor_NoFutureArrival_UsesNow(t *testing.T) {
	now := at(12, 0)
	past := at(11, 0)
	equal := now

	assert.Equal(t, now, weather.SelectAnchor(now, []*time.Time{&past, &equal}))
	assert.Equal(t, now, weather.SelectAnchor(now, nil))
}

func TestAssess_Calm_Good(t *testing.T) {
	adv := weather.Assess(forecastOf(calm(14), calm(15), calm(16)), at(14, 10), time.UTC)

	assert.Equal(t, domain.WeatherGood, adv.Status)
	assert.Empty(t, adv.Alerts)
	require.Len(t, adv.Hours, 3)
	assert.Equal(t, "14:00", adv.Hours[0].Label)
	assert.Equal(t, 2.0, adv.Hours[0].WindMs)
	assert.Equal(t, 3.0, adv.Hours[0].GustMs)
	assert.Equal(t, "Clear sky", adv.Hours[0].Description)
}

func TestAssess_StormInWindow_BadWithAccumulatedAlerts(t *testing.T) {
	s1, s2, s3 := calm(14), calm(15), calm(16)
	s1.Code = 3
	s2.Code = 61
	s3.Code = 95
	s3.PrecipitationProbability = 80

	adv := weather.Assess(forecastOf(s1, s2, s3), at(14, 20), time.UTC)

	assert.Equal(t, domain.WeatherBad, adv.Status)
	require.Len(t, adv.Alerts, 2)
	assert.Equal(t, domain.AlertDanger, adv.Alerts[0].Level)
	assert.Contains(t, adv.Alerts[0].Text, "Thunderstorm")
	assert.Contains(t, adv.Alerts[1].Text, "80%")
}

func TestAssess_LightRain_Warning(t *testing.T) {
	s := calm(14)
	s.Code = 61

	adv := weather.Assess(forecastOf(s, calm(15), calm(16)), at(14, 0), time.UTC)

	assert.Equal(t, domain.WeatherWarning, adv.Status)
	require.Len(t, adv.Alerts, 1)
	assert.Contains(t, adv.Alerts[0].Text, "Light rain")
}

func TestAssess_Wind(t *testing.T) {
	tests := []struct {
		name    string
		wind    float64 // km/h
		gust    float64 // km/h
		want    domain.WeatherStatus
		nAlerts int
	}{
		{"calm", 10, 20, domain.WeatherGood, 0},
		{"steady wind 8 m/s", 28.8, 30, domain.WeatherWarning, 1},
		{"gusts 10 m/s", 10, 36, domain.WeatherWarning, 1},
		{"gusts 15 m/s", 10, 54, domain.WeatherBad, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := calm(14)
			s.WindKmh = tc.wind
			s.GustKmh = tc.gust

			adv := weather.Assess(forecastOf(s), at(14, 0), time.UTC)

			assert.Equal(t, tc.want, adv.Status)
			assert.Len(t, adv.Alerts, tc.nAlerts)
		})
	}
}

func TestAssess_Temperature(t *testing.T) {
	cold := calm(14)
	cold.TemperatureC = -0.4
	hot := calm(15)
	hot.TemperatureC = 31

	adv := weather.Assess(forecastOf(cold, hot), at(14, 0), time.UTC)

	assert.Equal(t, domain.WeatherWarning, adv.Status)
	require.Len(t, adv.Alerts, 2)
	assert.Contains(t, adv.Alerts[0].Text, "Frost")
	assert.Contains(t, adv.Alerts[1].Text, "Heat")
}

func TestAssess_ModeratePrecipitation_Warning(t *testing.T) {
	s := calm(15)
	s.PrecipitationProbability = 40

	adv := weather.Assess(forecastOf(calm(14), s), at(14, 0), time.UTC)

	assert.Equal(t, domain.WeatherWarning, adv.Status)
	require.Len(t, adv.Alerts, 1)
	assert.Equal(t, domain.AlertWarning, adv.Alerts[0].Level)
}

func TestAssess_MissingHour_UsesClosestSample(t *testing.T) {
	adv := weather.Assess(forecastOf(calm(10), calm(11), calm(17)), at(16, 40), time.UTC)

	require.Len(t, adv.Hours, 1)
	assert.Equal(t, "17:00", adv.Hours[0].Label)
}

func TestAssess_WindowTruncatedAtForecastEnd(t *testing.T) {
	adv := weather.Assess(forecastOf(calm(14), calm(15), calm(16), calm(17)), at(16, 5), time.UTC)

	require.Len(t, adv.Hours, 2)
	assert.Equal(t, "16:00", adv.Hours[0].Label)
	assert.Equal(t, "17:00", adv.Hours[1].Label)
}

func TestAssess_LabelsInZone(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	adv := weather.Assess(forecastOf(calm(14)), at(14, 0), warsaw)

	require.Len(t, adv.Hours, 1)
	assert.Equal(t, "16:00", adv.Hours[0].Label)
}

func TestAssess_EmptyForecast_NoData(t *testing.T) {
	adv := weather.Assess(forecastOf(), at(14, 0), time.UTC)

	assert.Equal(t, domain.WeatherNoData, adv.Status)
	assert.NotEmpty(t, adv.Message)
	assert.Empty(t, adv.Hours)
}

func TestAssess_StaleFlagCarried(t *testing.T) {
	f := forecastOf(calm(14))
	f.Stale = true

	assert.True(t, weather.Assess(f, at(14, 0), time.UTC).Stale)
}

func TestAssess_MissingFieldsIgnored(t *testing.T) {
	cold := calm(14)
	cold.TemperatureC = 0
	cold.PrecipitationProbability = 0
	cold.Missing = []domain.Field{domain.FieldTemperature, domain.FieldPrecipitation}
	noCode := calm(15)
	noCode.Missing = []domain.Field{domain.FieldCode}
	hot := calm(16)
	hot.TemperatureC = 31

	adv := weather.Assess(forecastOf(cold, noCode, hot), at(14, 0), time.UTC)

	assert.Equal(t, domain.WeatherWarning, adv.Status)
	require.Len(t, adv.Alerts, 1)
	assert.Contains(t, adv.Alerts[0].Text, "Heat")
	require.Len(t, adv.Hours, 3)
	assert.Equal(t, "No data", adv.Hours[1].Description)
	assert.Equal(t, []domain.Field{domain.FieldCode}, adv.Hours[1].Missing)
}

func TestAssess_PartiallyEmptyWindowStillAssessed(t *testing.T) {
	empty := domain.WeatherSample{Time: at(14, 0), Missing: domain.SampleFields()}
	rainy := calm(15)
	rainy.PrecipitationProbability = 80

	adv := weather.Assess(forecastOf(empty, rainy), at(14, 0), time.UTC)

	assert.Equal(t, domain.WeatherBad, adv.Status)
	assert.Len(t, adv.Hours, 2)
}

func TestLookupCondition_Unknown(t *testing.T) {
	c := weather.LookupCondition(42)

	assert.Equal(t, "Unknown", c.Description)
	assert.Equal(t, "❓", c.Icon)
}
