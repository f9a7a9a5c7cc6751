package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastBody = `{
	"latitude": 3.125,
	"longitude": 101.6875,
	"timezone": "Asia/Kuala_Lumpur",
	"current": {
		"temperature_2m": 31.6,
		"relative_humidity_2m": 68,
		"weather_code": 2,
		"wind_speed_10m": 7.4,
		"wind_direction_10m": 215
	},
	"daily": {
		"time": ["2024-05-01", "2024-05-02"],
		"weather_code": [95, 61],
		"temperature_2m_max": [33.1, 32.4],
		"temperature_2m_min": [24.2, 24.9]
	}
}`

func TestGetForecast(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "3.1390", r.URL.Query().Get("latitude"))
		assert.Equal(t, "auto", r.URL.Query().Get("timezone"))
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	forecast, err := NewClient(srv.URL, time.Second).GetForecast(context.Background(), 3.1390, 101.6869)
	require.NoError(t, err)

	assert.Equal(t, 68, forecast.Current.Humidity)
	assert.Equal(t, 215, forecast.Current.WindDirection)
	require.Len(t, forecast.Daily, 2)
	assert.Equal(t, "2024-05-02", forecast.Daily[1].Date)
	assert.Equal(t, 61, forecast.Daily[1].WeatherCode)
}

func TestGetForecast_MisalignedSeries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["2024-05-01"],"weather_code":[],"temperature_2m_max":[],"temperature_2m_min":[]}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).GetForecast(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestDescribeAndIcon(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Clear sky", Describe(0))
	assert.Equal(t, "Thunderstorm with heavy hail", Describe(99))
	assert.Equal(t, "Unknown", Describe(42))
	assert.Equal(t, "☀️", Icon(0))
	assert.Equal(t, "⛈️", Icon(96))
	assert.Equal(t, defaultIcon, Icon(42))
}
