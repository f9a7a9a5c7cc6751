package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"orbit/cmd/internal/infrastructure/httpjson"
	"strconv"
	"time"
)

const forecastDays = 7

type Client struct {
	http *httpjson.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{http: httpjson.NewClient("open-meteo", baseURL, timeout)}
}

// GetForecast returns the current conditions and a 7 day daily forecast.
func (c *Client) GetForecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	query := url.Values{
		"latitude":      {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude":     {strconv.FormatFloat(lon, 'f', 4, 64)},
		"current":       {"temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,wind_direction_10m"},
		"daily":         {"weather_code,temperature_2m_max,temperature_2m_min"},
		"timezone":      {"auto"},
		"forecast_days": {strconv.Itoa(forecastDays)},
	}

	var resp forecastResponse
	if err := c.http.GetJSON(ctx, "/forecast", query, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain()
}

type Current struct {
	Temperature   float64
	Humidity      int
	WeatherCode   int
	WindSpeed     float64
	WindDirection int
}

type Day struct {
	Date        string
	High        float64
	Low         float64
	WeatherCode int
}

type Forecast struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	Current   Current
	Daily     []Day
}

type forecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Current   struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		WeatherCode   int     `json:"weather_code"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WindDirection float64 `json:"wind_direction_10m"`
	} `json:"current"`
	Daily struct {
		Time        []string  `json:"time"`
		WeatherCode []int     `json:"weather_code"`
		Max         []float64 `json:"temperature_2m_max"`
		Min         []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (f *forecastResponse) ToDomain() (*Forecast, error) {
	d := f.Daily
	if len(d.WeatherCode) < len(d.Time) || len(d.Max) < len(d.Time) || len(d.Min) < len(d.Time) {
		return nil, fmt.Errorf("open-meteo returned misaligned daily series")
	}

	days := make([]Day, 0, min(len(d.Time), forecastDays))
	for i := 0; i < len(d.Time) && i < forecastDays; i++ {
		days = append(days, Day{
			Date:        d.Time[i],
			High:        d.Max[i],
			Low:         d.Min[i],
			WeatherCode: d.WeatherCode[i],
		})
	}

	return &Forecast{
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
		Timezone:  f.Timezone,
		Current: Current{
			Temperature:   f.Current.Temperature,
			Humidity:      int(f.Current.Humidity),
			WeatherCode:   f.Current.WeatherCode,
			WindSpeed:     f.Current.WindSpeed,
			WindDirection: int(f.Current.WindDirection),
		},
		Daily: days,
	}, nil
}
