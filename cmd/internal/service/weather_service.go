package service

import (
	"context"
	"math"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/infrastructure/openmeteo"
	"orbit/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// Kuala Lumpur
const (
	DefaultLatitude  = 3.1390
	DefaultLongitude = 101.6869
)

type ForecastProvider interface {
	GetForecast(ctx context.Context, lat, lon float64) (*openmeteo.Forecast, error)
}

type DefaultWeatherService struct {
	Provider ForecastProvider
	Validate *validator.Validate
}

func NewWeatherService(provider ForecastProvider, validate *validator.Validate) *DefaultWeatherService {
	return &DefaultWeatherService{
		Provider: provider,
		Validate: validate,
	}
}

// GetWeather uses the default location unless both coordinates are given.
func (w *DefaultWeatherService) GetWeather(ctx context.Context, lat, lon *float64) (*contract.WeatherResponse, apierror.ErrorResponse) {
	query := contract.WeatherQuery{Latitude: DefaultLatitude, Longitude: DefaultLongitude}
	usingDefault := lat == nil || lon == nil
	if !usingDefault {
		query.Latitude, query.Longitude = *lat, *lon
	}

	if valerr := w.Validate.Struct(&query); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	forecast, err := w.Provider.GetForecast(ctx, query.Latitude, query.Longitude)
	if err != nil {
		log.Errorf("failed to fetch weather: %v", err)
		return nil, apierror.WeatherUnavailableError
	}

	resp := toWeatherResponse(forecast)
	if usingDefault {
		resp.Location.Name = "Kuala Lumpur"
		resp.Location.Country = "Malaysia"
	}
	return resp, nil
}

func toWeatherResponse(f *openmeteo.Forecast) *contract.WeatherResponse {
	daily := make([]*contract.DailyWeather, len(f.Daily))
	for i, day := range f.Daily {
		daily[i] = &contract.DailyWeather{
			Date: day.Date,
			Temp: &contract.TemperatureRange{
				Min: round(day.Low),
				Max: round(day.High),
			},
			Description: openmeteo.Describe(day.WeatherCode),
			Icon:        openmeteo.Icon(day.WeatherCode),
		}
	}

	return &contract.WeatherResponse{
		Current: &contract.CurrentWeather{
			Temperature:   round(f.Current.Temperature),
			Humidity:      f.Current.Humidity,
			Description:   openmeteo.Describe(f.Current.WeatherCode),
			Icon:          openmeteo.Icon(f.Current.WeatherCode),
			WindSpeed:     f.Current.WindSpeed,
			WindDirection: f.Current.WindDirection,
		},
		Daily: daily,
		Location: &contract.WeatherPoint{
			Latitude:  f.Latitude,
			Longitude: f.Longitude,
			Timezone:  f.Timezone,
		},
	}
}

func round(f float64) int {
	return int(math.Round(f))
}
