package handler

import (
	"context"
	"net/http"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/utils/apierror"
	"strconv"

	"github.com/labstack/echo/v4"
)

type WeatherService interface {
	GetWeather(ctx context.Context, lat, lon *float64) (*contract.WeatherResponse, apierror.ErrorResponse)
}

type NewsService interface {
	GetNews(ctx context.Context, query *contract.NewsQuery) (*contract.NewsResponse, apierror.ErrorResponse)
}

type F1Service interface {
	GetF1Data(ctx context.Context, query *contract.F1Query) (*contract.F1Response, apierror.ErrorResponse)
}

type CurrencyService interface {
	GetRates(ctx context.Context, query *contract.CurrencyQuery) (*contract.CurrencyResponse, apierror.ErrorResponse)
	GetCurrencies(ctx context.Context) (*contract.CurrenciesResponse, apierror.ErrorResponse)
}

// DefaultUtilRoute serves the widgets backed by third-party APIs.
type DefaultUtilRoute struct {
	WeatherService  WeatherService
	NewsService     NewsService
	F1Service       F1Service
	CurrencyService CurrencyService
}

func NewUtilRoute(weather WeatherService, news NewsService, f1 F1Service, currency CurrencyService) *DefaultUtilRoute {
	return &DefaultUtilRoute{
		WeatherService:  weather,
		NewsService:     news,
		F1Service:       f1,
		CurrencyService: currency,
	}
}

func (u *DefaultUtilRoute) GetWeather(c echo.Context) error {
	lat, perr := floatQueryParam(c, "lat")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	lon, perr := floatQueryParam(c, "lon")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	weather, apierr := u.WeatherService.GetWeather(c.Request().Context(), lat, lon)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, weather)
}

func (u *DefaultUtilRoute) GetNews(c echo.Context) error {
	var query contract.NewsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedQueryError)
	}

	news, apierr := u.NewsService.GetNews(c.Request().Context(), &query)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, news)
}

func (u *DefaultUtilRoute) GetF1(c echo.Context) error {
	var query contract.F1Query
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedQueryError)
	}

	data, apierr := u.F1Service.GetF1Data(c.Request().Context(), &query)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, data)
}

func (u *DefaultUtilRoute) GetCurrency(c echo.Context) error {
	var query contract.CurrencyQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedQueryError)
	}

	rates, apierr := u.CurrencyService.GetRates(c.Request().Context(), &query)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, rates)
}

// GetCurrencies is also mounted as POST /api/currency for older dashboards.
func (u *DefaultUtilRoute) GetCurrencies(c echo.Context) error {
	currencies, apierr := u.CurrencyService.GetCurrencies(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, currencies)
}

func floatQueryParam(c echo.Context, name string) (*float64, apierror.ErrorResponse) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError(name, "number")
	}
	return &val, nil
}
