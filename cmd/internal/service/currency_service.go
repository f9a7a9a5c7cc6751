package service

import (
	"context"
	"math"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/infrastructure/frankfurter"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

var defaultSymbols = []string{"EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY"}

type RatesProvider interface {
	GetRates(ctx context.Context, date, base string, symbols []string) (*frankfurter.Rates, error)
	GetCurrencies(ctx context.Context) (map[string]string, error)
}

type DefaultCurrencyService struct {
	Provider RatesProvider
	Validate *validator.Validate
}

func NewCurrencyService(provider RatesProvider, validate *validator.Validate) *DefaultCurrencyService {
	return &DefaultCurrencyService{
		Provider: provider,
		Validate: validate,
	}
}

// GetRates returns the rates against base with their change, in percent,
// from the previous publication day.
func (c *DefaultCurrencyService) GetRates(ctx context.Context, query *contract.CurrencyQuery) (*contract.CurrencyResponse, apierror.ErrorResponse) {
	utils.Sanitize(query)
	query.Base = strings.ToUpper(query.Base)
	if valerr := c.Validate.Struct(query); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	base := query.Base
	if base == "" {
		base = "USD"
	}

	symbols, apierr := c.parseSymbols(query.Symbols, base)
	if apierr != nil {
		return nil, apierr
	}

	current, err := c.Provider.GetRates(ctx, query.Date, base, symbols)
	if err != nil {
		log.Errorf("failed to fetch currency rates: %v", err)
		return nil, apierror.CurrencyUnavailableError
	}

	previous := c.previousRates(ctx, current, base, symbols)

	rates := make([]*contract.CurrencyRate, 0, len(current.Rates))
	for code, rate := range current.Rates {
		rates = append(rates, &contract.CurrencyRate{
			Code:   code,
			Name:   frankfurter.Name(code),
			Rate:   rate,
			Change: percentChange(previous[code], rate),
		})
	}
	sort.Slice(rates, func(i, j int) bool {
		return rates[i].Code < rates[j].Code
	})

	return &contract.CurrencyResponse{
		Base:     current.Base,
		BaseName: frankfurter.Name(current.Base),
		Date:     current.Date,
		Rates:    rates,
	}, nil
}

func (c *DefaultCurrencyService) GetCurrencies(ctx context.Context) (*contract.CurrenciesResponse, apierror.ErrorResponse) {
	currencies, err := c.Provider.GetCurrencies(ctx)
	if err != nil {
		log.Errorf("failed to fetch currencies: %v", err)
		return nil, apierror.CurrencyUnavailableError
	}
	return &contract.CurrenciesResponse{Currencies: currencies}, nil
}

func (c *DefaultCurrencyService) parseSymbols(raw, base string) ([]string, apierror.ErrorResponse) {
	if raw == "" {
		symbols := make([]string, 0, len(defaultSymbols))
		for _, s := range defaultSymbols {
			if s != base {
				symbols = append(symbols, s)
			}
		}
		return symbols, nil
	}

	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || s == base {
			continue
		}

		if err := c.Validate.Var(s, "iso4217"); err != nil {
			return nil, apierror.NewInvalidParamTypeError("symbols", "comma separated ISO 4217 codes")
		}
		symbols = append(symbols, s)
	}
	return symbols, nil
}

// previousRates is best effort, a failure only zeroes the changes.
func (c *DefaultCurrencyService) previousRates(ctx context.Context, current *frankfurter.Rates, base string, symbols []string) map[string]float64 {
	day, err := time.Parse(time.DateOnly, current.Date)
	if err != nil {
		return nil
	}

	prev, err := c.Provider.GetRates(ctx, day.AddDate(0, 0, -1).Format(time.DateOnly), base, symbols)
	if err != nil {
		log.Warnf("failed to fetch previous currency rates: %v", err)
		return nil
	}
	return prev.Rates
}

func percentChange(previous, current float64) float64 {
	if previous == 0 {
		return 0
	}
	change := (current - previous) / previous * 100
	return math.Round(change*100) / 100
}
