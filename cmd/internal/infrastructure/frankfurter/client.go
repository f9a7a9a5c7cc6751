package frankfurter

import (
	"context"
	"net/url"
	"orbit/cmd/internal/infrastructure/httpjson"
	"strings"
	"time"
)

const Latest = "latest"

type Client struct {
	http *httpjson.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{http: httpjson.NewClient("frankfurter", baseURL, timeout)}
}

type Rates struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// GetRates returns the reference rates published on date (YYYY-MM-DD, or
// Latest). Frankfurter answers with the closest previous working day.
func (c *Client) GetRates(ctx context.Context, date, base string, symbols []string) (*Rates, error) {
	if date == "" {
		date = Latest
	}

	query := url.Values{"base": {base}}
	if len(symbols) > 0 {
		query.Set("symbols", strings.Join(symbols, ","))
	}

	var rates Rates
	if err := c.http.GetJSON(ctx, "/"+date, query, &rates); err != nil {
		return nil, err
	}
	return &rates, nil
}

// GetCurrencies returns every supported currency code with its name.
func (c *Client) GetCurrencies(ctx context.Context) (map[string]string, error) {
	var currencies map[string]string
	if err := c.http.GetJSON(ctx, "/currencies", nil, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}
