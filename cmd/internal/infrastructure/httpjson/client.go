// Package httpjson is the small JSON-over-HTTP client shared by the
// third-party widget providers.
package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// StatusError is returned when the upstream answers with an unexpected status.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed with status code: %d", e.Service, e.StatusCode)
}

type Client struct {
	service    string
	baseURL    string
	httpClient *http.Client
	header     http.Header
}

func NewClient(service, baseURL string, timeout time.Duration) *Client {
	return &Client{
		service:    service,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		header:     http.Header{},
	}
}

// WithHeader sets a header sent on every request, e.g. an API key.
func (c *Client) WithHeader(key, value string) *Client {
	c.header.Set(key, value)
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON fetches baseURL+path with the given query and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for key := range c.header {
		req.Header.Set(key, c.header.Get(key))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Service: c.service, StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s returned an invalid body: %w", c.service, err)
	}
	return nil
}
