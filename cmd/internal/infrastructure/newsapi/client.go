package newsapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"orbit/cmd/internal/infrastructure/httpjson"
	"strconv"
	"time"
)

var ErrNoAPIKey = errors.New("newsapi: no API key configured")

type Client struct {
	http   *httpjson.Client
	apiKey string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		http:   httpjson.NewClient("newsapi", baseURL, timeout).WithHeader("X-Api-Key", apiKey),
		apiKey: apiKey,
	}
}

// Enabled reports whether real headlines can be fetched.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

func (c *Client) TopHeadlines(ctx context.Context, country, category string, pageSize int) (*Headlines, error) {
	if !c.Enabled() {
		return nil, ErrNoAPIKey
	}

	query := url.Values{
		"country":  {country},
		"category": {category},
		"pageSize": {strconv.Itoa(pageSize)},
	}

	var resp headlinesResponse
	if err := c.http.GetJSON(ctx, "/top-headlines", query, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi returned status %q: %s", resp.Status, resp.Message)
	}
	return resp.ToDomain(), nil
}

type Article struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt string
	Source      string
}

type Headlines struct {
	TotalResults int
	Articles     []Article
}

type headlinesResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (h *headlinesResponse) ToDomain() *Headlines {
	articles := make([]Article, len(h.Articles))
	for i, a := range h.Articles {
		articles[i] = Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: a.PublishedAt,
			Source:      a.Source.Name,
		}
	}
	return &Headlines{TotalResults: h.TotalResults, Articles: articles}
}
