// Package ergast reads Formula 1 data from an Ergast compatible API
// (the Jolpica mirror by default).
package ergast

import (
	"context"
	"errors"
	"fmt"
	"orbit/cmd/internal/infrastructure/httpjson"
	"time"
)

var ErrInvalidPayload = errors.New("ergast: response has no MRData")

type Client struct {
	http *httpjson.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{http: httpjson.NewClient("ergast", baseURL, timeout)}
}

// Schedule returns every race of the season.
func (c *Client) Schedule(ctx context.Context, season string) (string, []*Race, error) {
	var resp mrResponse
	if err := c.fetch(ctx, fmt.Sprintf("/%s.json", season), &resp); err != nil {
		return "", nil, err
	}
	return resp.MRData.RaceTable.Season, resp.MRData.RaceTable.toRaces(), nil
}

// NextRace returns the next race of the current season, or nil after the finale.
func (c *Client) NextRace(ctx context.Context) (string, *Race, error) {
	var resp mrResponse
	if err := c.fetch(ctx, "/current/next.json", &resp); err != nil {
		return "", nil, err
	}

	races := resp.MRData.RaceTable.toRaces()
	if len(races) == 0 {
		return resp.MRData.RaceTable.Season, nil, nil
	}
	return resp.MRData.RaceTable.Season, races[0], nil
}

func (c *Client) DriverStandings(ctx context.Context, season string) (string, []*DriverStanding, error) {
	var resp mrResponse
	if err := c.fetch(ctx, fmt.Sprintf("/%s/driverStandings.json", season), &resp); err != nil {
		return "", nil, err
	}
	table := resp.MRData.StandingsTable
	return table.Season, table.toDrivers(), nil
}

func (c *Client) ConstructorStandings(ctx context.Context, season string) (string, []*ConstructorStanding, error) {
	var resp mrResponse
	if err := c.fetch(ctx, fmt.Sprintf("/%s/constructorStandings.json", season), &resp); err != nil {
		return "", nil, err
	}
	table := resp.MRData.StandingsTable
	return table.Season, table.toConstructors(), nil
}

func (c *Client) fetch(ctx context.Context, path string, resp *mrResponse) error {
	if err := c.http.GetJSON(ctx, path, nil, resp); err != nil {
		return err
	}

	if resp.MRData == nil {
		return ErrInvalidPayload
	}
	return nil
}
