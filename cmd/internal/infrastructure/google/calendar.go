// Package google wraps the OAuth consent flow and the Calendar v3 API.
package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const PrimaryCalendar = "primary"

var ErrNoRefreshToken = errors.New("google: consent did not grant a refresh token")

type CalendarEvent struct {
	ID             string
	Summary        string
	Description    string
	Location       string
	Start          string
	End            string
	AllDay         bool
	ColorID        string
	OrganizerEmail string
}

type CalendarClient struct {
	config   *oauth2.Config
	endpoint string
}

func NewCalendarClient(clientID, clientSecret, redirectURL string) *CalendarClient {
	return &CalendarClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{calendar.CalendarReadonlyScope, calendar.CalendarEventsScope},
			Endpoint:     googleoauth.Endpoint,
		},
	}
}

// WithEndpoint points the Calendar API at another base URL.
func (c *CalendarClient) WithEndpoint(endpoint string) *CalendarClient {
	c.endpoint = endpoint
	return c
}

// AuthCodeURL asks for offline access and forces the consent screen, so
// Google returns a refresh token even for users that connected before.
func (c *CalendarClient) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (c *CalendarClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google: code exchange failed: %w", err)
	}

	if token.AccessToken == "" || token.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	return token, nil
}

// ListEvents returns single (expanded) events starting in [from, to) ordered
// by start time. The returned token differs from the given one when it had
// to be refreshed.
func (c *CalendarClient) ListEvents(ctx context.Context, token *oauth2.Token, calendarID string, from, to time.Time, max int64) ([]*CalendarEvent, *oauth2.Token, error) {
	if calendarID == "" {
		calendarID = PrimaryCalendar
	}

	ts := c.config.TokenSource(ctx, token)
	opts := []option.ClientOption{option.WithTokenSource(ts)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}

	res, err := svc.Events.List(calendarID).
		TimeMin(from.UTC().Format(time.RFC3339)).
		TimeMax(to.UTC().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		return nil, nil, fmt.Errorf("google: list events failed: %w", err)
	}

	fresh, err := ts.Token()
	if err != nil {
		fresh = token
	}
	return toCalendarEvents(res.Items), fresh, nil
}

func toCalendarEvents(items []*calendar.Event) []*CalendarEvent {
	events := make([]*CalendarEvent, 0, len(items))
	for _, item := range items {
		if item == nil || item.Id == "" {
			continue
		}

		evt := &CalendarEvent{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			Location:    item.Location,
			ColorID:     item.ColorId,
		}
		if item.Start != nil {
			evt.AllDay = item.Start.DateTime == ""
			evt.Start = firstNonEmpty(item.Start.DateTime, item.Start.Date)
		}
		if item.End != nil {
			evt.End = firstNonEmpty(item.End.DateTime, item.End.Date)
		}
		if item.Organizer != nil {
			evt.OrganizerEmail = item.Organizer.Email
		}
		events = append(events, evt)
	}
	return events
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
