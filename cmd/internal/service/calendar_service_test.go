package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/database/repository"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/infrastructure/google"
	"orbit/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const testAppURL = "https://orbit.example.com"

type fakeCalendarOAuth struct {
	lastState   string
	exchangeErr error
	noExpiry    bool
	events      []*google.CalendarEvent
	listErr     error
	fresh       *oauth2.Token
	listedToken *oauth2.Token
}

func (f *fakeCalendarOAuth) AuthCodeURL(state string) string {
	f.lastState = state
	return "https://accounts.google.com/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (f *fakeCalendarOAuth) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	token := &oauth2.Token{AccessToken: "access-" + code, RefreshToken: "refresh-" + code}
	if !f.noExpiry {
		token.Expiry = time.Now().Add(time.Hour)
	}
	return token, nil
}

func (f *fakeCalendarOAuth) ListEvents(_ context.Context, token *oauth2.Token, _ string, _, _ time.Time, _ int64) ([]*google.CalendarEvent, *oauth2.Token, error) {
	f.listedToken = token
	if f.listErr != nil {
		return nil, nil, f.listErr
	}
	if f.fresh != nil {
		return f.events, f.fresh, nil
	}
	return f.events, token, nil
}

func newCalendarService(f *fixture, oauth CalendarOAuth) *DefaultCalendarService {
	svc := NewCalendarService(nil, f.states, f.users, f.prefs, f.events, f.notifier, testAppURL)
	if oauth != nil {
		svc.OAuth = oauth
	}
	return svc
}

func connectCalendar(t *testing.T, f *fixture, svc *DefaultCalendarService, oauth *fakeCalendarOAuth) {
	t.Helper()
	_, apierr := svc.StartAuth(f.user)
	require.Nil(t, apierr)

	redirect := svc.CompleteAuth(context.Background(), "code", oauth.lastState, "")
	require.Equal(t, testAppURL+calendarConnected, redirect)

	user, err := f.users.FindByID(f.user.ID)
	require.NoError(t, err)
	*f.user = *user
}

func TestCalendarService_NotConfigured(t *testing.T) {
	f := newFixture(t)
	svc := newCalendarService(f, nil)

	_, apierr := svc.StartAuth(f.user)
	assert.Equal(t, apierror.CalendarNotConfiguredError, apierr)

	_, apierr = svc.Sync(context.Background(), f.user)
	assert.Equal(t, apierror.CalendarNotConfiguredError, apierr)

	assert.Equal(t, testAppURL+calendarAuthFailed, svc.CompleteAuth(context.Background(), "code", "state", ""))
}

func TestCalendarService_CompleteAuthStoresTokens(t *testing.T) {
	f := newFixture(t)
	oauth := &fakeCalendarOAuth{}
	svc := newCalendarService(f, oauth)

	connectCalendar(t, f, svc, oauth)
	assert.Equal(t, "access-code", f.user.GoogleAccessToken)
	assert.Equal(t, "refresh-code", f.user.GoogleRefreshToken)

	prefs, err := f.prefs.FindByUserID(f.user.ID)
	require.NoError(t, err)
	assert.True(t, prefs.GoogleCalendarEnabled)
	assert.True(t, prefs.GoogleCalendarSync)
	assert.Equal(t, google.PrimaryCalendar, prefs.GoogleCalendarID)

	// States are single use
	assert.Equal(t, testAppURL+calendarAuthFailed, svc.CompleteAuth(context.Background(), "code", oauth.lastState, ""))
}

func TestCalendarService_CompleteAuthFailures(t *testing.T) {
	f := newFixture(t)
	oauth := &fakeCalendarOAuth{}
	svc := newCalendarService(f, oauth)

	_, apierr := svc.StartAuth(f.user)
	require.Nil(t, apierr)
	state := oauth.lastState

	failed := testAppURL + calendarAuthFailed
	assert.Equal(t, failed, svc.CompleteAuth(context.Background(), "code", state, "access_denied"))
	assert.Equal(t, failed, svc.CompleteAuth(context.Background(), "", state, ""))
	assert.Equal(t, failed, svc.CompleteAuth(context.Background(), "code", "unknown", ""))

	svc.Now = func() time.Time { return time.Now().Add(entity.OAuthStateTTL + time.Minute) }
	assert.Equal(t, failed, svc.CompleteAuth(context.Background(), "code", state, ""))

	user, err := f.users.FindByID(f.user.ID)
	require.NoError(t, err)
	assert.False(t, user.HasGoogleTokens())
}

func TestCalendarService_SyncPreconditions(t *testing.T) {
	f := newFixture(t)
	svc := newCalendarService(f, &fakeCalendarOAuth{})

	_, apierr := svc.Sync(context.Background(), f.user)
	assert.Equal(t, apierror.CalendarNotEnabledError, apierr)

	prefs, err := f.prefs.FindByUserID(f.user.ID)
	require.NoError(t, err)
	prefs.GoogleCalendarEnabled = true
	require.NoError(t, f.prefs.Save(prefs))

	_, apierr = svc.Sync(context.Background(), f.user)
	assert.Equal(t, apierror.CalendarNotConnectedError, apierr)
}

func TestCalendarService_SyncImportsNewEvents(t *testing.T) {
	f := newFixture(t)
	oauth := &fakeCalendarOAuth{events: []*google.CalendarEvent{
		{ID: "g1", Summary: "Standup", Start: "2024-05-10T09:00:00Z", End: "2024-05-10T09:15:00Z", ColorID: "11", OrganizerEmail: "team@example.com"},
		{ID: "g2", Start: "2024-05-11", AllDay: true},
		{ID: "g3"},
	}}
	svc := newCalendarService(f, oauth)
	connectCalendar(t, f, svc, oauth)

	resp, apierr := svc.Sync(context.Background(), f.user)
	require.Nil(t, apierr)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.SyncedEvents)
	assert.Equal(t, 3, resp.TotalGoogleEvents)
	assert.Equal(t, "refresh-code", oauth.listedToken.RefreshToken)

	stored, err := f.events.FindAll(repository.EventQuery{UserID: f.user.ID, Type: entity.EventTypeGoogleCalendar})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	byTitle := map[string]*entity.Event{}
	for _, e := range stored {
		byTitle[e.Title] = e
	}
	require.Contains(t, byTitle, "Standup")
	require.Contains(t, byTitle, "No Title")
	assert.Equal(t, "#D50000", byTitle["Standup"].Color)
	assert.Equal(t, "team@example.com", byTitle["Standup"].GoogleCalendarID)
	assert.True(t, byTitle["No Title"].AllDay)

	again, apierr := svc.Sync(context.Background(), f.user)
	require.Nil(t, apierr)
	assert.Equal(t, 0, again.SyncedEvents)
	assert.Empty(t, again.Events)
}

func TestCalendarService_SyncPersistsRefreshedToken(t *testing.T) {
	f := newFixture(t)
	oauth := &fakeCalendarOAuth{}
	svc := newCalendarService(f, oauth)
	connectCalendar(t, f, svc, oauth)

	oauth.fresh = &oauth2.Token{AccessToken: "rotated", Expiry: time.Now().Add(time.Hour)}
	_, apierr := svc.Sync(context.Background(), f.user)
	require.Nil(t, apierr)

	user, err := f.users.FindByID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "rotated", user.GoogleAccessToken)
	assert.Equal(t, "refresh-code", user.GoogleRefreshToken)

	oauth.listErr = errors.New("invalid_grant")
	_, apierr = svc.Sync(context.Background(), user)
	assert.Equal(t, apierror.CalendarSyncError, apierr)
}

func TestCalendarService_SyncTokenWithoutExpiry(t *testing.T) {
	f := newFixture(t)
	oauth := &fakeCalendarOAuth{noExpiry: true}
	svc := newCalendarService(f, oauth)
	connectCalendar(t, f, svc, oauth)
	require.Zero(t, f.user.GoogleTokenExpiry)

	_, apierr := svc.Sync(context.Background(), f.user)
	require.Nil(t, apierr)
	require.NotNil(t, oauth.listedToken)
	assert.True(t, oauth.listedToken.Expiry.IsZero())
	assert.True(t, oauth.listedToken.Valid())
}

func TestCalendarService_SyncKeepsStoredExpiry(t *testing.T) {
	f := newFixture(t)
	oauth := &fakeCalendarOAuth{}
	svc := newCalendarService(f, oauth)
	connectCalendar(t, f, svc, oauth)

	_, apierr := svc.Sync(context.Background(), f.user)
	require.Nil(t, apierr)
	assert.Equal(t, f.user.GoogleTokenExpiry, oauth.listedToken.Expiry.UnixMilli())
}

func TestCalendarService_Disconnect(t *testing.T) {
	f := newFixture(t)
	oauth := &fakeCalendarOAuth{events: []*google.CalendarEvent{{ID: "g1", Summary: "Standup", Start: "2024-05-10T09:00:00Z"}}}
	svc := newCalendarService(f, oauth)
	connectCalendar(t, f, svc, oauth)

	_, apierr := svc.Sync(context.Background(), f.user)
	require.Nil(t, apierr)

	_, apierr = svc.HandleAction(f.user, &contract.CalendarActionRequest{Action: "sync"})
	assert.Equal(t, apierror.InvalidActionError, apierr)

	resp, apierr := svc.HandleAction(f.user, &contract.CalendarActionRequest{Action: contract.CalendarActionDisconnect})
	require.Nil(t, apierr)
	assert.Equal(t, "Google Calendar disconnected", resp.Message)

	user, err := f.users.FindByID(f.user.ID)
	require.NoError(t, err)
	assert.False(t, user.HasGoogleTokens())

	prefs, err := f.prefs.FindByUserID(f.user.ID)
	require.NoError(t, err)
	assert.False(t, prefs.GoogleCalendarEnabled)

	remaining, err := f.events.FindAll(repository.EventQuery{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestCalendarService_CleanExpiredStates(t *testing.T) {
	f := newFixture(t)
	svc := newCalendarService(f, &fakeCalendarOAuth{})
	_, apierr := svc.StartAuth(f.user)
	require.Nil(t, apierr)

	removed, err := svc.CleanExpiredStates()
	require.NoError(t, err)
	assert.Zero(t, removed)

	svc.Now = func() time.Time { return time.Now().Add(time.Hour) }
	removed, err = svc.CleanExpiredStates()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
