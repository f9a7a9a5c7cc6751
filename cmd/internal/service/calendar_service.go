package service

import (
	"context"
	"errors"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/domain/events"
	"orbit/cmd/internal/infrastructure/google"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"orbit/cmd/internal/utils/uid"
	"time"

	googleuuid "github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/oauth2"
)

const (
	calendarSyncWindow    = 30 * 24 * time.Hour
	calendarSyncMaxEvents = 50

	calendarConnected  = "/dashboard?success=google_calendar_connected"
	calendarAuthFailed = "/dashboard?error=google_calendar_auth_failed"
)

type CalendarOAuth interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	ListEvents(ctx context.Context, token *oauth2.Token, calendarID string, from, to time.Time, max int64) ([]*google.CalendarEvent, *oauth2.Token, error)
}

type OAuthStateRepository interface {
	Create(state *entity.OAuthState) error
	Consume(value string) (*entity.OAuthState, error)
	DeleteExpired(before int64) (int64, error)
}

type DefaultCalendarService struct {
	OAuth     CalendarOAuth // nil when Google credentials are not configured
	StateRepo OAuthStateRepository
	UserRepo  UserRepository
	PrefsRepo PreferencesRepository
	EventRepo EventRepository
	Notifier  Notifier
	AppURL    string
	Now       func() time.Time
}

func NewCalendarService(
	oauth CalendarOAuth,
	stateRepo OAuthStateRepository,
	userRepo UserRepository,
	prefsRepo PreferencesRepository,
	eventRepo EventRepository,
	notifier Notifier,
	appURL string,
) *DefaultCalendarService {
	return &DefaultCalendarService{
		OAuth:     oauth,
		StateRepo: stateRepo,
		UserRepo:  userRepo,
		PrefsRepo: prefsRepo,
		EventRepo: eventRepo,
		Notifier:  notifier,
		AppURL:    appURL,
		Now:       time.Now,
	}
}

// StartAuth binds a fresh one-time state to the user and returns the
// Google consent URL.
func (c *DefaultCalendarService) StartAuth(actor *entity.User) (string, apierror.ErrorResponse) {
	if c.OAuth == nil {
		return "", apierror.CalendarNotConfiguredError
	}

	state := &entity.OAuthState{
		State:     googleuuid.NewString(),
		UserID:    actor.ID,
		ExpiresAt: c.Now().Add(entity.OAuthStateTTL).UnixMilli(),
	}

	if err := c.StateRepo.Create(state); err != nil {
		log.Errorf("failed to save oauth state: %v", err)
		return "", apierror.InternalServerError
	}
	return c.OAuth.AuthCodeURL(state.State), nil
}

// CompleteAuth handles the OAuth callback and returns where to redirect the
// browser to. Every failure leads to the same error page.
func (c *DefaultCalendarService) CompleteAuth(ctx context.Context, code, state, oauthErr string) string {
	if err := c.completeAuth(ctx, code, state, oauthErr); err != nil {
		log.Warnf("google calendar authorization failed: %v", err)
		return c.AppURL + calendarAuthFailed
	}
	return c.AppURL + calendarConnected
}

func (c *DefaultCalendarService) completeAuth(ctx context.Context, code, state, oauthErr string) error {
	switch {
	case c.OAuth == nil:
		return errors.New("integration not configured")
	case oauthErr != "":
		return errors.New("consent denied: " + oauthErr)
	case code == "" || state == "":
		return errors.New("missing code or state")
	}

	st, err := c.StateRepo.Consume(state)
	if err != nil {
		return err
	}

	if st == nil || st.Expired(c.Now().UnixMilli()) {
		return errors.New("unknown or expired state")
	}

	user, err := c.UserRepo.FindByID(st.UserID)
	if err != nil {
		return err
	}

	if user == nil {
		return errors.New("state owner no longer exists")
	}

	token, err := c.OAuth.Exchange(ctx, code)
	if err != nil {
		return err
	}

	now := utils.NowUTC()
	setGoogleToken(user, token)
	user.UpdatedAt = now
	if err := c.UserRepo.Save(user); err != nil {
		return err
	}

	prefs, apierr := findOrCreatePreferences(c.PrefsRepo, user.ID)
	if apierr != nil {
		return errors.New("failed to load preferences")
	}

	prefs.GoogleCalendarEnabled = true
	prefs.GoogleCalendarSync = true
	if prefs.GoogleCalendarID == "" {
		prefs.GoogleCalendarID = google.PrimaryCalendar
	}
	prefs.UpdatedAt = now
	return c.PrefsRepo.Save(prefs)
}

// Sync imports the Google events of the next 30 days that are not stored yet.
func (c *DefaultCalendarService) Sync(ctx context.Context, actor *entity.User) (*contract.CalendarSyncResponse, apierror.ErrorResponse) {
	if c.OAuth == nil {
		return nil, apierror.CalendarNotConfiguredError
	}

	prefs, apierr := findOrCreatePreferences(c.PrefsRepo, actor.ID)
	if apierr != nil {
		return nil, apierr
	}

	if !prefs.GoogleCalendarEnabled {
		return nil, apierror.CalendarNotEnabledError
	}

	if !actor.HasGoogleTokens() {
		return nil, apierror.CalendarNotConnectedError
	}

	now := c.Now()
	token := googleToken(actor)
	googleEvents, fresh, err := c.OAuth.ListEvents(ctx, token, prefs.GoogleCalendarID, now, now.Add(calendarSyncWindow), calendarSyncMaxEvents)
	if err != nil {
		log.Errorf("failed to list google events for user %d: %v", actor.ID, err)
		return nil, apierror.CalendarSyncError
	}

	if fresh != nil && fresh.AccessToken != actor.GoogleAccessToken {
		c.persistRefreshedToken(actor, fresh)
	}

	known, err := c.EventRepo.FindGoogleEventIDs(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch stored google event ids: %v", err)
		return nil, apierror.InternalServerError
	}

	seen := make(map[string]struct{}, len(known))
	for _, id := range known {
		seen[id] = struct{}{}
	}

	synced := make([]*contract.EventResponse, 0)
	for _, ge := range googleEvents {
		if _, ok := seen[ge.ID]; ok {
			continue
		}

		event, err := toGoogleEvent(actor.ID, ge)
		if err != nil {
			log.Warnf("skipping google event %s: %v", ge.ID, err)
			continue
		}

		if err := c.EventRepo.Create(event); err != nil {
			log.Errorf("failed to store google event %s: %v", ge.ID, err)
			continue
		}
		seen[ge.ID] = struct{}{}
		synced = append(synced, toEventResponse(event))
	}

	if len(synced) > 0 {
		dispatchAsync(c.Notifier, actor.ID, &events.CalendarSynced{SyncedEvents: len(synced)})
	}

	return &contract.CalendarSyncResponse{
		Success:           true,
		SyncedEvents:      len(synced),
		TotalGoogleEvents: len(googleEvents),
		Events:            synced,
	}, nil
}

// HandleAction runs a POST action on the integration. Only "disconnect" exists.
func (c *DefaultCalendarService) HandleAction(actor *entity.User, req *contract.CalendarActionRequest) (*contract.CalendarDisconnectResponse, apierror.ErrorResponse) {
	if req.Action != contract.CalendarActionDisconnect {
		return nil, apierror.InvalidActionError
	}

	now := utils.NowUTC()
	actor.ClearGoogleTokens()
	actor.UpdatedAt = now
	if err := c.UserRepo.Save(actor); err != nil {
		log.Errorf("failed to clear google tokens: %v", err)
		return nil, apierror.InternalServerError
	}

	if err := c.PrefsRepo.DisableCalendar(actor.ID, now); err != nil {
		log.Errorf("failed to disable calendar preferences: %v", err)
		return nil, apierror.InternalServerError
	}

	removed, err := c.EventRepo.DeleteByType(actor.ID, entity.EventTypeGoogleCalendar)
	if err != nil {
		log.Errorf("failed to delete google events: %v", err)
		return nil, apierror.InternalServerError
	}

	log.Infof("user %d disconnected google calendar, %d events removed", actor.ID, removed)
	dispatchAsync(c.Notifier, actor.ID, events.Changed(contract.EventCalendarDisconnected, nil))
	return &contract.CalendarDisconnectResponse{Success: true, Message: "Google Calendar disconnected"}, nil
}

// CleanExpiredStates drops abandoned authorization attempts.
func (c *DefaultCalendarService) CleanExpiredStates() (int64, error) {
	return c.StateRepo.DeleteExpired(c.Now().UnixMilli())
}

func (c *DefaultCalendarService) persistRefreshedToken(user *entity.User, token *oauth2.Token) {
	setGoogleToken(user, token)
	user.UpdatedAt = utils.NowUTC()

	if err := c.UserRepo.Save(user); err != nil {
		log.Errorf("failed to persist refreshed google token for user %d: %v", user.ID, err)
	}
}

// googleToken rebuilds the stored token. A stored expiry of 0 means Google
// never sent one, so the access token is used until it is rejected.
func googleToken(user *entity.User) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  user.GoogleAccessToken,
		RefreshToken: user.GoogleRefreshToken,
	}
	if user.GoogleTokenExpiry > 0 {
		token.Expiry = time.UnixMilli(user.GoogleTokenExpiry)
	}
	return token
}

// setGoogleToken keeps the stored refresh token when Google omits it.
func setGoogleToken(user *entity.User, token *oauth2.Token) {
	user.GoogleAccessToken = token.AccessToken
	if token.RefreshToken != "" {
		user.GoogleRefreshToken = token.RefreshToken
	}
	user.GoogleTokenExpiry = 0
	if !token.Expiry.IsZero() {
		user.GoogleTokenExpiry = token.Expiry.UnixMilli()
	}
}

func toGoogleEvent(userID int64, ge *google.CalendarEvent) (*entity.Event, error) {
	if ge.Start == "" {
		return nil, errors.New("event has no start")
	}

	start, err := utils.ParseTimestamp(ge.Start)
	if err != nil {
		return nil, err
	}

	var end *int64
	if ge.End != "" {
		if parsed, err := utils.ParseTimestamp(ge.End); err == nil {
			end = &parsed
		}
	}

	calendarID := ge.OrganizerEmail
	if calendarID == "" {
		calendarID = google.PrimaryCalendar
	}

	googleID := ge.ID
	now := utils.NowUTC()
	return &entity.Event{
		ID:               uid.Generate(),
		UserID:           userID,
		Title:            orDefault(ge.Summary, "No Title"),
		Description:      ge.Description,
		StartDate:        start,
		EndDate:          end,
		AllDay:           ge.AllDay,
		Location:         ge.Location,
		Color:            google.ColorHex(ge.ColorID, entity.DefaultEventColor),
		Type:             entity.EventTypeGoogleCalendar,
		GoogleEventID:    &googleID,
		GoogleCalendarID: calendarID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}
