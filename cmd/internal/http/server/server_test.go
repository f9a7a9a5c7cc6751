package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"orbit/cmd/internal/domain/database/repository"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/http/handler"
	"orbit/cmd/internal/infrastructure/ergast"
	"orbit/cmd/internal/infrastructure/frankfurter"
	"orbit/cmd/internal/infrastructure/newsapi"
	"orbit/cmd/internal/infrastructure/openmeteo"
	"orbit/cmd/internal/service"
	"orbit/cmd/internal/testutil"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"orbit/cmd/internal/utils/validators"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProviders struct{}

func (stubProviders) GetForecast(_ context.Context, lat, lon float64) (*openmeteo.Forecast, error) {
	return &openmeteo.Forecast{Latitude: lat, Longitude: lon, Timezone: "UTC"}, nil
}

func (stubProviders) Enabled() bool {
	return false
}

func (stubProviders) TopHeadlines(context.Context, string, string, int) (*newsapi.Headlines, error) {
	return &newsapi.Headlines{}, nil
}

func (stubProviders) Schedule(_ context.Context, season string) (string, []*ergast.Race, error) {
	return season, nil, nil
}

func (stubProviders) NextRace(context.Context) (string, *ergast.Race, error) {
	return "", nil, nil
}

func (stubProviders) DriverStandings(context.Context, string) (string, []*ergast.DriverStanding, error) {
	return "", nil, nil
}

func (stubProviders) ConstructorStandings(context.Context, string) (string, []*ergast.ConstructorStanding, error) {
	return "", nil, nil
}

func (stubProviders) GetRates(_ context.Context, _, base string, _ []string) (*frankfurter.Rates, error) {
	return &frankfurter.Rates{Base: base, Date: "2024-05-10", Rates: map[string]float64{"EUR": 0.9}}, nil
}

func (stubProviders) GetCurrencies(context.Context) (map[string]string, error) {
	return map[string]string{"EUR": "Euro"}, nil
}

type nopGateway struct{}

func (nopGateway) PostToConnection(context.Context, string, any) error { return nil }

func (nopGateway) DeleteConnection(context.Context, string) error { return nil }

// sessionAuth stands in for the JWT middleware: any bearer token maps to user.
func sessionAuth(user *entity.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if utils.BearerToken(c) == "" {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}
			c.Set(utils.ContextKeyUser, user)
			c.Set(utils.ContextKeyToken, &utils.TokenData{Sub: user.SubUUID, Exp: time.Now().Add(time.Hour).Unix()})
			return next(c)
		}
	}
}

func newTestServer(t *testing.T, proxyRate float64) *echo.Echo {
	t.Helper()
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "ana@example.com")
	validate := validators.New()
	notifier := service.NopNotifier{}

	users := repository.NewUserRepository(db)
	prefs := repository.NewPreferencesRepository(db)
	tasks := repository.NewTaskRepository(db)
	notes := repository.NewNoteRepository(db)
	expenses := repository.NewExpenseRepository(db)
	evts := repository.NewEventRepository(db)
	checkIns := repository.NewCheckInRepository(db)

	data := service.ProfileDataRepositories{Tasks: tasks, Notes: notes, Expenses: expenses, Events: evts, CheckIns: checkIns, Prefs: prefs}
	providers := stubProviders{}

	routes := &Routes{
		Tasks:       handler.NewTaskDefault(service.NewTaskService(tasks, notifier, validate)),
		Notes:       handler.NewNoteDefault(service.NewNoteService(notes, notifier, validate)),
		Expenses:    handler.NewExpenseDefault(service.NewExpenseService(expenses, prefs, notifier, validate)),
		Events:      handler.NewEventDefault(service.NewEventService(evts, notifier, validate)),
		Preferences: handler.NewPreferencesDefault(service.NewPreferencesService(prefs, notifier, validate)),
		Profile:     handler.NewProfileDefault(service.NewProfileService(users, data, nil, nil, notifier, validate)),
		CheckIns:    handler.NewCheckInDefault(service.NewCheckInService(checkIns, notifier), time.UTC),
		Utils: handler.NewUtilRoute(
			service.NewWeatherService(providers, validate),
			service.NewNewsService(providers, validate),
			service.NewF1Service(providers, validate),
			service.NewCurrencyService(providers, validate),
		),
		Calendar:  handler.NewCalendarDefault(service.NewCalendarService(nil, repository.NewOAuthStateRepository(db), users, prefs, evts, notifier, "https://orbit.example.com")),
		WebSocket: handler.NewWSDefault(service.NewWebSocketService(repository.NewConnectionRepository(db), nopGateway{})),
	}

	opts := Options{AllowedOrigins: []string{"*"}, BodyLimit: "1M", ProxyRateLimit: proxyRate}
	return New(opts, routes, sessionAuth(user))
}

func do(e *echo.Echo, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer test")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	e := newTestServer(t, 5)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestServer_RequiresSession(t *testing.T) {
	e := newTestServer(t, 5)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_TaskLifecycle(t *testing.T) {
	e := newTestServer(t, 5)

	rec := do(e, http.MethodPost, "/api/tasks", `{"title":"Ship it","priority":"HIGH"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID       string `json:"id"`
		Priority string `json:"priority"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "HIGH", created.Priority)

	rec = do(e, http.MethodGet, "/api/tasks?completed=false", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ship it")

	rec = do(e, http.MethodPut, "/api/tasks/"+created.ID, `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"completed":true`)

	rec = do(e, http.MethodDelete, "/api/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, "/api/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_BadInput(t *testing.T) {
	e := newTestServer(t, 5)

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/tasks/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/tasks?completed=maybe", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/api/notes", `{"title":`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/weather?lat=north", "").Code)
}

func TestServer_EventDeleteMessage(t *testing.T) {
	e := newTestServer(t, 5)

	rec := do(e, http.MethodPost, "/api/events", `{"title":"Dentist"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title and start date are required")

	rec = do(e, http.MethodPost, "/api/events", `{"title":"Dentist","start_date":"2024-05-10T09:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		ID    string `json:"id"`
		Color string `json:"color"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "#3B82F6", created.Color)

	rec = do(e, http.MethodGet, "/api/events?type=ALL", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "["))

	rec = do(e, http.MethodDelete, "/api/events/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Event deleted successfully"}`, rec.Body.String())
}

func TestServer_CheckInTwice(t *testing.T) {
	e := newTestServer(t, 5)

	rec := do(e, http.MethodPost, "/api/checkin", "", handler.HeaderTimezone, "Asia/Kuala_Lumpur")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"current_streak":1`)

	rec = do(e, http.MethodPost, "/api/checkin", "", handler.HeaderTimezone, "Asia/Kuala_Lumpur")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Already checked in today","checked_in_today":true}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/checkin", "", handler.HeaderTimezone, "Asia/Kuala_Lumpur")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"checked_in_today":true`)
}

func TestServer_ProfileExportIsAttachment(t *testing.T) {
	e := newTestServer(t, 5)

	rec := do(e, http.MethodGet, "/api/profile/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Regexp(t, `^attachment; filename="orbit-data-export-\d{4}-\d{2}-\d{2}\.json"$`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Contains(t, rec.Body.String(), `"exported_at"`)

	rec = do(e, http.MethodDelete, "/api/profile/delete", `{"confirm_email":"bob@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CalendarCallbackRedirects(t *testing.T) {
	e := newTestServer(t, 5)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google-calendar/callback?code=x&state=y", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "https://orbit.example.com/dashboard?error=google_calendar_auth_failed", rec.Header().Get(echo.HeaderLocation))

	rec = do(e, http.MethodGet, "/api/auth/google-calendar", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_ProxyRateLimit(t *testing.T) {
	e := newTestServer(t, 1)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/currency/currencies", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/currency", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(e, http.MethodGet, "/api/currency", "").Code)

	// Non proxy routes are not limited
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/preferences", "").Code)
}

func TestServer_WebSocketHandshake(t *testing.T) {
	e := newTestServer(t, 5)

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/ws/connect", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/ws/connect", "", "X-Connection-Id", "abc=").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/ws/message", `{"type":"ping"}`, "X-Connection-Id", "abc=").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/ws/disconnect", "", "X-Connection-Id", "abc=").Code)
}
