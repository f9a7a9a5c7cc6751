// Package server assembles the echo instance: global middleware, the auth
// chain and every route of the API.
package server

import (
	"net/http"
	"orbit/cmd/internal/http/handler"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type Options struct {
	AllowedOrigins []string
	BodyLimit      string
	// ProxyRateLimit caps requests per second and client IP on the routes
	// that call third-party APIs.
	ProxyRateLimit float64
}

type Routes struct {
	Tasks       *handler.DefaultTaskRoute
	Notes       *handler.DefaultNoteRoute
	Expenses    *handler.DefaultExpenseRoute
	Events      *handler.DefaultEventRoute
	Preferences *handler.DefaultPreferencesRoute
	Profile     *handler.DefaultProfileRoute
	CheckIns    *handler.DefaultCheckInRoute
	Utils       *handler.DefaultUtilRoute
	Calendar    *handler.DefaultCalendarRoute
	WebSocket   *handler.DefaultWSRoute
}

func New(opts Options, routes *Routes, auth echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: opts.AllowedOrigins}))
	e.Use(middleware.BodyLimit(opts.BodyLimit))

	// Docker Compose healthcheck
	e.GET("/health", handler.HealthCheck)

	// Google redirects here without our bearer token
	e.GET("/api/auth/google-calendar/callback", routes.Calendar.Callback)

	api := e.Group("/api", auth)

	// Tasks
	api.GET("/tasks", routes.Tasks.GetTasks)
	api.POST("/tasks", routes.Tasks.CreateTask)
	api.GET("/tasks/:id", routes.Tasks.GetTask)
	api.PUT("/tasks/:id", routes.Tasks.UpdateTask)
	api.DELETE("/tasks/:id", routes.Tasks.DeleteTask)

	// Notes
	api.GET("/notes", routes.Notes.GetNotes)
	api.POST("/notes", routes.Notes.CreateNote)
	api.GET("/notes/:id", routes.Notes.GetNote)
	api.PUT("/notes/:id", routes.Notes.UpdateNote)
	api.DELETE("/notes/:id", routes.Notes.DeleteNote)

	// Expenses
	api.GET("/expenses", routes.Expenses.GetExpenses)
	api.GET("/expenses/summary", routes.Expenses.GetSummary)
	api.POST("/expenses", routes.Expenses.CreateExpense)
	api.PUT("/expenses/:id", routes.Expenses.UpdateExpense)
	api.DELETE("/expenses/:id", routes.Expenses.DeleteExpense)

	// Events
	api.GET("/events", routes.Events.GetEvents)
	api.POST("/events", routes.Events.CreateEvent)
	api.GET("/events/:id", routes.Events.GetEvent)
	api.PUT("/events/:id", routes.Events.UpdateEvent)
	api.DELETE("/events/:id", routes.Events.DeleteEvent)

	// Preferences
	api.GET("/preferences", routes.Preferences.GetPreferences)
	api.PUT("/preferences", routes.Preferences.UpdatePreferences)

	// Profile
	api.GET("/profile", routes.Profile.GetProfile)
	api.PUT("/profile", routes.Profile.UpdateProfile)
	api.DELETE("/profile/delete", routes.Profile.DeleteAccount)
	api.GET("/profile/export", routes.Profile.ExportData)

	// Check-ins
	api.GET("/checkin", routes.CheckIns.GetStatus)
	api.POST("/checkin", routes.CheckIns.CheckIn)

	// Google Calendar
	api.GET("/auth/google-calendar", routes.Calendar.StartAuth)
	api.GET("/calendar/google-sync", routes.Calendar.Sync)
	api.POST("/calendar/google-sync", routes.Calendar.HandleAction)

	// Third-party widgets
	proxy := api.Group("", proxyRateLimiter(opts.ProxyRateLimit))
	proxy.GET("/weather", routes.Utils.GetWeather)
	proxy.GET("/news", routes.Utils.GetNews)
	proxy.GET("/f1", routes.Utils.GetF1)
	proxy.GET("/currency", routes.Utils.GetCurrency)
	proxy.GET("/currency/currencies", routes.Utils.GetCurrencies)
	proxy.POST("/currency", routes.Utils.GetCurrencies)

	// API Gateway integration, nil when no gateway is configured
	if routes.WebSocket != nil {
		e.POST("/ws/connect", routes.WebSocket.HandleConnect, auth)
		e.POST("/ws/disconnect", routes.WebSocket.HandleDisconnect)
		e.POST("/ws/message", routes.WebSocket.HandleMessage)
	}

	return e
}

func proxyRateLimiter(perSecond float64) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     max(1, int(perSecond*2)),
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "Too many requests"})
		},
	})
}
