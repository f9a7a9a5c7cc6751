package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orbit/cmd/internal/domain/database"
	"orbit/cmd/internal/domain/database/repository"
	"orbit/cmd/internal/http/handler"
	"orbit/cmd/internal/http/middleware"
	"orbit/cmd/internal/http/server"
	cognitoclient "orbit/cmd/internal/infrastructure/aws/cognito"
	"orbit/cmd/internal/infrastructure/aws/storage"
	"orbit/cmd/internal/infrastructure/aws/websocket"
	"orbit/cmd/internal/infrastructure/ergast"
	"orbit/cmd/internal/infrastructure/frankfurter"
	"orbit/cmd/internal/infrastructure/google"
	"orbit/cmd/internal/infrastructure/newsapi"
	"orbit/cmd/internal/infrastructure/openmeteo"
	"orbit/cmd/internal/service"
	"orbit/cmd/internal/service/jobs"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/uid"
	"orbit/cmd/internal/utils/validators"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const (
	bodyLimit       = "1M"
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := uid.Init(cfg.MachineID); err != nil {
		return fmt.Errorf("failed to initialize id generator: %w", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	validate := validators.New()

	// Gettings repos
	userRepo := repository.NewUserRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	eventRepo := repository.NewEventRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)
	stateRepo := repository.NewOAuthStateRepository(db)
	connRepo := repository.NewConnectionRepository(db)

	// Identity provider
	cogClient, err := cognitoclient.NewClient(ctx, cfg.Cognito.Region, cfg.Cognito.UserPoolID)
	if err != nil {
		return fmt.Errorf("failed to initialize cognito client: %w", err)
	}

	tokenValidator, err := utils.NewCognitoValidator(cfg.Cognito.Region, cfg.Cognito.UserPoolID)
	if err != nil {
		return fmt.Errorf("failed to initialize token validator: %w", err)
	}

	// Live updates
	var notifier service.Notifier = service.NopNotifier{}
	var wsService *service.WebSocketService
	if cfg.AWS.WSGatewayEndpoint != "" {
		gateway, err := websocket.NewAWSGatewayClient(ctx, cfg.AWS.WSGatewayEndpoint, cfg.AWS.WSGatewayRegion)
		if err != nil {
			return fmt.Errorf("failed to initialize websocket gateway: %w", err)
		}
		wsService = service.NewWebSocketService(connRepo, gateway)
		notifier = wsService
	} else {
		log.Warn("WS_GATEWAY_ENDPOINT not set, live updates are disabled")
	}

	// Export archive
	var archiver service.ExportArchiver
	if cfg.AWS.ExportBucket != "" {
		s3Client, err := storage.NewStorageClient(ctx, cfg.AWS.S3Region, cfg.AWS.ExportBucket)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		archiver = s3Client
	}

	// Google Calendar
	var calendarOAuth service.CalendarOAuth
	if cfg.Google.Enabled() {
		calendarOAuth = google.NewCalendarClient(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURI)
	} else {
		log.Warn("Google credentials not set, calendar integration is disabled")
	}

	// Getting services
	timeout := cfg.Provider.Timeout
	userService := service.NewUserService(userRepo)
	profileData := service.ProfileDataRepositories{
		Tasks:    taskRepo,
		Notes:    noteRepo,
		Expenses: expenseRepo,
		Events:   eventRepo,
		CheckIns: checkInRepo,
		Prefs:    prefsRepo,
	}
	calendarService := service.NewCalendarService(calendarOAuth, stateRepo, userRepo, prefsRepo, eventRepo, notifier, cfg.AppURL)

	routes := &server.Routes{
		Tasks:       handler.NewTaskDefault(service.NewTaskService(taskRepo, notifier, validate)),
		Notes:       handler.NewNoteDefault(service.NewNoteService(noteRepo, notifier, validate)),
		Expenses:    handler.NewExpenseDefault(service.NewExpenseService(expenseRepo, prefsRepo, notifier, validate)),
		Events:      handler.NewEventDefault(service.NewEventService(eventRepo, notifier, validate)),
		Preferences: handler.NewPreferencesDefault(service.NewPreferencesService(prefsRepo, notifier, validate)),
		Profile:     handler.NewProfileDefault(service.NewProfileService(userRepo, profileData, cogClient, archiver, notifier, validate)),
		CheckIns:    handler.NewCheckInDefault(service.NewCheckInService(checkInRepo, notifier), cfg.Location()),
		Utils: handler.NewUtilRoute(
			service.NewWeatherService(openmeteo.NewClient(cfg.Provider.WeatherBaseURL, timeout), validate),
			service.NewNewsService(newsapi.NewClient(cfg.Provider.NewsBaseURL, cfg.Provider.NewsAPIKey, timeout), validate),
			service.NewF1Service(ergast.NewClient(cfg.Provider.F1BaseURL, timeout), validate),
			service.NewCurrencyService(frankfurter.NewClient(cfg.Provider.CurrencyBaseURL, timeout), validate),
		),
		Calendar: handler.NewCalendarDefault(calendarService),
	}
	if wsService != nil {
		routes.WebSocket = handler.NewWSDefault(wsService)
	}

	auth := middleware.NewAuthMiddleware(&middleware.AuthMiddlewareConfig{
		Validator: tokenValidator,
		Users:     userService,
	})

	e := server.New(server.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		BodyLimit:      bodyLimit,
		ProxyRateLimit: cfg.ProxyRateLimit,
	}, routes, auth)
	e.Logger.SetLevel(cfg.GommonLevel())

	// Background jobs
	if wsService != nil {
		go jobs.NewConnectionCleaner(wsService).Start(ctx)
	}
	go jobs.NewOAuthStateCleaner(calendarService).Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
