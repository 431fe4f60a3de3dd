package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/huddlehq/huddle/internal/scheduler/http"
	"github.com/huddlehq/huddle/internal/scheduler/notify"
	"github.com/huddlehq/huddle/internal/scheduler/service"
	"github.com/huddlehq/huddle/internal/scheduler/store"
	"github.com/huddlehq/huddle/internal/scheduler/store/drivers/sqlite"
	"github.com/huddlehq/huddle/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the scheduler service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	notifier service.Notifier

	// Services
	meetingService     *service.MeetingService
	participantService *service.ParticipantService
	conflictService    *service.ConflictService
	notifyService      *service.NotifyService
	reminderService    *service.ReminderService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "scheduler",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initNotifier(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.reminderService.Start()

	app.logger.Info("scheduler starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"notifier", app.cfg.NotifierBackend,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down scheduler...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the reminder worker
	app.reminderService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("scheduler stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initNotifier selects the delivery backend.
func (app *Application) initNotifier() error {
	switch app.cfg.NotifierBackend {
	case "log", "":
		app.notifier = notify.NewLogNotifier()
	case "smtp":
		if app.cfg.SMTPAddr == "" {
			return fmt.Errorf("SCHED_SMTP_ADDR is required for the smtp notifier")
		}
		app.notifier = notify.NewSMTPNotifier(app.cfg.SMTPAddr, app.cfg.SMTPFrom, nil)
	default:
		return fmt.Errorf("unknown notifier backend %q", app.cfg.NotifierBackend)
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	clock := service.SystemClock{}
	locks := service.NewMeetingLocks()

	app.notifyService = &service.NotifyService{
		Store:    app.db,
		Notifier: app.notifier,
		Clock:    clock,
		Timeout:  app.cfg.NotifyTimeout,
	}

	app.meetingService = &service.MeetingService{
		Store:  app.db,
		Clock:  clock,
		Notify: app.notifyService,
		Locks:  locks,
	}

	app.participantService = &service.ParticipantService{
		Store:  app.db,
		Clock:  clock,
		Notify: app.notifyService,
		Locks:  locks,
	}

	app.conflictService = &service.ConflictService{Store: app.db}

	app.reminderService = service.NewReminderService(
		app.db,
		app.notifyService,
		clock,
		app.logger,
		app.cfg.ReminderInterval,
		app.cfg.ReminderLead,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.MeetingService = app.meetingService
	router.ParticipantService = app.participantService
	router.ConflictService = app.conflictService
	router.NotifyService = app.notifyService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
