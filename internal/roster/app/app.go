package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/matchdayhq/rosterd/internal/roster/http"
	"github.com/matchdayhq/rosterd/internal/roster/mail"
	"github.com/matchdayhq/rosterd/internal/roster/service"
	"github.com/matchdayhq/rosterd/internal/roster/store"
	"github.com/matchdayhq/rosterd/internal/roster/store/drivers/sqlite"
	"github.com/matchdayhq/rosterd/pkg/cryptox"
	"github.com/matchdayhq/rosterd/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the roster identity service with all its
// dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db   store.Store
	keys *SessionKeys

	credentialsService  *service.CredentialsService
	sessionService      *service.SessionService
	registrationService *service.RegistrationService
	invitationService   *service.InvitationService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "rosterd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitSessionKeys(app.cfg.Issuer, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keys = keys

	app.initServices()

	if err := app.bootstrapService.EnsureSuperUser(context.Background()); err != nil {
		if !errors.Is(err, service.ErrBootstrapNotConfigured) {
			_ = app.db.Close()
			return nil, fmt.Errorf("bootstrap failed: %w", err)
		}
		// An empty store without credentials still serves; someone has to
		// provision the first super user another way.
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("roster identity service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down roster identity service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("roster identity service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
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

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.credentialsService = &service.CredentialsService{Store: app.db}

	app.sessionService = &service.SessionService{
		Signer:   app.keys.Signer,
		Verifier: app.keys.Verifier,
		TTL:      app.cfg.SessionTTL,
	}

	app.registrationService = &service.RegistrationService{Store: app.db}

	app.invitationService = &service.InvitationService{
		Store:     app.db,
		Mailer:    app.newMailer(),
		PublicURL: app.cfg.PublicURL,
		TTL:       app.cfg.InvitationTTL,
	}

	app.bootstrapService = &service.BootstrapService{
		Store:       app.db,
		Email:       app.cfg.BootstrapEmail,
		Password:    app.cfg.BootstrapPassword,
		DisplayName: app.cfg.BootstrapName,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) newMailer() mail.Mailer {
	if app.cfg.SMTPHost == "" {
		app.logger.Info("no SMTP host configured, invitation mail will be logged")
		return mail.NewLogMailer(app.logger)
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host: app.cfg.SMTPHost,
		Port: app.cfg.SMTPPort,
		User: app.cfg.SMTPUser,
		Pass: app.cfg.SMTPPass,
		From: app.cfg.SMTPFrom,
	})
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Keys:         app.keys.KeySet,
		Issuer:       app.cfg.Issuer,
		BuildVersion: BuildVersion,
		CookieName:   app.cfg.CookieName,
		CookieSecure: app.cfg.CookieSecure(),
		Store:        app.db,
		Logger:       app.logger,
	})

	router.SessionService = app.sessionService
	router.CredentialsService = app.credentialsService
	router.RegistrationService = app.registrationService
	router.InvitationService = app.invitationService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
