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

	httpapi "github.com/yourfavcrm/crm/internal/crm/http"
	"github.com/yourfavcrm/crm/internal/crm/service"
	"github.com/yourfavcrm/crm/internal/crm/store"
	"github.com/yourfavcrm/crm/internal/crm/store/drivers/jsonfile"
	"github.com/yourfavcrm/crm/internal/crm/store/drivers/sqlite"
	"github.com/yourfavcrm/crm/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the CRM service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	authService     *service.AuthService
	userService     *service.UserService
	customerService *service.CustomerService
	dealService     *service.DealService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "crm-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("crm service starting",
		"port", app.cfg.Port,
		"driver", app.cfg.StoreDriver,
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

// Shutdown drains in-flight requests and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down crm service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("crm service stopped")
	return nil
}

// initStore opens the configured store driver.
func (app *Application) initStore() error {
	switch app.cfg.StoreDriver {
	case "jsonfile":
		db, err := jsonfile.NewStore(app.cfg.DatabaseFile)
		if err != nil {
			return fmt.Errorf("failed to open data file: %w", err)
		}
		app.db = db

	case "sqlite":
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

	default:
		return fmt.Errorf("unknown store driver %q", app.cfg.StoreDriver)
	}

	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.authService = &service.AuthService{Store: app.db}
	app.userService = &service.UserService{Store: app.db}
	app.customerService = &service.CustomerService{Store: app.db}
	app.dealService = &service.DealService{Store: app.db}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(httpapi.Config{
		AllowedOrigins: app.cfg.AllowedOrigins,
		SecureCookies:  app.cfg.SecureCookies,
	}, app.db, app.logger)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.CustomerService = app.customerService
	router.DealService = app.dealService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
