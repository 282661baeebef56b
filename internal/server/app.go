// Package server initializes and runs the StaffDesk API server. It selects a
// storage backend, seeds demo data for the in-memory one, and handles
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/internal/logging"
	"github.com/staffdesk/staffdesk/internal/server/config"
	"github.com/staffdesk/staffdesk/internal/server/db"
	"github.com/staffdesk/staffdesk/internal/server/httpapi"
	"github.com/staffdesk/staffdesk/internal/server/users"
)

type App struct {
	config *config.Config
	log    zerolog.Logger
	repos  db.RepositoryManager
	server *http.Server
}

func NewApp(c *config.Config) (*App, error) {
	log := logging.NewServerLogger(c.LogLevel, os.Stdout)

	var repos db.RepositoryManager
	if c.DatabaseDSN == "" {
		log.Info().Msg("no DATABASE_DSN, using in-memory storage with demo data")
		mem := db.NewInMemoryRepositoryManager()
		if err := seed(context.Background(), mem); err != nil {
			return nil, fmt.Errorf("seeding demo data: %w", err)
		}
		repos = mem
	} else {
		pg, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		repos = pg
	}

	userService := users.NewService(repos.Users(), c.JWTSecret, c.TokenTTL)
	api := httpapi.NewServer(log, userService, repos.Employees(), c.JWTSecret)

	return &App{
		config: c,
		log:    log,
		repos:  repos,
		server: &http.Server{Addr: c.Addr, Handler: api.Router()},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		app.log.Info().Str("addr", app.config.Addr).Msg("starting server")
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	app.log.Info().Msg("shutting down")
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return app.repos.Close()
}
