// Package app initializes and runs the application: it loads configuration,
// sets up logging, builds the in-memory stores and the HTTP surface, and
// handles graceful shutdown. All state lives in process memory, so shutdown
// only needs to drain in-flight requests.
package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tinyapp/linkshrt/internal/config"
	"github.com/tinyapp/linkshrt/internal/links"
	"github.com/tinyapp/linkshrt/internal/logger"
	"github.com/tinyapp/linkshrt/internal/router"
	"github.com/tinyapp/linkshrt/internal/service"
	"github.com/tinyapp/linkshrt/internal/session"
	"github.com/tinyapp/linkshrt/internal/users"
	"github.com/tinyapp/linkshrt/internal/view"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates the configuration and the HTTP handler needed to run
// the URL shortener service.
type App struct {
	cfg         *config.Config
	httpHandler http.Handler
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing the logger
// - building the user directory and the link store
// - setting up sessions, page templates and the router
func New() (*App, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return nil, err
	}

	sessionSigningSecretKey, err := base64.URLEncoding.DecodeString(cfg.SessionSigningSecretKey)
	if err != nil {
		return nil, fmt.Errorf("error decoding session signing secret: %w", err)
	}

	pages, err := view.New()
	if err != nil {
		return nil, err
	}

	directory := users.New(cfg.BcryptCost)
	linkStore := links.New()

	return &App{
		cfg: cfg,
		httpHandler: router.New(
			service.New(directory, linkStore, cfg.ShortURLBase),
			session.New(cfg.SessionCookieName, sessionSigningSecretKey, cfg.SessionTTL),
			pages,
		),
	}, nil
}

// Run starts the HTTP server with graceful shutdown support.
// It listens for system signals and drains in-flight requests on exit.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal, exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}
