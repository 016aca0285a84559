package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"BrentLens/pkg/config"
	xhttp "BrentLens/pkg/http"
	applogger "BrentLens/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	httpServer *xhttp.Server
	l          *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, httpServer *xhttp.Server, l *applogger.Logger) *App {
	return &App{
		cfg:        cfg,
		httpServer: httpServer,
		l:          l,
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	return a.run(sigCh)
}

func (a *App) run(stop <-chan os.Signal) error {
	if err := a.httpServer.Start(); err != nil {
		return fmt.Errorf("http server start: %w", err)
	}
	a.l.Info("brentlens started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("source", a.cfg.Dataset.Source),
		applogger.String("addr", a.httpServer.Addr()),
		applogger.Int("window_days", a.cfg.Dataset.WindowDays),
	)

	sig := <-stop
	a.l.Info("shutdown signal received", applogger.String("signal", sig.String()))
	return a.shutdown()
}

// shutdown gracefully stops the HTTP server within the configured timeout.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.l.Info("shutdown complete")
	return nil
}
