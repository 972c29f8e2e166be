package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fraudscore/internal/model"
	"fraudscore/pkg/config"
	xhttp "fraudscore/pkg/http"
	applogger "fraudscore/pkg/logger"
)

// App encapsulates the entire application lifecycle: model host startup,
// HTTP serving, and graceful teardown.
type App struct {
	cfg        *config.Config
	host       *model.Host
	handler    xhttp.Handler
	httpServer *xhttp.Server
	logger     *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, host *model.Host, handler xhttp.Handler, logger *applogger.Logger) *App {
	return &App{
		cfg:     cfg,
		host:    host,
		handler: handler,
		logger:  logger,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	// Load the scoring artifact. Failure degrades the host to "absent";
	// the HTTP server starts either way.
	a.host.Initialize()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.Path),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("service started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Bool("model_loaded", a.host.Loaded()))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the HTTP server, then releases the model.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	a.host.Shutdown()

	a.logger.Info("shutdown complete")
	return nil
}
