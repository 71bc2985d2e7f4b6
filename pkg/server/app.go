package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"streampulse/internal/handler/api"
	"streampulse/internal/usecase"
	"streampulse/pkg/config"
	xhttp "streampulse/pkg/http"
	pkgkafka "streampulse/pkg/kafka"
	applogger "streampulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	collector  *usecase.OverlayCollector
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	dashboard  *api.DashboardHandler
	overlay    *api.OverlayHandler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	collector *usecase.OverlayCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	dashboard *api.DashboardHandler,
	overlay *api.OverlayHandler,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		dashboard: dashboard,
		overlay:   overlay,
	}
}

// RegisterRoutes mounts all HTTP handlers on the Echo instance.
func (a *App) RegisterRoutes(e *echo.Echo) {
	if a.dashboard != nil {
		a.dashboard.RegisterRoutes(e)
	}
	if a.overlay != nil {
		a.overlay.RegisterRoutes(e)
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.logger

	a.httpServer = xhttp.NewServer(a,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(l),
	)

	// Start collector when a websocket feed is configured
	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				l.Error("collector error", applogger.Error(err))
			}
		}()
		l.Info("overlay collector started", applogger.Strings("channels", a.cfg.Overlay.WebSocket.Channels))
	}

	// Start consumer when the push channel is brokered
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l := a.logger

	// Stop collector (pipeline + stream)
	if a.collector != nil {
		if err := a.collector.Shutdown(ctx); err != nil {
			l.Warn("collector stop error", applogger.Error(err))
		}
		a.collector.Processor().Close()
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}

var _ xhttp.Handler = (*App)(nil)
