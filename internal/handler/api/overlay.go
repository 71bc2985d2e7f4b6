package api

import (
	"net/http"

	domrepo "streampulse/internal/domain/repository"
	"streampulse/internal/usecase"
	xhttp "streampulse/pkg/http"
	xlogger "streampulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// OverlayHandler exposes the overlay status snapshot and liveness probe.
type OverlayHandler struct {
	logger    *xlogger.Logger
	state     *usecase.OverlayState
	src       domrepo.StatsSource
	collector *usecase.OverlayCollector
}

// NewOverlayHandler creates the handler. collector may be nil when the push
// feed is disabled; the snapshot then reports disconnected.
func NewOverlayHandler(logger *xlogger.Logger, state *usecase.OverlayState, src domrepo.StatsSource, collector *usecase.OverlayCollector) *OverlayHandler {
	return &OverlayHandler{logger: logger, state: state, src: src, collector: collector}
}

func (h *OverlayHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/overlay/status", h.Status)
	e.GET("/healthz", h.Health)
}

func (h *OverlayHandler) Status(c echo.Context) error {
	snap := h.state.Snapshot()
	if h.collector != nil {
		snap.Connected = h.collector.IsConnected()
	}
	if h.src != nil {
		conns, err := h.src.Connections(c.Request().Context())
		if err != nil {
			// the snapshot is still useful without platform health
			h.logger.Warn("connections fetch error", xlogger.Error(err))
		} else {
			snap.Connections = conns
		}
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *OverlayHandler) Health(c echo.Context) error {
	status := map[string]interface{}{
		"status": "ok",
	}
	if h.collector != nil {
		status["feed_connected"] = h.collector.IsConnected()
	}
	return c.JSON(http.StatusOK, status)
}
