package api

import (
	"testing"
	"time"

	"streampulse/internal/domain/models"
	"streampulse/internal/service/statsapi"
	"streampulse/internal/usecase"
	xlogger "streampulse/pkg/logger"
)

func newOverlayHandler() (*OverlayHandler, *usecase.OverlayState) {
	src := statsapi.NewFixture(func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	})
	logger, _ := xlogger.New(&xlogger.Config{Level: "error", Output: "stderr"})
	state := usecase.NewOverlayState("donations", 10)
	return NewOverlayHandler(logger, state, src, nil), state
}

func TestOverlayStatusIncludesConnections(t *testing.T) {
	h, state := newOverlayHandler()
	state.Apply(&models.OverlayEvent{Type: models.EventDonation, Sender: "a", Amount: 5_000, At: time.Now()})

	body := doRequest(t, "/api/overlay/status", h.Status)
	data := body["data"].(map[string]interface{})
	if data["goalAmount"] != float64(5_000) {
		t.Fatalf("expected goal 5000, got %v", data["goalAmount"])
	}
	conns := data["connections"].([]interface{})
	if len(conns) != 4 {
		t.Fatalf("expected 4 platform connections, got %d", len(conns))
	}
	first := conns[0].(map[string]interface{})
	if first["platform"] == "" || first["connected"] != true {
		t.Fatalf("unexpected first connection row: %v", first)
	}
}

func TestOverlayHealth(t *testing.T) {
	h, _ := newOverlayHandler()
	body := doRequest(t, "/healthz", h.Health)
	if body["status"] != "ok" {
		t.Fatalf("expected ok, got %v", body["status"])
	}
}
