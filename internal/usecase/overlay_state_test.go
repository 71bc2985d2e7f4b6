package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"streampulse/internal/domain/models"
)

func TestOverlayStateTickerBounded(t *testing.T) {
	s := NewOverlayState("ch-1", 3)
	for i := 0; i < 5; i++ {
		s.Apply(&models.OverlayEvent{Type: models.EventChat, Sender: fmt.Sprintf("v%d", i), At: time.Now()})
	}
	snap := s.Snapshot()
	if len(snap.Ticker) != 3 {
		t.Fatalf("expected ticker capped at 3, got %d", len(snap.Ticker))
	}
	// oldest evicted first
	if snap.Ticker[0].Sender != "v2" || snap.Ticker[2].Sender != "v4" {
		t.Fatalf("unexpected ticker window: %+v", snap.Ticker)
	}
}

func TestOverlayStateUptime(t *testing.T) {
	s := NewOverlayState("ch-1", 10)
	if got := s.Snapshot().Uptime; got != "" {
		t.Fatalf("expected empty uptime before connect, got %q", got)
	}
	s.SetConnected(true)
	if got := s.Snapshot().Uptime; got == "" {
		t.Fatalf("expected uptime after connect")
	}
	s.SetConnected(false)
	if got := s.Snapshot().Uptime; got != "" {
		t.Fatalf("expected empty uptime after disconnect, got %q", got)
	}
}

func TestOverlayStateGoalCounters(t *testing.T) {
	s := NewOverlayState("ch-1", 10)
	s.Apply(&models.OverlayEvent{Type: models.EventDonation, Sender: "a", Amount: 5_000, At: time.Now()})
	s.Apply(&models.OverlayEvent{Type: models.EventDonation, Sender: "b", Amount: 12_000, At: time.Now()})
	s.Apply(&models.OverlayEvent{Type: models.EventFollow, Sender: "c", At: time.Now()})

	snap := s.Snapshot()
	if snap.GoalAmount != 17_000 {
		t.Fatalf("expected goal 17000, got %d", snap.GoalAmount)
	}
	if snap.DonationCount != 2 {
		t.Fatalf("expected 2 donations, got %d", snap.DonationCount)
	}
	if len(snap.Ticker) != 3 {
		t.Fatalf("expected 3 ticker entries, got %d", len(snap.Ticker))
	}
}

func TestOverlayStateSettingsDirtyKeys(t *testing.T) {
	s := NewOverlayState("ch-1", 10)
	s.Apply(&models.OverlayEvent{Type: models.EventSettingsUpdated, Key: "overlay.theme", At: time.Now()})
	s.Apply(&models.OverlayEvent{Type: models.EventSettingsUpdated, Key: "overlay.theme", At: time.Now()})

	keys := s.DirtyKeys()
	if len(keys) != 1 || keys[0] != "overlay.theme" {
		t.Fatalf("expected deduped dirty key, got %v", keys)
	}
	if got := s.DirtyKeys(); got != nil {
		t.Fatalf("expected drained dirty set, got %v", got)
	}
	// settings events never enter the ticker
	if snap := s.Snapshot(); len(snap.Ticker) != 0 {
		t.Fatalf("settings event leaked into ticker: %+v", snap.Ticker)
	}
}

func TestOverlayStateSnapshotIsCopy(t *testing.T) {
	s := NewOverlayState("ch-1", 10)
	s.Apply(&models.OverlayEvent{Type: models.EventChat, Sender: "a", At: time.Now()})
	snap := s.Snapshot()
	snap.Ticker[0].Sender = "mutated"
	if s.Snapshot().Ticker[0].Sender != "a" {
		t.Fatal("snapshot shares backing array with state")
	}
}

func TestEventProcessorRefreshesSettings(t *testing.T) {
	src := newFakeSource()
	src.settings["overlay.theme"] = "dark"
	state := NewOverlayState("ch-1", 10)
	proc := NewEventProcessor(state, src, nil, nopMetrics{}, "ch-1")

	ev := &models.OverlayEvent{Type: models.EventSettingsUpdated, Key: "overlay.theme", At: time.Now()}
	if err := proc.Process(context.Background(), ev); err != nil {
		t.Fatalf("Process: %v", err)
	}
	snap := state.Snapshot()
	if snap.Settings["overlay.theme"] != "dark" {
		t.Fatalf("setting not refreshed: %v", snap.Settings)
	}
}

func TestEventProcessorKeepsDirtyKeyOnRefreshFailure(t *testing.T) {
	src := newFakeSource()
	src.failing["setting"] = true
	state := NewOverlayState("ch-1", 10)
	proc := NewEventProcessor(state, src, nil, nopMetrics{}, "ch-1")

	ev := &models.OverlayEvent{Type: models.EventSettingsUpdated, Key: "overlay.theme", At: time.Now()}
	if err := proc.Process(context.Background(), ev); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if snap := state.Snapshot(); len(snap.Settings) != 0 {
		t.Fatalf("failed refresh stored a value: %v", snap.Settings)
	}
	// the key stays flagged for the next attempt
	if keys := state.DirtyKeys(); len(keys) != 1 || keys[0] != "overlay.theme" {
		t.Fatalf("dirty key lost on refresh failure: %v", keys)
	}
}
