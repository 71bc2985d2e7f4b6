package usecase

import (
	"context"
	"testing"

	"streampulse/internal/domain/models"
)

func TestOverviewAssemblesAllSections(t *testing.T) {
	src := newFakeSource()
	uc := NewOverviewUseCase(src, nopMetrics{})

	view, err := uc.Assemble(context.Background(), models.OverviewRequest{Days: 7})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if view.Errors != nil {
		t.Fatalf("unexpected section errors: %v", view.Errors)
	}
	if len(view.Cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(view.Cards))
	}
	if view.Cards[0].Value != "1.3M" {
		t.Fatalf("expected compact viewers card, got %q", view.Cards[0].Value)
	}
	if view.Cards[1].Value != "₩450,000,000" {
		t.Fatalf("expected currency donations card, got %q", view.Cards[1].Value)
	}
	if len(view.Trend) != 7 {
		t.Fatalf("expected 7 trend points, got %d", len(view.Trend))
	}
	if len(view.TopStreamers) != 5 {
		t.Fatalf("expected top 5 streamers, got %d", len(view.TopStreamers))
	}
	if view.TopStreamers[0].Rank != 1 || view.TopStreamers[0].Name != "스트리머01" {
		t.Fatalf("unexpected top streamer: %+v", view.TopStreamers[0])
	}
	if len(view.RecentEvents) != recentEventsLimit {
		t.Fatalf("expected %d events, got %d", recentEventsLimit, len(view.RecentEvents))
	}
	if view.RecentEvents[0].When != "15분 전" {
		t.Fatalf("expected relative time label, got %q", view.RecentEvents[0].When)
	}
	if len(view.PlatformShare) != 4 {
		t.Fatalf("expected 4 share slices, got %d", len(view.PlatformShare))
	}
	if view.PlatformShare[0].Percent != 40 {
		t.Fatalf("expected twitch share 40%%, got %v", view.PlatformShare[0].Percent)
	}
}

func TestOverviewSectionFailureIsLocal(t *testing.T) {
	src := newFakeSource()
	src.failing["trend"] = true
	src.failing["events"] = true
	uc := NewOverviewUseCase(src, nopMetrics{})

	view, err := uc.Assemble(context.Background(), models.OverviewRequest{Days: 7})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(view.Errors) != 2 {
		t.Fatalf("expected 2 section errors, got %v", view.Errors)
	}
	if _, ok := view.Errors["trend"]; !ok {
		t.Fatalf("expected trend error, got %v", view.Errors)
	}
	if _, ok := view.Errors["recentEvents"]; !ok {
		t.Fatalf("expected recentEvents error, got %v", view.Errors)
	}
	// failed sections render empty, not half-stale
	if len(view.Trend) != 0 {
		t.Fatalf("expected empty trend, got %d points", len(view.Trend))
	}
	if len(view.RecentEvents) != 0 {
		t.Fatalf("expected empty events, got %d", len(view.RecentEvents))
	}
	// healthy sections are unaffected
	if len(view.Cards) != 4 || len(view.TopStreamers) != 5 {
		t.Fatal("healthy sections degraded")
	}
}

func TestOverviewIsIdempotent(t *testing.T) {
	src := newFakeSource()
	uc := NewOverviewUseCase(src, nopMetrics{})

	a, err := uc.Assemble(context.Background(), models.OverviewRequest{Days: 7})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	b, err := uc.Assemble(context.Background(), models.OverviewRequest{Days: 7})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(a.Cards) != len(b.Cards) || a.Cards[0].Value != b.Cards[0].Value {
		t.Fatal("same input produced different cards")
	}
	if len(a.Trend) != len(b.Trend) || len(a.TopStreamers) != len(b.TopStreamers) {
		t.Fatal("same input produced different sections")
	}
}
