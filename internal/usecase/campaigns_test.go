package usecase

import (
	"context"
	"testing"

	"streampulse/internal/domain/models"
)

func TestCampaignReportAssembles(t *testing.T) {
	src := newFakeSource()
	uc := NewCampaignReportUseCase(src, nopMetrics{})

	view, err := uc.Assemble(context.Background(), models.CampaignsRequest{})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(view.Campaigns) != 6 {
		t.Fatalf("expected 6 campaigns, got %d", len(view.Campaigns))
	}
	if len(view.Cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(view.Cards))
	}
	if view.Cards[0].Value != "₩60,000,000" {
		t.Fatalf("unexpected total value card: %q", view.Cards[0].Value)
	}
	if view.Cards[2].Value != "4.0%" {
		t.Fatalf("unexpected avg rate card: %q", view.Cards[2].Value)
	}
}

func TestCampaignReportStatusFilter(t *testing.T) {
	src := newFakeSource()
	uc := NewCampaignReportUseCase(src, nopMetrics{})

	view, err := uc.Assemble(context.Background(), models.CampaignsRequest{Status: "active"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(view.Campaigns) != 2 {
		t.Fatalf("expected 2 active campaigns, got %d", len(view.Campaigns))
	}
	for _, c := range view.Campaigns {
		if c.Status != models.CampaignActive {
			t.Fatalf("non-active campaign in filtered view: %+v", c)
		}
	}
}

func TestCampaignReportUpstreamFailure(t *testing.T) {
	src := newFakeSource()
	src.failing["campaigns"] = true
	uc := NewCampaignReportUseCase(src, nopMetrics{})

	view, err := uc.Assemble(context.Background(), models.CampaignsRequest{})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if _, ok := view.Errors["campaigns"]; !ok {
		t.Fatalf("expected campaigns error, got %v", view.Errors)
	}
	if len(view.Campaigns) != 0 || len(view.Cards) != 0 {
		t.Fatal("failed view should render empty")
	}
}

func TestPlatformCompareAssembles(t *testing.T) {
	src := newFakeSource()
	uc := NewPlatformCompareUseCase(src, nopMetrics{}, nil)

	view, err := uc.Assemble(context.Background(), models.PlatformsRequest{Days: 30})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(view.Platforms) != 4 {
		t.Fatalf("expected 4 platforms, got %d", len(view.Platforms))
	}
	if view.Platforms[0].SharePercent != 40 {
		t.Fatalf("expected twitch share 40, got %v", view.Platforms[0].SharePercent)
	}
	for _, p := range view.Platforms {
		if len(p.Radar) != 3 {
			t.Fatalf("expected 3 radar axes for %s", p.Platform)
		}
	}
	if len(view.Cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(view.Cards))
	}
	if view.Cards[3].Value != "twitch" {
		t.Fatalf("expected twitch as top platform, got %q", view.Cards[3].Value)
	}
}
