package derive

import (
	"math"
	"testing"

	"streampulse/internal/domain/models"
)

func TestRadarFromCategoriesScaling(t *testing.T) {
	rows := []models.CategoryRow{
		{Name: "lol", Viewers: 1000, Donations: 1_000_000, AdEfficiency: 80},
		{Name: "valorant", Viewers: 500, Donations: 500_000, AdEfficiency: 60},
	}
	axes := RadarFromCategories(rows, DefaultRadarDivisors())
	if len(axes) != 3 {
		t.Fatalf("expected 3 axes, got %d", len(axes))
	}
	// averages: viewers 750/500=1.5, donations 750000/500000=1.5, adEff 70/1=70
	if axes[0].Value != 1.5 {
		t.Fatalf("viewers axis = %v, want 1.5", axes[0].Value)
	}
	if axes[1].Value != 1.5 {
		t.Fatalf("donations axis = %v, want 1.5", axes[1].Value)
	}
	if axes[2].Value != 70 {
		t.Fatalf("adEfficiency axis = %v, want 70", axes[2].Value)
	}
}

func TestRadarFromCategoriesEmpty(t *testing.T) {
	axes := RadarFromCategories(nil, DefaultRadarDivisors())
	for _, a := range axes {
		if a.Value != 0 {
			t.Fatalf("empty input must yield zero axes, got %v", a.Value)
		}
	}
}

func TestRadarCustomDivisors(t *testing.T) {
	rows := []models.CategoryRow{{Viewers: 100, Donations: 100, AdEfficiency: 100}}
	axes := RadarFromCategories(rows, RadarDivisors{"viewers": 10, "donations": 10, "adEfficiency": 10})
	for _, a := range axes {
		if a.Value != 10 {
			t.Fatalf("axis %s = %v, want 10", a.Axis, a.Value)
		}
	}
}

func TestTrendSeriesOrderAndDedup(t *testing.T) {
	rows := []models.TrendRow{
		{Bucket: "01-01", Viewers: 1},
		{Bucket: "01-02", Viewers: 2},
		{Bucket: "01-02", Viewers: 99}, // duplicate bucket dropped
		{Bucket: "01-03", Viewers: math.NaN()},
	}
	pts := TrendSeries(rows)
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	if pts[0].Bucket != "01-01" || pts[2].Bucket != "01-03" {
		t.Fatalf("chronological order not preserved: %v", pts)
	}
	if pts[1].Values["viewers"] != 2 {
		t.Fatalf("duplicate bucket should keep first value, got %v", pts[1].Values["viewers"])
	}
	if pts[2].Values["viewers"] != 0 {
		t.Fatalf("NaN must default to 0, got %v", pts[2].Values["viewers"])
	}
}

func TestPlatformShares(t *testing.T) {
	rows := []models.PlatformRow{
		{Platform: "soop", TotalDonations: 750},
		{Platform: "chzzk", TotalDonations: 250},
	}
	shares := PlatformShares(rows)
	if shares[0].Percent != 75 || shares[1].Percent != 25 {
		t.Fatalf("unexpected shares %+v", shares)
	}
	if got := PlatformShares(nil); len(got) != 0 {
		t.Fatalf("empty input must yield empty shares")
	}
	if got := PlatformShares([]models.PlatformRow{{Platform: "soop"}}); len(got) != 0 {
		t.Fatalf("zero totals must not divide by zero")
	}
}

func TestChangeDirection(t *testing.T) {
	if ChangeDirection(3.2) != models.ChangePositive {
		t.Fatalf("positive expected")
	}
	if ChangeDirection(-0.1) != models.ChangeNegative {
		t.Fatalf("negative expected")
	}
	if ChangeDirection(0) != models.ChangeNeutral {
		t.Fatalf("neutral expected")
	}
	if ChangeDirection(math.NaN()) != models.ChangeNeutral {
		t.Fatalf("NaN must classify as neutral")
	}
}
