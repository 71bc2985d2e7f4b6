package usecase

import (
	"context"
	"fmt"
	"time"

	"streampulse/internal/domain/models"
	drepo "streampulse/internal/domain/repository"
)

// fakeSource wraps the fixture-style dataset with per-endpoint failure
// switches so tests can exercise section degradation.
type fakeSource struct {
	streamers []models.StreamerRecord
	campaigns []models.CampaignRecord
	failing   map[string]bool
	settings  map[string]string
	calls     map[string]int
}

func newFakeSource() *fakeSource {
	f := &fakeSource{
		failing:  map[string]bool{},
		settings: map[string]string{},
		calls:    map[string]int{},
	}
	platforms := []string{"twitch", "youtube", "chzzk", "soop"}
	for i := 0; i < 25; i++ {
		f.streamers = append(f.streamers, models.StreamerRecord{
			ID:             fmt.Sprintf("st-%03d", i+1),
			Name:           fmt.Sprintf("스트리머%02d", i+1),
			Platform:       platforms[i%len(platforms)],
			FollowerCount:  int64(500_000 - i*10_000),
			AvgViewers:     int64(20_000 - i*500),
			InfluenceScore: float64(95 - i*2),
			TotalDonations: int64(100_000_000 - i*3_000_000),
			TotalRevenue:   int64(120_000_000 - i*3_000_000),
		})
	}
	for i := 0; i < 6; i++ {
		f.campaigns = append(f.campaigns, models.CampaignRecord{
			ID:                    fmt.Sprintf("cmp-%d", i+1),
			Name:                  fmt.Sprintf("캠페인 %d", i+1),
			StreamerID:            f.streamers[i%3].ID,
			PeriodStart:           "2026-07-01",
			PeriodEnd:             "2026-07-31",
			EstimatedConversions:  1000,
			ConversionRatePercent: 4.0,
			EstimatedValue:        10_000_000,
			Status:                []string{"active", "completed", "scheduled"}[i%3],
		})
	}
	return f
}

func (f *fakeSource) check(name string) error {
	f.calls[name]++
	if f.failing[name] {
		return fmt.Errorf("%s unavailable", name)
	}
	return nil
}

func (f *fakeSource) Summary(_ context.Context, _ int) (models.SummaryStats, error) {
	if err := f.check("summary"); err != nil {
		return models.SummaryStats{}, err
	}
	return models.SummaryStats{
		TotalViewers:    1_340_000,
		TotalDonations:  450_000_000,
		ActiveStreamers: 25,
		AdRevenue:       120_000_000,
		ViewersChange:   12.5,
		DonationsChange: -2.0,
	}, nil
}

func (f *fakeSource) Trend(_ context.Context, days int) ([]models.TrendRow, error) {
	if err := f.check("trend"); err != nil {
		return nil, err
	}
	rows := make([]models.TrendRow, 0, days)
	for i := 0; i < days; i++ {
		rows = append(rows, models.TrendRow{
			Bucket:  fmt.Sprintf("2026-08-%02d", i+1),
			Viewers: float64(100_000 + i),
		})
	}
	return rows, nil
}

func (f *fakeSource) Streamers(_ context.Context) ([]models.StreamerRecord, error) {
	if err := f.check("streamers"); err != nil {
		return nil, err
	}
	out := make([]models.StreamerRecord, len(f.streamers))
	copy(out, f.streamers)
	return out, nil
}

func (f *fakeSource) Streamer(_ context.Context, id string) (models.StreamerRecord, error) {
	if err := f.check("streamer"); err != nil {
		return models.StreamerRecord{}, err
	}
	for _, s := range f.streamers {
		if s.ID == id {
			return s, nil
		}
	}
	return models.StreamerRecord{}, &drepo.NotFoundError{ID: id}
}

func (f *fakeSource) Events(_ context.Context, limit int) ([]models.EventRecord, error) {
	if err := f.check("events"); err != nil {
		return nil, err
	}
	rows := make([]models.EventRecord, 0, limit)
	for i := 0; i < limit; i++ {
		rows = append(rows, models.EventRecord{
			Type:      "donation",
			Sender:    fmt.Sprintf("viewer%d", i),
			Amount:    5_000,
			Timestamp: time.Now().Add(-16*time.Minute + time.Second),
		})
	}
	return rows, nil
}

func (f *fakeSource) Donations(_ context.Context, _ string, months int) ([]models.DonationRow, error) {
	if err := f.check("donations"); err != nil {
		return nil, err
	}
	rows := make([]models.DonationRow, 0, months)
	for i := 0; i < months; i++ {
		rows = append(rows, models.DonationRow{Bucket: fmt.Sprintf("2026-%02d", i+1), Amount: 30_000_000, Count: 1500})
	}
	return rows, nil
}

func (f *fakeSource) Categories(_ context.Context, _ string) ([]models.CategoryRow, error) {
	if err := f.check("categories"); err != nil {
		return nil, err
	}
	return []models.CategoryRow{
		{Name: "Just Chatting", Viewers: 1000, Donations: 1_000_000, AdEfficiency: 0.8},
		{Name: "RPG", Viewers: 500, Donations: 500_000, AdEfficiency: 0.4},
	}, nil
}

func (f *fakeSource) Campaigns(_ context.Context, streamerID, status string) ([]models.CampaignRecord, error) {
	if err := f.check("campaigns"); err != nil {
		return nil, err
	}
	out := []models.CampaignRecord{}
	for _, c := range f.campaigns {
		if streamerID != "" && c.StreamerID != streamerID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeSource) Platforms(_ context.Context, _ int) ([]models.PlatformRow, error) {
	if err := f.check("platforms"); err != nil {
		return nil, err
	}
	return []models.PlatformRow{
		{Platform: "twitch", StreamerCount: 7, AvgViewers: 15_000, TotalDonations: 200_000_000, AdEfficiency: 80},
		{Platform: "youtube", StreamerCount: 6, AvgViewers: 12_000, TotalDonations: 150_000_000, AdEfficiency: 70},
		{Platform: "chzzk", StreamerCount: 6, AvgViewers: 9_000, TotalDonations: 100_000_000, AdEfficiency: 60},
		{Platform: "soop", StreamerCount: 6, AvgViewers: 6_000, TotalDonations: 50_000_000, AdEfficiency: 50},
	}, nil
}

func (f *fakeSource) Connections(_ context.Context) ([]models.ConnectionStatus, error) {
	if err := f.check("connections"); err != nil {
		return nil, err
	}
	return []models.ConnectionStatus{{Platform: "twitch", Connected: true, CheckedAt: time.Now()}}, nil
}

func (f *fakeSource) Setting(_ context.Context, key string) (string, error) {
	if err := f.check("setting"); err != nil {
		return "", err
	}
	return f.settings[key], nil
}

type nopMetrics struct{}

func (nopMetrics) RecordEvent(string, string)          {}
func (nopMetrics) RecordError(string)                  {}
func (nopMetrics) RecordSectionFailure(string, string) {}
func (nopMetrics) RecordLatency(string, float64)       {}
