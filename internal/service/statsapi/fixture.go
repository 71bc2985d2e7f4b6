package statsapi

import (
	"context"
	"fmt"
	"math"
	"time"

	"streampulse/internal/domain/models"
	drepo "streampulse/internal/domain/repository"
)

// Fixture is a deterministic in-memory StatsSource used for local
// development and tests. Every call returns the same data for the same
// arguments, derived from a small synthetic roster.
type Fixture struct {
	now       func() time.Time
	streamers []models.StreamerRecord
	campaigns []models.CampaignRecord
}

var fixturePlatforms = []string{"twitch", "youtube", "chzzk", "soop"}

var fixtureNames = []string{
	"한동숙", "우왁굳", "풍월량", "괴물쥐", "김도",
	"서새봄", "따효니", "룩삼", "침착맨", "주르르",
	"랄로", "악어", "쫀득", "양띵", "철면수심",
	"단군", "로복", "탬탬버린", "소니쇼", "남봉",
	"도현", "강지", "이춘향", "머독", "플러리",
}

// NewFixture builds the synthetic dataset. The clock is injectable so tests
// can pin relative timestamps.
func NewFixture(now func() time.Time) *Fixture {
	if now == nil {
		now = time.Now
	}
	f := &Fixture{now: now}
	for i, name := range fixtureNames {
		donations := int64(150_000_000 - i*5_500_000)
		f.streamers = append(f.streamers, models.StreamerRecord{
			ID:                        fmt.Sprintf("st-%03d", i+1),
			Name:                      name,
			Platform:                  fixturePlatforms[i%len(fixturePlatforms)],
			FollowerCount:             int64(900_000 - i*31_000),
			AvgViewers:                int64(24_000 - i*850),
			InfluenceScore:            fixtureInfluence(donations),
			AdEfficiencyPercent:       roundTo(92.5-float64(i)*2.1, 1),
			DonationConversionPercent: roundTo(8.4-float64(i)*0.25, 2),
			TotalRevenue:              donations + int64(40_000_000-i*1_200_000),
			TotalDonations:            donations,
		})
	}
	statuses := []string{"active", "completed", "scheduled"}
	for i := 0; i < 12; i++ {
		owner := f.streamers[i%6]
		start := time.Date(2026, time.Month(1+i%6), 1, 0, 0, 0, 0, time.UTC)
		f.campaigns = append(f.campaigns, models.CampaignRecord{
			ID:                    fmt.Sprintf("cmp-%03d", i+1),
			Name:                  fmt.Sprintf("%s 브랜드 캠페인 %d", owner.Name, i+1),
			StreamerID:            owner.ID,
			PeriodStart:           start.Format("2006-01-02"),
			PeriodEnd:             start.AddDate(0, 1, -1).Format("2006-01-02"),
			EstimatedConversions:  int64(12_000 - i*700),
			ContributionPercent:   roundTo(34.0-float64(i)*1.8, 1),
			ConversionRatePercent: roundTo(4.2-float64(i)*0.2, 2),
			EstimatedValue:        int64(88_000_000 - i*5_000_000),
			Status:                statuses[i%len(statuses)],
		})
	}
	return f
}

// fixtureInfluence makes up a plausible score from donation volume since the
// synthetic roster has no engagement history to score from.
func fixtureInfluence(totalDonations int64) float64 {
	score := math.Round(float64(totalDonations)/10_000_000) + 50
	return math.Min(100, score)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func (f *Fixture) Summary(_ context.Context, days int) (models.SummaryStats, error) {
	d := float64(days)
	return models.SummaryStats{
		TotalViewers:    int64(182_000 * d),
		TotalDonations:  int64(64_000_000 * d),
		ActiveStreamers: int64(len(f.streamers)),
		AdRevenue:       int64(21_500_000 * d),
		ViewersChange:   12.4,
		DonationsChange: -3.1,
		StreamersChange: 0,
		AdRevenueChange: 8.9,
	}, nil
}

func (f *Fixture) Trend(_ context.Context, days int) ([]models.TrendRow, error) {
	rows := make([]models.TrendRow, 0, days)
	today := f.now().UTC().Truncate(24 * time.Hour)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		wave := float64((i*7)%13) / 13
		rows = append(rows, models.TrendRow{
			Bucket:    day.Format("2006-01-02"),
			Viewers:   160_000 + 40_000*wave,
			Donations: 58_000_000 + 14_000_000*wave,
			AdRevenue: 19_000_000 + 6_000_000*wave,
		})
	}
	return rows, nil
}

func (f *Fixture) Streamers(_ context.Context) ([]models.StreamerRecord, error) {
	out := make([]models.StreamerRecord, len(f.streamers))
	copy(out, f.streamers)
	return out, nil
}

func (f *Fixture) Streamer(_ context.Context, id string) (models.StreamerRecord, error) {
	for _, s := range f.streamers {
		if s.ID == id {
			return s, nil
		}
	}
	return models.StreamerRecord{}, &drepo.NotFoundError{ID: id}
}

func (f *Fixture) Events(_ context.Context, limit int) ([]models.EventRecord, error) {
	types := []string{"donation", "follow", "chat", "donation"}
	now := f.now()
	rows := make([]models.EventRecord, 0, limit)
	for i := 0; i < limit; i++ {
		s := f.streamers[i%len(f.streamers)]
		ev := models.EventRecord{
			Type:      types[i%len(types)],
			Sender:    fmt.Sprintf("viewer_%02d", i+1),
			Message:   fmt.Sprintf("%s 방송 응원합니다", s.Name),
			Timestamp: now.Add(-time.Duration(3+i*11) * time.Minute),
		}
		if ev.Type == "donation" {
			ev.Amount = int64(1_000 * (1 + i%10))
		}
		rows = append(rows, ev)
	}
	return rows, nil
}

func (f *Fixture) Donations(_ context.Context, streamerID string, months int) ([]models.DonationRow, error) {
	if _, err := f.Streamer(context.Background(), streamerID); err != nil {
		return nil, err
	}
	rows := make([]models.DonationRow, 0, months)
	month := time.Date(f.now().Year(), f.now().Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := months - 1; i >= 0; i-- {
		m := month.AddDate(0, -i, 0)
		rows = append(rows, models.DonationRow{
			Bucket: m.Format("2006-01"),
			Amount: int64(38_000_000 + 4_000_000*((i*5)%7)),
			Count:  int64(1_800 + 120*((i*3)%5)),
		})
	}
	return rows, nil
}

func (f *Fixture) Categories(_ context.Context, streamerID string) ([]models.CategoryRow, error) {
	if _, err := f.Streamer(context.Background(), streamerID); err != nil {
		return nil, err
	}
	return []models.CategoryRow{
		{Name: "Just Chatting", Viewers: 21_000, Donations: 42_000_000, AdEfficiency: 0.86},
		{Name: "리그 오브 레전드", Viewers: 17_500, Donations: 31_000_000, AdEfficiency: 0.74},
		{Name: "마인크래프트", Viewers: 9_800, Donations: 12_500_000, AdEfficiency: 0.61},
	}, nil
}

func (f *Fixture) Campaigns(_ context.Context, streamerID, status string) ([]models.CampaignRecord, error) {
	out := make([]models.CampaignRecord, 0, len(f.campaigns))
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

func (f *Fixture) Platforms(_ context.Context, _ int) ([]models.PlatformRow, error) {
	byPlatform := map[string]*models.PlatformRow{}
	order := []string{}
	for _, s := range f.streamers {
		row, ok := byPlatform[s.Platform]
		if !ok {
			row = &models.PlatformRow{Platform: s.Platform}
			byPlatform[s.Platform] = row
			order = append(order, s.Platform)
		}
		row.StreamerCount++
		row.AvgViewers += float64(s.AvgViewers)
		row.TotalDonations += s.TotalDonations
		row.AdEfficiency += s.AdEfficiencyPercent
	}
	out := make([]models.PlatformRow, 0, len(order))
	for _, p := range order {
		row := byPlatform[p]
		n := float64(row.StreamerCount)
		row.AvgViewers = roundTo(row.AvgViewers/n, 0)
		row.AdEfficiency = roundTo(row.AdEfficiency/n, 1)
		out = append(out, *row)
	}
	return out, nil
}

func (f *Fixture) Connections(_ context.Context) ([]models.ConnectionStatus, error) {
	now := f.now()
	out := make([]models.ConnectionStatus, 0, len(fixturePlatforms))
	for i, p := range fixturePlatforms {
		out = append(out, models.ConnectionStatus{
			Platform:  p,
			Connected: i != 3,
			CheckedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	return out, nil
}

func (f *Fixture) Setting(_ context.Context, key string) (string, error) {
	settings := map[string]string{
		"overlay.theme":      "dark",
		"overlay.goalAmount": "1000000",
		"overlay.tickerSize": "20",
	}
	return settings[key], nil
}

var _ drepo.StatsSource = (*Fixture)(nil)
