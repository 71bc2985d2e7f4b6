package usecase

import (
	"context"
	"time"

	"streampulse/internal/domain/models"
	domrepo "streampulse/internal/domain/repository"
	"streampulse/internal/services/derive"
)

// PlatformCompareUseCase assembles the platform comparison screen from the
// per-platform aggregate rows.
type PlatformCompareUseCase struct {
	src      domrepo.StatsSource
	metrics  domrepo.Metrics
	divisors derive.RadarDivisors
	timeout  time.Duration
}

func NewPlatformCompareUseCase(src domrepo.StatsSource, metrics domrepo.Metrics, divisors derive.RadarDivisors) *PlatformCompareUseCase {
	if divisors == nil {
		divisors = derive.DefaultRadarDivisors()
	}
	return &PlatformCompareUseCase{src: src, metrics: metrics, divisors: divisors, timeout: 10 * time.Second}
}

func (uc *PlatformCompareUseCase) Assemble(ctx context.Context, p models.PlatformsRequest) (*models.PlatformCompareView, error) {
	if p.Days <= 0 {
		p.Days = 30
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	res := &models.PlatformCompareView{
		Cards:     []models.MetricCard{},
		Platforms: []models.PlatformStats{},
	}

	rows, err := uc.src.Platforms(ctx, p.Days)
	if err != nil {
		uc.metrics.RecordSectionFailure("platforms", "platforms")
		res.Errors = map[string]string{"platforms": err.Error()}
		return res, nil
	}

	shares := derive.PlatformShares(rows)
	shareByName := make(map[string]float64, len(shares))
	for _, s := range shares {
		shareByName[s.Name] = s.Percent
	}

	var totalStreamers, totalDonations int64
	topName := ""
	topDonations := int64(-1)
	for _, r := range rows {
		totalStreamers += r.StreamerCount
		totalDonations += r.TotalDonations
		if r.TotalDonations > topDonations {
			topDonations = r.TotalDonations
			topName = r.Platform
		}
		res.Platforms = append(res.Platforms, models.PlatformStats{
			Platform:       models.Platform(r.Platform),
			StreamerCount:  r.StreamerCount,
			AvgViewers:     r.AvgViewers,
			TotalDonations: r.TotalDonations,
			SharePercent:   shareByName[r.Platform],
			Radar:          derive.RadarFromPlatform(r, uc.divisors),
		})
	}

	if len(rows) > 0 {
		res.Cards = []models.MetricCard{
			{Label: "플랫폼 수", Value: derive.GroupedInt(int64(len(rows))), Direction: models.ChangeNeutral},
			{Label: "총 스트리머", Value: derive.GroupedInt(totalStreamers), Direction: models.ChangeNeutral},
			{Label: "총 후원금", Value: derive.Currency(totalDonations), Direction: models.ChangeNeutral},
			{Label: "1위 플랫폼", Value: topName, Direction: models.ChangeNeutral},
		}
	}
	uc.metrics.RecordLatency("assemble_platforms", time.Since(start).Seconds())
	return res, nil
}
