package usecase

import (
	"context"
	"sync"
	"time"

	"streampulse/internal/domain/models"
	domrepo "streampulse/internal/domain/repository"
	"streampulse/internal/services/derive"
	"streampulse/pkg/util"
)

// StreamerDetailUseCase assembles one streamer's detail screen. The profile
// is the primary entity: if it cannot be loaded the whole view fails, and a
// missing id surfaces as NotFoundError. The remaining sections degrade
// section-locally through Errors.
type StreamerDetailUseCase struct {
	src      domrepo.StatsSource
	metrics  domrepo.Metrics
	divisors derive.RadarDivisors
	timeout  time.Duration
}

func NewStreamerDetailUseCase(src domrepo.StatsSource, metrics domrepo.Metrics, divisors derive.RadarDivisors) *StreamerDetailUseCase {
	if divisors == nil {
		divisors = derive.DefaultRadarDivisors()
	}
	return &StreamerDetailUseCase{src: src, metrics: metrics, divisors: divisors, timeout: 10 * time.Second}
}

func (uc *StreamerDetailUseCase) Assemble(ctx context.Context, p models.StreamerDetailRequest) (*models.StreamerDetailView, error) {
	if p.Months <= 0 {
		p.Months = 3
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	record, err := uc.src.Streamer(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	res := &models.StreamerDetailView{
		Profile:       toProfile(record),
		Campaigns:     []models.CampaignAttribution{},
		DonationTrend: []models.TimeSeriesPoint{},
		Radar:         derive.RadarFromCategories(nil, uc.divisors),
		Errors:        map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.src.Campaigns(ctx, p.ID, "")
		ch <- item{"campaigns", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.src.Donations(ctx, p.ID, p.Months)
		ch <- item{"donationTrend", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.src.Categories(ctx, p.ID)
		ch <- item{"radar", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			uc.metrics.RecordSectionFailure("streamer_detail", it.name)
			continue
		}
		switch it.name {
		case "campaigns":
			res.Campaigns = campaignAttributions(it.val.([]models.CampaignRecord))
		case "donationTrend":
			res.DonationTrend = derive.DonationSeries(it.val.([]models.DonationRow))
		case "radar":
			res.Radar = derive.RadarFromCategories(it.val.([]models.CategoryRow), uc.divisors)
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	uc.metrics.RecordLatency("assemble_streamer_detail", time.Since(start).Seconds())
	return res, nil
}

func campaignAttributions(rows []models.CampaignRecord) []models.CampaignAttribution {
	out := make([]models.CampaignAttribution, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.CampaignAttribution{
			CampaignID:            r.ID,
			Name:                  r.Name,
			PeriodStart:           util.ParseDay(r.PeriodStart),
			PeriodEnd:             util.ParseDay(r.PeriodEnd),
			EstimatedConversions:  r.EstimatedConversions,
			ContributionPercent:   r.ContributionPercent,
			ConversionRatePercent: r.ConversionRatePercent,
			EstimatedValue:        r.EstimatedValue,
			Status:                models.CampaignStatus(r.Status),
		})
	}
	return out
}
