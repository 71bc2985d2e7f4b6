package usecase

import (
	"context"
	"sync"
	"time"

	"streampulse/internal/domain/models"
	domrepo "streampulse/internal/domain/repository"
	"streampulse/internal/services/derive"
)

const recentEventsLimit = 10

// OverviewUseCase assembles the overview screen from independent upstream
// fetches. A failed section lands in Errors and renders empty; the other
// sections are unaffected.
type OverviewUseCase struct {
	src     domrepo.StatsSource
	metrics domrepo.Metrics
	now     func() time.Time
	timeout time.Duration
}

func NewOverviewUseCase(src domrepo.StatsSource, metrics domrepo.Metrics) *OverviewUseCase {
	return &OverviewUseCase{src: src, metrics: metrics, now: time.Now, timeout: 10 * time.Second}
}

func (uc *OverviewUseCase) Assemble(ctx context.Context, p models.OverviewRequest) (*models.OverviewView, error) {
	if p.Days <= 0 {
		p.Days = 7
	}

	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := uc.now()
	res := &models.OverviewView{
		GeneratedAt:   start,
		Cards:         []models.MetricCard{},
		Trend:         []models.TimeSeriesPoint{},
		TopStreamers:  []models.RankedEntity{},
		RecentEvents:  []models.EventRow{},
		PlatformShare: []models.ShareSlice{},
		Errors:        map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 5)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.src.Summary(ctx, p.Days)
		ch <- item{"cards", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.src.Trend(ctx, p.Days)
		ch <- item{"trend", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.src.Streamers(ctx)
		ch <- item{"topStreamers", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.src.Events(ctx, recentEventsLimit)
		ch <- item{"recentEvents", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.src.Platforms(ctx, p.Days)
		ch <- item{"platformShare", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			uc.metrics.RecordSectionFailure("overview", it.name)
			continue
		}
		switch it.name {
		case "cards":
			res.Cards = summaryCards(it.val.(models.SummaryStats))
		case "trend":
			res.Trend = derive.TrendSeries(it.val.([]models.TrendRow))
		case "topStreamers":
			rows := it.val.([]models.StreamerRecord)
			top := derive.RankedEntities(rows, "total_donations")
			if len(top) > 5 {
				top = top[:5]
			}
			res.TopStreamers = top
		case "recentEvents":
			res.RecentEvents = eventRows(it.val.([]models.EventRecord), start)
		case "platformShare":
			res.PlatformShare = derive.PlatformShares(it.val.([]models.PlatformRow))
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	uc.metrics.RecordLatency("assemble_overview", time.Since(start).Seconds())
	return res, nil
}

func summaryCards(s models.SummaryStats) []models.MetricCard {
	return []models.MetricCard{
		derive.Card("총 시청자", derive.CompactNumber(float64(s.TotalViewers)), s.ViewersChange),
		derive.Card("총 후원금", derive.Currency(s.TotalDonations), s.DonationsChange),
		derive.Card("활동 스트리머", derive.GroupedInt(s.ActiveStreamers), s.StreamersChange),
		derive.Card("광고 수익", derive.Currency(s.AdRevenue), s.AdRevenueChange),
	}
}

func eventRows(records []models.EventRecord, now time.Time) []models.EventRow {
	out := make([]models.EventRow, 0, len(records))
	for _, r := range records {
		out = append(out, models.EventRow{
			Type:   r.Type,
			Sender: r.Sender,
			Detail: r.Message,
			Amount: r.Amount,
			When:   derive.RelativeTime(now, r.Timestamp),
		})
	}
	return out
}
