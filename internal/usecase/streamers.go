package usecase

import (
	"context"
	"strings"
	"time"

	"streampulse/internal/domain/models"
	domrepo "streampulse/internal/domain/repository"
	"streampulse/internal/services/derive"
)

// StreamerListUseCase assembles the streamer list screen. Search, sort, and
// paging happen here over the full upstream row set so results are stable
// regardless of upstream ordering.
type StreamerListUseCase struct {
	src     domrepo.StatsSource
	metrics domrepo.Metrics
	timeout time.Duration
}

func NewStreamerListUseCase(src domrepo.StatsSource, metrics domrepo.Metrics) *StreamerListUseCase {
	return &StreamerListUseCase{src: src, metrics: metrics, timeout: 10 * time.Second}
}

func (uc *StreamerListUseCase) Assemble(ctx context.Context, p models.StreamersRequest) (*models.StreamerListView, error) {
	if p.SortBy == "" {
		p.SortBy = "total_donations"
	}
	if p.SortOrder == "" {
		p.SortOrder = "desc"
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	rows, err := uc.src.Streamers(ctx)
	if err != nil {
		uc.metrics.RecordSectionFailure("streamers", "list")
		return nil, err
	}

	if p.Search != "" {
		needle := strings.ToLower(p.Search)
		filtered := rows[:0:0]
		for _, r := range rows {
			if strings.Contains(strings.ToLower(r.Name), needle) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	ranked := derive.RankStreamers(rows, p.SortBy, p.SortOrder)
	window, pagination := derive.Paginate(ranked, p.Page, p.Limit)

	view := &models.StreamerListView{
		Streamers:  make([]models.StreamerRow, 0, len(window)),
		Pagination: pagination,
		SortBy:     p.SortBy,
		SortOrder:  p.SortOrder,
		Search:     p.Search,
	}
	offset := (pagination.CurrentPage - 1) * p.Limit
	for i, r := range window {
		view.Streamers = append(view.Streamers, models.StreamerRow{
			Rank:            offset + i + 1,
			StreamerProfile: toProfile(r),
			TotalDonations:  r.TotalDonations,
		})
	}
	uc.metrics.RecordLatency("assemble_streamers", time.Since(start).Seconds())
	return view, nil
}

// toProfile normalizes an upstream row into the display profile, including
// the derived influence grade.
func toProfile(r models.StreamerRecord) models.StreamerProfile {
	return models.StreamerProfile{
		ID:                        r.ID,
		Name:                      r.Name,
		Platform:                  models.Platform(r.Platform),
		FollowerCount:             r.FollowerCount,
		AvgViewers:                r.AvgViewers,
		InfluenceScore:            r.InfluenceScore,
		InfluenceGrade:            derive.InfluenceGrade(r.InfluenceScore),
		AdEfficiencyPercent:       r.AdEfficiencyPercent,
		DonationConversionPercent: r.DonationConversionPercent,
		TotalRevenue:              r.TotalRevenue,
	}
}
