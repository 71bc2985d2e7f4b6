package usecase

import (
	"context"
	"time"

	"streampulse/internal/domain/models"
	domrepo "streampulse/internal/domain/repository"
	"streampulse/internal/services/derive"
)

// CampaignReportUseCase assembles the campaign performance screen. The
// headline cards are computed from the same rows the table shows, so both
// sections always agree.
type CampaignReportUseCase struct {
	src     domrepo.StatsSource
	metrics domrepo.Metrics
	timeout time.Duration
}

func NewCampaignReportUseCase(src domrepo.StatsSource, metrics domrepo.Metrics) *CampaignReportUseCase {
	return &CampaignReportUseCase{src: src, metrics: metrics, timeout: 10 * time.Second}
}

func (uc *CampaignReportUseCase) Assemble(ctx context.Context, p models.CampaignsRequest) (*models.CampaignReportView, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	res := &models.CampaignReportView{
		Cards:     []models.MetricCard{},
		Campaigns: []models.CampaignAttribution{},
	}

	rows, err := uc.src.Campaigns(ctx, "", p.Status)
	if err != nil {
		uc.metrics.RecordSectionFailure("campaigns", "campaigns")
		res.Errors = map[string]string{"campaigns": err.Error()}
		return res, nil
	}

	res.Campaigns = campaignAttributions(rows)
	res.Cards = campaignCards(rows)
	uc.metrics.RecordLatency("assemble_campaigns", time.Since(start).Seconds())
	return res, nil
}

func campaignCards(rows []models.CampaignRecord) []models.MetricCard {
	var totalValue, totalConversions int64
	var rateSum float64
	var active int64
	for _, r := range rows {
		totalValue += r.EstimatedValue
		totalConversions += r.EstimatedConversions
		rateSum += r.ConversionRatePercent
		if r.Status == string(models.CampaignActive) {
			active++
		}
	}
	avgRate := 0.0
	if len(rows) > 0 {
		avgRate = rateSum / float64(len(rows))
	}
	return []models.MetricCard{
		{Label: "총 캠페인 가치", Value: derive.Currency(totalValue), Direction: models.ChangeNeutral},
		{Label: "예상 전환수", Value: derive.GroupedInt(totalConversions), Direction: models.ChangeNeutral},
		{Label: "평균 전환율", Value: derive.Percent(avgRate), Direction: models.ChangeNeutral},
		{Label: "진행중 캠페인", Value: derive.GroupedInt(active), Direction: models.ChangeNeutral},
	}
}
