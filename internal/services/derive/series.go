package derive

import (
	"streampulse/internal/domain/models"
)

// RadarDivisors maps an axis name to the divisor used to bring it onto a
// comparable display scale. Divisors are presentation choices and come from
// configuration, not from the data.
type RadarDivisors map[string]float64

// DefaultRadarDivisors mirror the dashboard defaults.
func DefaultRadarDivisors() RadarDivisors {
	return RadarDivisors{
		"viewers":      500,
		"donations":    500_000,
		"adEfficiency": 1,
	}
}

func (d RadarDivisors) scale(axis string, v float64) float64 {
	div := d[axis]
	if div <= 0 {
		div = 1
	}
	return sanitize(v) / div
}

// RadarFromCategories averages category performance rows and projects the
// result onto the fixed radar axes. Empty input yields zeroed axes.
func RadarFromCategories(rows []models.CategoryRow, divisors RadarDivisors) []models.RadarAxis {
	var viewers, donations, adEff float64
	if n := float64(len(rows)); n > 0 {
		for _, r := range rows {
			viewers += sanitize(r.Viewers)
			donations += sanitize(r.Donations)
			adEff += sanitize(r.AdEfficiency)
		}
		viewers /= n
		donations /= n
		adEff /= n
	}
	return []models.RadarAxis{
		{Axis: "viewers", Value: divisors.scale("viewers", viewers)},
		{Axis: "donations", Value: divisors.scale("donations", donations)},
		{Axis: "adEfficiency", Value: divisors.scale("adEfficiency", adEff)},
	}
}

// RadarFromPlatform projects one platform aggregate onto the radar axes.
func RadarFromPlatform(row models.PlatformRow, divisors RadarDivisors) []models.RadarAxis {
	return []models.RadarAxis{
		{Axis: "viewers", Value: divisors.scale("viewers", row.AvgViewers)},
		{Axis: "donations", Value: divisors.scale("donations", float64(row.TotalDonations))},
		{Axis: "adEfficiency", Value: divisors.scale("adEfficiency", row.AdEfficiency)},
	}
}

// TrendSeries converts upstream trend rows into chart points, preserving
// chronological input order, one point per bucket.
func TrendSeries(rows []models.TrendRow) []models.TimeSeriesPoint {
	out := make([]models.TimeSeriesPoint, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if seen[r.Bucket] {
			continue
		}
		seen[r.Bucket] = true
		out = append(out, models.TimeSeriesPoint{
			Bucket: r.Bucket,
			Values: map[string]float64{
				"viewers":   sanitize(r.Viewers),
				"donations": sanitize(r.Donations),
				"adRevenue": sanitize(r.AdRevenue),
			},
		})
	}
	return out
}

// DonationSeries converts donation buckets into chart points.
func DonationSeries(rows []models.DonationRow) []models.TimeSeriesPoint {
	out := make([]models.TimeSeriesPoint, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if seen[r.Bucket] {
			continue
		}
		seen[r.Bucket] = true
		out = append(out, models.TimeSeriesPoint{
			Bucket: r.Bucket,
			Values: map[string]float64{
				"amount": float64(r.Amount),
				"count":  float64(r.Count),
			},
		})
	}
	return out
}

// PlatformShares computes each platform's percentage share of total
// donations. An all-zero input yields an empty slice, never NaN.
func PlatformShares(rows []models.PlatformRow) []models.ShareSlice {
	var total float64
	for _, r := range rows {
		total += float64(r.TotalDonations)
	}
	if total <= 0 {
		return []models.ShareSlice{}
	}
	out := make([]models.ShareSlice, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.ShareSlice{
			Name:    r.Platform,
			Percent: float64(r.TotalDonations) / total * 100,
		})
	}
	return out
}

// ChangeDirection classifies a percentage movement for a metric card.
func ChangeDirection(pct float64) models.ChangeDirection {
	pct = sanitize(pct)
	switch {
	case pct > 0:
		return models.ChangePositive
	case pct < 0:
		return models.ChangeNegative
	default:
		return models.ChangeNeutral
	}
}

// Card builds a metric card from a raw value and its change percentage.
func Card(label, value string, changePct float64) models.MetricCard {
	pct := sanitize(changePct)
	return models.MetricCard{
		Label:         label,
		Value:         value,
		ChangePercent: &pct,
		Direction:     ChangeDirection(pct),
	}
}
