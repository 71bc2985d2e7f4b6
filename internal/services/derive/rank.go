package derive

import (
	"sort"

	"streampulse/internal/domain/models"
)

// RankStreamers stable-sorts rows by key and assigns 1-based ranks.
// Ties keep the original relative order. The input slice is not modified.
func RankStreamers(rows []models.StreamerRecord, key, order string) []models.StreamerRecord {
	out := make([]models.StreamerRecord, len(rows))
	copy(out, rows)
	desc := order != "asc"
	sort.SliceStable(out, func(i, j int) bool {
		a, b := sortValue(out[i], key), sortValue(out[j], key)
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

func sortValue(r models.StreamerRecord, key string) float64 {
	switch key {
	case "avg_viewers":
		return float64(r.AvgViewers)
	case "follower_count":
		return float64(r.FollowerCount)
	case "influence_score":
		return r.InfluenceScore
	default: // total_donations
		return float64(r.TotalDonations)
	}
}

// RankedEntities projects streamer rows onto RankedEntity rows, ranked
// descending by metric. Ties keep input order.
func RankedEntities(rows []models.StreamerRecord, metric string) []models.RankedEntity {
	ranked := RankStreamers(rows, metric, "desc")
	out := make([]models.RankedEntity, 0, len(ranked))
	for i, r := range ranked {
		out = append(out, models.RankedEntity{
			Rank:     i + 1,
			Name:     r.Name,
			Platform: models.Platform(r.Platform),
			Metrics: map[string]float64{
				"avgViewers":     float64(r.AvgViewers),
				"totalDonations": float64(r.TotalDonations),
				"influenceScore": sanitize(r.InfluenceScore),
			},
		})
	}
	return out
}

// Paginate slices rows for a 1-based page of the given size and returns the
// window plus paging metadata. Page is clamped to [1, totalPages].
func Paginate(rows []models.StreamerRecord, page, limit int) ([]models.StreamerRecord, models.Pagination) {
	if limit <= 0 {
		limit = 10
	}
	total := len(rows)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return rows[start:end], models.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  int64(total),
	}
}
