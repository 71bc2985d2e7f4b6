package models

import "time"

// Raw rows as reported by the upstream stats API, before assembly.
// Numeric fields missing in the payload default to zero; the assemblers
// never see NaN or nil slices.

// SummaryStats is the upstream aggregate snapshot for a time range.
type SummaryStats struct {
	TotalViewers    int64   `json:"totalViewers"`
	TotalDonations  int64   `json:"totalDonations"`
	ActiveStreamers int64   `json:"activeStreamers"`
	AdRevenue       int64   `json:"adRevenue"`
	ViewersChange   float64 `json:"viewersChange"`
	DonationsChange float64 `json:"donationsChange"`
	StreamersChange float64 `json:"streamersChange"`
	AdRevenueChange float64 `json:"adRevenueChange"`
}

// TrendRow is one time bucket of the upstream trend endpoints.
type TrendRow struct {
	Bucket    string  `json:"bucket"`
	Viewers   float64 `json:"viewers"`
	Donations float64 `json:"donations"`
	AdRevenue float64 `json:"adRevenue"`
}

// StreamerRecord is one streamer row from /api/streamers.
type StreamerRecord struct {
	ID                        string  `json:"id"`
	Name                      string  `json:"name"`
	Platform                  string  `json:"platform"`
	FollowerCount             int64   `json:"follower_count"`
	AvgViewers                int64   `json:"avg_viewers"`
	InfluenceScore            float64 `json:"influence_score"`
	AdEfficiencyPercent       float64 `json:"ad_efficiency"`
	DonationConversionPercent float64 `json:"donation_conversion"`
	TotalRevenue              int64   `json:"total_revenue"`
	TotalDonations            int64   `json:"total_donations"`
}

// EventRecord is one activity row from /api/stats/events.
type EventRecord struct {
	Type      string    `json:"type"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// DonationRow is one bucket of /api/stats/donations.
type DonationRow struct {
	Bucket string `json:"bucket"`
	Amount int64  `json:"amount"`
	Count  int64  `json:"count"`
}

// CategoryRow is one game/category performance row.
type CategoryRow struct {
	Name         string  `json:"name"`
	Viewers      float64 `json:"viewers"`
	Donations    float64 `json:"donations"`
	AdEfficiency float64 `json:"adEfficiency"`
}

// CampaignRecord is one campaign row from /api/campaigns.
type CampaignRecord struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	StreamerID            string  `json:"streamer_id"`
	PeriodStart           string  `json:"period_start"`
	PeriodEnd             string  `json:"period_end"`
	EstimatedConversions  int64   `json:"estimated_conversions"`
	ContributionPercent   float64 `json:"contribution_percent"`
	ConversionRatePercent float64 `json:"conversion_rate"`
	EstimatedValue        int64   `json:"estimated_value"`
	Status                string  `json:"status"`
}

// PlatformRow is one platform aggregate row.
type PlatformRow struct {
	Platform       string  `json:"platform"`
	StreamerCount  int64   `json:"streamer_count"`
	AvgViewers     float64 `json:"avg_viewers"`
	TotalDonations int64   `json:"total_donations"`
	AdEfficiency   float64 `json:"ad_efficiency"`
}

// ConnectionStatus reports upstream platform connection health.
type ConnectionStatus struct {
	Platform  string    `json:"platform"`
	Connected bool      `json:"connected"`
	CheckedAt time.Time `json:"checkedAt"`
}
