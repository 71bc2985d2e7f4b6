package models

import "time"

// Platform identifies a streaming platform a streamer broadcasts on.
type Platform string

const (
	PlatformSoop    Platform = "soop"
	PlatformChzzk   Platform = "chzzk"
	PlatformYouTube Platform = "youtube"
	PlatformTwitch  Platform = "twitch"
)

// ChangeDirection classifies the movement of a metric card.
type ChangeDirection string

const (
	ChangePositive ChangeDirection = "positive"
	ChangeNegative ChangeDirection = "negative"
	ChangeNeutral  ChangeDirection = "neutral"
)

// MetricCard is one headline number on a dashboard screen. Value is already
// formatted for display; ChangePercent is nil when no comparison exists.
type MetricCard struct {
	Label         string          `json:"label"`
	Value         string          `json:"value"`
	ChangePercent *float64        `json:"changePercent,omitempty"`
	Direction     ChangeDirection `json:"direction"`
}

// TimeSeriesPoint is one chronological bucket of a chart series. Points are
// emitted in chronological order, one per bucket, no duplicates.
type TimeSeriesPoint struct {
	Bucket string             `json:"bucket"`
	Values map[string]float64 `json:"values"`
}

// RankedEntity is one row of a ranked list. Rank is 1-based and unique
// within its list; ties keep input order.
type RankedEntity struct {
	Rank     int                `json:"rank"`
	Name     string             `json:"name"`
	Platform Platform           `json:"platform"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ShareSlice is one wedge of a categorical share breakdown.
type ShareSlice struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// RadarAxis is one projected axis of a radar chart, already scaled.
type RadarAxis struct {
	Axis  string  `json:"axis"`
	Value float64 `json:"value"`
}

// StreamerProfile is the normalized identity + aggregate metrics of one
// streamer. InfluenceGrade is derived from InfluenceScore by the grade bands.
type StreamerProfile struct {
	ID                        string   `json:"id"`
	Name                      string   `json:"name"`
	Platform                  Platform `json:"platform"`
	FollowerCount             int64    `json:"followerCount"`
	AvgViewers                int64    `json:"avgViewers"`
	InfluenceScore            float64  `json:"influenceScore"`
	InfluenceGrade            string   `json:"influenceGrade"`
	AdEfficiencyPercent       float64  `json:"adEfficiencyPercent"`
	DonationConversionPercent float64  `json:"donationConversionPercent"`
	TotalRevenue              int64    `json:"totalRevenue"`
}

// CampaignStatus is the lifecycle state of an ad campaign.
type CampaignStatus string

const (
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
)

// CampaignAttribution is the estimated contribution of a streamer's activity
// to one ad campaign. ContributionPercent values across a streamer's
// campaigns are independent estimates and are not normalized to 100.
type CampaignAttribution struct {
	CampaignID            string         `json:"campaignId"`
	Name                  string         `json:"name"`
	PeriodStart           time.Time      `json:"periodStart"`
	PeriodEnd             time.Time      `json:"periodEnd"`
	EstimatedConversions  int64          `json:"estimatedConversions"`
	ContributionPercent   float64        `json:"contributionPercent"`
	ConversionRatePercent float64        `json:"conversionRatePercent"`
	EstimatedValue        int64          `json:"estimatedValue"`
	Status                CampaignStatus `json:"status"`
}

// Pagination carries paging metadata for a paged list view.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
}

// EventRow is one recent-activity row (chat, donation, follow). When holds
// the relative-time label derived at assembly time.
type EventRow struct {
	Type   string `json:"type"`
	Sender string `json:"sender"`
	Detail string `json:"detail,omitempty"`
	Amount int64  `json:"amount,omitempty"`
	When   string `json:"when"`
}

// OverviewView is the assembled view-model of the overview screen.
// Errors maps a failed section name to its failure reason; sections listed
// there are rendered empty, never half-stale.
type OverviewView struct {
	GeneratedAt   time.Time         `json:"generatedAt"`
	Cards         []MetricCard      `json:"cards"`
	Trend         []TimeSeriesPoint `json:"trend"`
	TopStreamers  []RankedEntity    `json:"topStreamers"`
	RecentEvents  []EventRow        `json:"recentEvents"`
	PlatformShare []ShareSlice      `json:"platformShare"`
	Errors        map[string]string `json:"errors,omitempty"`
}

// StreamerRow is one row of the streamer list screen.
type StreamerRow struct {
	Rank           int     `json:"rank"`
	StreamerProfile
	TotalDonations int64   `json:"totalDonations"`
}

// StreamerListView is the assembled view-model of the streamer list screen.
type StreamerListView struct {
	Streamers  []StreamerRow `json:"streamers"`
	Pagination Pagination    `json:"pagination"`
	SortBy     string        `json:"sortBy"`
	SortOrder  string        `json:"sortOrder"`
	Search     string        `json:"search,omitempty"`
}

// StreamerDetailView is the assembled view-model of one streamer's detail
// screen. The profile is the primary entity; everything else degrades
// section-locally.
type StreamerDetailView struct {
	Profile       StreamerProfile       `json:"profile"`
	Campaigns     []CampaignAttribution `json:"campaigns"`
	DonationTrend []TimeSeriesPoint     `json:"donationTrend"`
	Radar         []RadarAxis           `json:"radar"`
	Errors        map[string]string     `json:"errors,omitempty"`
}

// CampaignReportView is the assembled view-model of the campaign screen.
type CampaignReportView struct {
	Cards     []MetricCard          `json:"cards"`
	Campaigns []CampaignAttribution `json:"campaigns"`
	Errors    map[string]string     `json:"errors,omitempty"`
}

// PlatformStats is one platform's aggregate row on the comparison screen.
type PlatformStats struct {
	Platform       Platform    `json:"platform"`
	StreamerCount  int64       `json:"streamerCount"`
	AvgViewers     float64     `json:"avgViewers"`
	TotalDonations int64       `json:"totalDonations"`
	SharePercent   float64     `json:"sharePercent"`
	Radar          []RadarAxis `json:"radar"`
}

// PlatformCompareView is the assembled view-model of the platform
// comparison screen.
type PlatformCompareView struct {
	Cards     []MetricCard      `json:"cards"`
	Platforms []PlatformStats   `json:"platforms"`
	Errors    map[string]string `json:"errors,omitempty"`
}
