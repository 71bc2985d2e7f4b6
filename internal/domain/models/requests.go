package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type OverviewRequest struct {
	Days int `query:"days" json:"days" default:"7" validate:"gte=1,lte=90"`
}

type StreamersRequest struct {
	Search    string `query:"search" json:"search" validate:"omitempty,max=100"`
	SortBy    string `query:"sortBy" json:"sortBy" default:"total_donations" validate:"oneof=total_donations avg_viewers follower_count influence_score"`
	SortOrder string `query:"sortOrder" json:"sortOrder" default:"desc" validate:"oneof=asc desc"`
	Page      int    `query:"page" json:"page" default:"1" validate:"gte=1"`
	Limit     int    `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=100"`
}

type StreamerDetailRequest struct {
	ID     string `param:"id" json:"id" validate:"required"`
	Months int    `query:"months" json:"months" default:"3" validate:"gte=1,lte=12"`
}

type CampaignsRequest struct {
	Status string `query:"status" json:"status" validate:"omitempty,oneof=scheduled active completed"`
}

type PlatformsRequest struct {
	Days int `query:"days" json:"days" default:"30" validate:"gte=1,lte=90"`
}
