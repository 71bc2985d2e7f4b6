package repository

import (
	"context"

	"streampulse/internal/domain/models"
)

// EventStream is a live connection to the push-event feed.
type EventStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.OverlayEvent, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Publisher fans validated overlay events out to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, ev *models.OverlayEvent) error
	Close() error
}

// StatsSource reads the upstream stats API. Implementations surface
// transport failures and non-2xx statuses as errors; they never retry and
// never cache. A nil-safe zero value is returned alongside every error.
type StatsSource interface {
	Summary(ctx context.Context, days int) (models.SummaryStats, error)
	Trend(ctx context.Context, days int) ([]models.TrendRow, error)
	Streamers(ctx context.Context) ([]models.StreamerRecord, error)
	Streamer(ctx context.Context, id string) (models.StreamerRecord, error)
	Events(ctx context.Context, limit int) ([]models.EventRecord, error)
	Donations(ctx context.Context, streamerID string, months int) ([]models.DonationRow, error)
	Categories(ctx context.Context, streamerID string) ([]models.CategoryRow, error)
	Campaigns(ctx context.Context, streamerID, status string) ([]models.CampaignRecord, error)
	Platforms(ctx context.Context, days int) ([]models.PlatformRow, error)
	Connections(ctx context.Context) ([]models.ConnectionStatus, error)
	Setting(ctx context.Context, key string) (string, error)
}

// NotFoundError is returned by Streamer when the id has no match. Declared
// here so assemblers can map it to a whole-screen not-found state.
type NotFoundError struct{ ID string }

func (e *NotFoundError) Error() string { return "streamer not found: " + e.ID }

// Metrics records operational measurements.
type Metrics interface {
	RecordEvent(channel, kind string)
	RecordError(kind string)
	RecordSectionFailure(screen, section string)
	RecordLatency(op string, seconds float64)
}
