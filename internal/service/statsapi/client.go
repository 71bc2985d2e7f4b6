package statsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"streampulse/internal/domain/models"
	drepo "streampulse/internal/domain/repository"
	xhttp "streampulse/pkg/http"
)

// Client reads the upstream stats REST API. It injects the bearer token it
// was constructed with, surfaces failures immediately (no retry), and never
// caches. Response envelopes are unwrapped defensively, see decode.go.
type Client struct {
	baseURL   string
	authToken string
	http      *xhttp.Client
}

// New creates an upstream stats client. The token may be empty for
// unauthenticated deployments.
func New(baseURL, authToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		http:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *Client) get(ctx context.Context, path string, params map[string][]string) ([]byte, error) {
	headers := map[string]string{}
	if c.authToken != "" {
		headers["Authorization"] = "Bearer " + c.authToken
	}
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		Headers:     headers,
		QueryParams: params,
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return body, nil
}

// Summary fetches the aggregate snapshot for the last N days.
func (c *Client) Summary(ctx context.Context, days int) (models.SummaryStats, error) {
	var out models.SummaryStats
	b, err := c.get(ctx, "/api/stats/summary", map[string][]string{"days": {strconv.Itoa(days)}})
	if err != nil {
		return out, err
	}
	err = decodeObject(b, &out)
	return out, err
}

// Trend fetches the daily trend buckets for the last N days.
func (c *Client) Trend(ctx context.Context, days int) ([]models.TrendRow, error) {
	b, err := c.get(ctx, "/api/stats/trend", map[string][]string{"days": {strconv.Itoa(days)}})
	if err != nil {
		return nil, err
	}
	return decodeList[models.TrendRow](b)
}

// Streamers fetches all streamer rows. Search/sort/paging is applied by the
// assembler so the view stays consistent regardless of upstream support.
func (c *Client) Streamers(ctx context.Context) ([]models.StreamerRecord, error) {
	b, err := c.get(ctx, "/api/streamers", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.StreamerRecord](b)
}

// Streamer fetches a single streamer. A 404 or an empty record maps to
// NotFoundError so the caller can render the whole-screen not-found state.
func (c *Client) Streamer(ctx context.Context, id string) (models.StreamerRecord, error) {
	var out models.StreamerRecord
	b, err := c.get(ctx, "/api/streamers/"+id, nil)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return out, &drepo.NotFoundError{ID: id}
		}
		return out, err
	}
	if err := decodeObject(b, &out); err != nil {
		return out, err
	}
	if out.ID == "" {
		return out, &drepo.NotFoundError{ID: id}
	}
	return out, nil
}

// Events fetches the most recent activity rows.
func (c *Client) Events(ctx context.Context, limit int) ([]models.EventRecord, error) {
	b, err := c.get(ctx, "/api/stats/events", map[string][]string{"limit": {strconv.Itoa(limit)}})
	if err != nil {
		return nil, err
	}
	return decodeList[models.EventRecord](b)
}

// Donations fetches monthly donation buckets for one streamer.
func (c *Client) Donations(ctx context.Context, streamerID string, months int) ([]models.DonationRow, error) {
	b, err := c.get(ctx, "/api/stats/donations", map[string][]string{
		"streamerId": {streamerID},
		"months":     {strconv.Itoa(months)},
	})
	if err != nil {
		return nil, err
	}
	return decodeList[models.DonationRow](b)
}

// Categories fetches category performance rows for one streamer.
func (c *Client) Categories(ctx context.Context, streamerID string) ([]models.CategoryRow, error) {
	b, err := c.get(ctx, "/api/categories/top", map[string][]string{"streamerId": {streamerID}})
	if err != nil {
		return nil, err
	}
	return decodeList[models.CategoryRow](b)
}

// Campaigns fetches campaign attribution rows, optionally filtered.
func (c *Client) Campaigns(ctx context.Context, streamerID, status string) ([]models.CampaignRecord, error) {
	params := map[string][]string{}
	if streamerID != "" {
		params["streamerId"] = []string{streamerID}
	}
	if status != "" {
		params["status"] = []string{status}
	}
	b, err := c.get(ctx, "/api/campaigns", params)
	if err != nil {
		return nil, err
	}
	return decodeList[models.CampaignRecord](b)
}

// Platforms fetches per-platform aggregates for the last N days.
func (c *Client) Platforms(ctx context.Context, days int) ([]models.PlatformRow, error) {
	b, err := c.get(ctx, "/api/stats/platforms", map[string][]string{"days": {strconv.Itoa(days)}})
	if err != nil {
		return nil, err
	}
	return decodeList[models.PlatformRow](b)
}

// Connections fetches upstream platform connection statuses.
func (c *Client) Connections(ctx context.Context) ([]models.ConnectionStatus, error) {
	b, err := c.get(ctx, "/api/connections/status", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.ConnectionStatus](b)
}

// Setting fetches one named configuration value.
func (c *Client) Setting(ctx context.Context, key string) (string, error) {
	b, err := c.get(ctx, "/api/settings/"+key, nil)
	if err != nil {
		return "", err
	}
	return decodeSetting(b)
}

var _ drepo.StatsSource = (*Client)(nil)
