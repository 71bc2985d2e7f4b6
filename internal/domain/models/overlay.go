package models

import "time"

// Overlay event kinds delivered on the push channel.
const (
	EventChat            = "chat"
	EventDonation        = "donation"
	EventFollow          = "follow"
	EventSettingsUpdated = "settings-updated"
)

// OverlayEvent is one typed message from the push-event feed.
// Key is only set for settings-updated events and names the configuration
// entry to re-fetch.
type OverlayEvent struct {
	Type    string    `json:"type"`
	Sender  string    `json:"sender,omitempty"`
	Message string    `json:"message,omitempty"`
	Amount  int64     `json:"amount,omitempty"`
	Key     string    `json:"key,omitempty"`
	At      time.Time `json:"at"`
}

// OverlayStatusView is the snapshot of overlay-local state patched by
// incoming events: a bounded ticker of recent events and the running
// donation goal counters.
type OverlayStatusView struct {
	Connected     bool              `json:"connected"`
	Uptime        string            `json:"uptime,omitempty"`
	Channel       string            `json:"channel"`
	Ticker        []OverlayEvent    `json:"ticker"`
	GoalAmount    int64             `json:"goalAmount"`
	DonationCount int64             `json:"donationCount"`
	Settings      map[string]string `json:"settings,omitempty"`
	// Platform connection health as reported by the upstream; filled by the
	// status handler, not by event application.
	Connections []ConnectionStatus `json:"connections,omitempty"`
}
