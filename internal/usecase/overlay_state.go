package usecase

import (
	"sync"
	"time"

	"streampulse/internal/domain/models"
	"streampulse/internal/services/derive"
)

// OverlayState is the in-memory state patched by incoming overlay events:
// a bounded ticker of recent events, the donation goal counters, and the
// settings cache with its dirty-key set. Appending to a full ticker evicts
// the oldest entry.
type OverlayState struct {
	mu            sync.Mutex
	channel       string
	tickerSize    int
	ticker        []models.OverlayEvent
	goalAmount    int64
	donationCount int64
	settings      map[string]string
	dirtyKeys     map[string]bool
	connected     bool
	connectedAt   time.Time
}

func NewOverlayState(channel string, tickerSize int) *OverlayState {
	if tickerSize <= 0 {
		tickerSize = 20
	}
	return &OverlayState{
		channel:    channel,
		tickerSize: tickerSize,
		ticker:     make([]models.OverlayEvent, 0, tickerSize),
		settings:   make(map[string]string),
		dirtyKeys:  make(map[string]bool),
	}
}

// Apply patches the state with one event.
func (s *OverlayState) Apply(ev *models.OverlayEvent) {
	if ev == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case models.EventDonation:
		s.goalAmount += ev.Amount
		s.donationCount++
		s.appendTicker(*ev)
	case models.EventChat, models.EventFollow:
		s.appendTicker(*ev)
	case models.EventSettingsUpdated:
		// value is fetched lazily; only the key is marked stale here
		s.dirtyKeys[ev.Key] = true
	}
}

func (s *OverlayState) appendTicker(ev models.OverlayEvent) {
	if len(s.ticker) >= s.tickerSize {
		s.ticker = s.ticker[1:]
	}
	s.ticker = append(s.ticker, ev)
}

// SetConnected records feed connectivity for the status snapshot.
func (s *OverlayState) SetConnected(v bool) {
	s.mu.Lock()
	if v && !s.connected {
		s.connectedAt = time.Now()
	}
	s.connected = v
	s.mu.Unlock()
}

// DirtyKeys drains the set of settings keys marked stale since the last call.
func (s *OverlayState) DirtyKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.dirtyKeys) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.dirtyKeys))
	for k := range s.dirtyKeys {
		keys = append(keys, k)
	}
	s.dirtyKeys = make(map[string]bool)
	return keys
}

// MarkDirty re-flags a key whose refresh failed.
func (s *OverlayState) MarkDirty(key string) {
	s.mu.Lock()
	s.dirtyKeys[key] = true
	s.mu.Unlock()
}

// SetSetting stores a refreshed settings value.
func (s *OverlayState) SetSetting(key, value string) {
	s.mu.Lock()
	s.settings[key] = value
	s.mu.Unlock()
}

// Snapshot returns a copy of the current overlay status.
func (s *OverlayState) Snapshot() models.OverlayStatusView {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticker := make([]models.OverlayEvent, len(s.ticker))
	copy(ticker, s.ticker)
	var settings map[string]string
	if len(s.settings) > 0 {
		settings = make(map[string]string, len(s.settings))
		for k, v := range s.settings {
			settings[k] = v
		}
	}
	var uptime string
	if s.connected && !s.connectedAt.IsZero() {
		uptime = derive.Duration(int64(time.Since(s.connectedAt).Seconds()))
	}
	return models.OverlayStatusView{
		Connected:     s.connected,
		Uptime:        uptime,
		Channel:       s.channel,
		Ticker:        ticker,
		GoalAmount:    s.goalAmount,
		DonationCount: s.donationCount,
		Settings:      settings,
	}
}
