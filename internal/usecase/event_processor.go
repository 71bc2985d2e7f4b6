package usecase

import (
	"context"
	"fmt"
	"time"

	"streampulse/internal/domain/models"
	drepo "streampulse/internal/domain/repository"
)

// EventProcessor applies validated overlay events to local state, refreshes
// settings values named by settings-updated events, and optionally fans the
// event out to Kafka. Fanout failures do not block state updates.
type EventProcessor struct {
	state   *OverlayState
	src     drepo.StatsSource
	pub     drepo.Publisher
	metrics drepo.Metrics
	channel string
}

// NewEventProcessor creates a new EventProcessor. pub may be nil when
// fanout is disabled.
func NewEventProcessor(state *OverlayState, src drepo.StatsSource, pub drepo.Publisher, metrics drepo.Metrics, channel string) *EventProcessor {
	return &EventProcessor{state: state, src: src, pub: pub, metrics: metrics, channel: channel}
}

// Process applies a single event.
func (p *EventProcessor) Process(ctx context.Context, ev *models.OverlayEvent) error {
	if ev == nil {
		return fmt.Errorf("event is nil")
	}

	start := time.Now()
	p.state.Apply(ev)
	p.metrics.RecordEvent(p.channel, ev.Type)

	for _, key := range p.state.DirtyKeys() {
		value, err := p.src.Setting(ctx, key)
		if err != nil {
			p.state.MarkDirty(key)
			p.metrics.RecordError("settings_refresh")
			continue
		}
		p.state.SetSetting(key, value)
	}

	if p.pub != nil {
		if err := p.pub.Publish(ctx, ev); err != nil {
			p.metrics.RecordError("fanout")
		}
	}

	p.metrics.RecordLatency("process_event", time.Since(start).Seconds())
	return nil
}

// Close closes underlying resources if available.
func (p *EventProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
}
