package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"streampulse/internal/domain/models"
	domrepo "streampulse/internal/domain/repository"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, ev *models.OverlayEvent) error
}

// EventPipeline sits between the push-event feed and the overlay state.
// It validates, throttles per event type, optionally transforms, and buffers
// when downstream processing fails.
type EventPipeline struct {
	proc     Proc
	metrics  domrepo.Metrics
	maxEPS   int
	bufSize  int
	bufCh    chan *models.OverlayEvent
	stopCh   chan struct{}
	started  bool
	mu       sync.Mutex
	lastSeen map[string]time.Time // per-type last accepted time
	// simple format transform hook (optional)
	transform func(*models.OverlayEvent) *models.OverlayEvent
	// metrics
	bufDepthGauge func(int)
	throttleWarn  func(string)
}

type PipelineOption func(*EventPipeline)

// WithMaxEPS sets the max events per second per event type.
func WithMaxEPS(n int) PipelineOption {
	return func(p *EventPipeline) {
		if n > 0 {
			p.maxEPS = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *EventPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// WithTransform sets a transformation hook to modify event format.
func WithTransform(fn func(*models.OverlayEvent) *models.OverlayEvent) PipelineOption {
	return func(p *EventPipeline) { p.transform = fn }
}

// NewEventPipeline creates a new pipeline.
func NewEventPipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *EventPipeline {
	p := &EventPipeline{
		proc:     proc,
		metrics:  metrics,
		maxEPS:   50,   // default throttle per type
		bufSize:  1000, // default buffer
		bufCh:    make(chan *models.OverlayEvent, 1000),
		stopCh:   make(chan struct{}),
		lastSeen: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan *models.OverlayEvent, p.bufSize)
	}
	p.bufDepthGauge = func(n int) { p.metrics.RecordLatency("pipeline_buffer_depth", float64(n)) }
	p.throttleWarn = func(kind string) { p.metrics.RecordError("pipeline_throttle_" + kind) }
	return p
}

// Start launches background flushing of buffered events.
func (p *EventPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case ev := <-p.bufCh:
				if ev == nil {
					continue
				}
				if err := p.proc.Process(ctx, ev); err != nil {
					// exponential backoff with cap
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- ev:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *EventPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates, throttles, and forwards the event downstream,
// buffering on errors.
func (p *EventPipeline) Process(ctx context.Context, ev *models.OverlayEvent) error {
	start := time.Now()
	if err := validateEvent(ev); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if p.transform != nil {
		ev = p.transform(ev)
		if err := validateEvent(ev); err != nil {
			p.metrics.RecordError("pipeline_transform_invalid")
			return err
		}
	}
	if !p.allow(ev.Type, start) {
		// throttled; record and drop silently
		p.metrics.RecordError("pipeline_throttle")
		if p.throttleWarn != nil {
			p.throttleWarn(ev.Type)
		}
		return nil
	}

	if err := p.proc.Process(ctx, ev); err != nil {
		p.metrics.RecordError("pipeline_process")
		// buffer non-blocking
		select {
		case p.bufCh <- ev:
			if p.bufDepthGauge != nil {
				p.bufDepthGauge(len(p.bufCh))
			}
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateEvent(ev *models.OverlayEvent) error {
	if ev == nil {
		return fmt.Errorf("event nil")
	}
	switch ev.Type {
	case models.EventChat, models.EventFollow:
	case models.EventDonation:
		if ev.Amount <= 0 {
			return fmt.Errorf("donation amount invalid")
		}
	case models.EventSettingsUpdated:
		if ev.Key == "" {
			return fmt.Errorf("settings key empty")
		}
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	if ev.At.IsZero() {
		return fmt.Errorf("timestamp missing")
	}
	return nil
}

func (p *EventPipeline) allow(kind string, now time.Time) bool {
	if p.maxEPS <= 0 {
		return true
	}
	// at most maxEPS per second per type; the consumer worker pool calls
	// Process concurrently, so lastSeen is guarded
	p.mu.Lock()
	defer p.mu.Unlock()
	last := p.lastSeen[kind]
	if last.IsZero() {
		p.lastSeen[kind] = now
		return true
	}
	if now.Sub(last) < time.Second/time.Duration(p.maxEPS) {
		return false
	}
	p.lastSeen[kind] = now
	return true
}
