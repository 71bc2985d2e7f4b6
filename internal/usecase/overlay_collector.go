package usecase

import (
	"context"

	"streampulse/internal/domain/models"
	drepo "streampulse/internal/domain/repository"
	mid "streampulse/internal/middleware"
)

// OverlayCollector reads events from the push feed and runs them through the
// pipeline into the processor.
type OverlayCollector struct {
	stream  drepo.EventStream
	proc    *EventProcessor
	state   *OverlayState
	metrics drepo.Metrics
	pipe    *mid.EventPipeline
}

// NewOverlayCollector creates a new OverlayCollector instance.
func NewOverlayCollector(stream drepo.EventStream, proc *EventProcessor, state *OverlayState, metrics drepo.Metrics, pipe *mid.EventPipeline) *OverlayCollector {
	return &OverlayCollector{stream: stream, proc: proc, state: state, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the push feed is connected.
func (c *OverlayCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *OverlayCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	c.state.SetConnected(true)
	evCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, evCh, errCh)
	return nil
}

func (c *OverlayCollector) consume(ctx context.Context, evCh <-chan *models.OverlayEvent, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			c.state.SetConnected(false)
			return
		case err, ok := <-errCh:
			if ok && err != nil {
				c.metrics.RecordError("stream")
			}
			// the stream's read loop ends after reporting; drain what it
			// already delivered, then read from the new connection
			for ev := range evCh {
				c.handle(ctx, ev)
			}
			var alive bool
			if evCh, errCh, alive = c.resume(ctx); !alive {
				return
			}
		case ev, ok := <-evCh:
			if !ok {
				var alive bool
				if evCh, errCh, alive = c.resume(ctx); !alive {
					return
				}
				continue
			}
			c.handle(ctx, ev)
		}
	}
}

func (c *OverlayCollector) handle(ctx context.Context, ev *models.OverlayEvent) {
	if ev == nil {
		return
	}
	if c.pipe != nil {
		_ = c.pipe.Process(ctx, ev)
	} else {
		_ = c.proc.Process(ctx, ev)
	}
}

// resume reconnects the feed and re-issues Read, retrying until the context
// is cancelled. The stream owns the delay between attempts.
func (c *OverlayCollector) resume(ctx context.Context) (<-chan *models.OverlayEvent, <-chan error, bool) {
	c.state.SetConnected(false)
	for ctx.Err() == nil {
		if err := c.stream.Reconnect(ctx); err != nil {
			c.metrics.RecordError("reconnect")
			continue
		}
		c.state.SetConnected(true)
		evCh, errCh := c.stream.Read(ctx)
		return evCh, errCh, true
	}
	return nil, nil, false
}

func (c *OverlayCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying EventProcessor for lifecycle management.
func (c *OverlayCollector) Processor() *EventProcessor { return c.proc }

// Shutdown stops the pipeline and closes the feed.
func (c *OverlayCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	c.state.SetConnected(false)
	return c.stream.Close()
}
