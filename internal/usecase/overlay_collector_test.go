package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"streampulse/internal/domain/models"
)

// flakyStream fails its first read the way the websocket client does: one
// error on the error channel, then both channels close. The second read
// delivers events and stays open.
type flakyStream struct {
	mu        sync.Mutex
	reads     int
	connects  int
	connected bool
}

func (s *flakyStream) Connect(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connects++
	s.connected = true
	return nil
}

func (s *flakyStream) Subscribe(context.Context) error { return nil }

func (s *flakyStream) Reconnect(ctx context.Context) error { return s.Connect(ctx) }

func (s *flakyStream) Close() error {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()
	return nil
}

func (s *flakyStream) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *flakyStream) Read(context.Context) (<-chan *models.OverlayEvent, <-chan error) {
	s.mu.Lock()
	n := s.reads
	s.reads++
	s.mu.Unlock()

	events := make(chan *models.OverlayEvent, 8)
	errs := make(chan error, 1)
	if n == 0 {
		errs <- fmt.Errorf("read: connection reset")
		close(errs)
		close(events)
	} else {
		events <- &models.OverlayEvent{Type: models.EventDonation, Sender: "a", Amount: 7_000, At: time.Now()}
	}
	return events, errs
}

func (s *flakyStream) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func TestCollectorResumesAfterStreamError(t *testing.T) {
	src := newFakeSource()
	state := NewOverlayState("donations", 10)
	proc := NewEventProcessor(state, src, nil, nopMetrics{}, "donations")
	stream := &flakyStream{}
	col := NewOverlayCollector(stream, proc, state, nopMetrics{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := col.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for state.Snapshot().DonationCount == 0 {
		select {
		case <-deadline:
			t.Fatal("event after reconnect never reached the processor")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if got := stream.readCount(); got < 2 {
		t.Fatalf("expected a fresh Read after reconnect, got %d", got)
	}
	if !col.IsConnected() {
		t.Fatal("expected collector connected after resume")
	}
}
