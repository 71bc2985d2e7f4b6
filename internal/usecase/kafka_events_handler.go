package usecase

import (
	"context"
	"encoding/json"
	"time"

	"streampulse/internal/domain/models"
	domrepo "streampulse/internal/domain/repository"
	mid "streampulse/internal/middleware"
	pkgkafka "streampulse/pkg/kafka"
)

// KafkaEventsHandler consumes overlay events from a Kafka topic and feeds
// them into the pipeline. Used when the push channel is brokered instead of
// a direct websocket.
type KafkaEventsHandler struct {
	topic   string
	pipe    *mid.EventPipeline
	metrics domrepo.Metrics
}

func NewKafkaEventsHandler(topic string, pipe *mid.EventPipeline, metrics domrepo.Metrics) *KafkaEventsHandler {
	return &KafkaEventsHandler{topic: topic, pipe: pipe, metrics: metrics}
}

func (h *KafkaEventsHandler) Topic() string { return h.topic }

// incoming message schema: {type, sender, message, amount, key, at}
func (h *KafkaEventsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Type    string `json:"type"`
		Sender  string `json:"sender"`
		Message string `json:"message"`
		Amount  int64  `json:"amount"`
		Key     string `json:"key"`
		At      int64  `json:"at"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.At < 1e12 { // seconds
		m.At = m.At * 1000
	}
	at := time.UnixMilli(m.At)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(at).Seconds())

	return h.pipe.Process(ctx, &models.OverlayEvent{
		Type:    m.Type,
		Sender:  m.Sender,
		Message: m.Message,
		Amount:  m.Amount,
		Key:     m.Key,
		At:      at,
	})
}

var _ pkgkafka.MessageHandler = (*KafkaEventsHandler)(nil)
