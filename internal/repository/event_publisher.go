package repository

import (
	"context"

	"streampulse/internal/domain/models"
	"streampulse/internal/domain/repository"
	pkgkafka "streampulse/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Events are keyed by type so
// consumers of one kind stay ordered within a partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev *models.OverlayEvent) error {
	payload := map[string]interface{}{
		"type": ev.Type,
		"at":   ev.At.UnixMilli(),
	}
	if ev.Sender != "" {
		payload["sender"] = ev.Sender
	}
	if ev.Message != "" {
		payload["message"] = ev.Message
	}
	if ev.Amount > 0 {
		payload["amount"] = ev.Amount
	}
	if ev.Key != "" {
		payload["key"] = ev.Key
	}
	return p.producer.Publish(ctx, p.topic, []byte(ev.Type), payload)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
