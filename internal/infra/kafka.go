package infra

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"roamio/pkg/logger"
)

// EventProducer mirrors analytics events onto a Kafka topic for
// downstream consumers. Nil-safe: a producer built without brokers
// drops messages silently.
type EventProducer struct {
	writer *kafka.Writer
}

func NewEventProducer() *EventProducer {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return &EventProducer{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        envOr("KAFKA_EVENTS_TOPIC", "trip-events"),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &EventProducer{writer: writer}
}

func (p *EventProducer) Publish(ctx context.Context, key string, payload any) error {
	if p == nil || p.writer == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: data})
}

func (p *EventProducer) Close() {
	if p == nil || p.writer == nil {
		return
	}
	if err := p.writer.Close(); err != nil {
		logger.Log.WithError(err).Error("error closing Kafka writer")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
