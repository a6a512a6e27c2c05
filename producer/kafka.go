package producer

import (
	"context"
	"fmt"

	kafka "github.com/segmentio/kafka-go"

	"github.com/postfeed/postfeed/eventsourcing"
)

// KafkaProducer publishes events to a Kafka topic. Messages are keyed by
// aggregate id so each aggregate's events land on one partition, in order.
type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer returns a producer connected to the given brokers.
func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish implements the Producer interface.
func (p *KafkaProducer) Publish(ctx context.Context, topic string, event eventsourcing.Event) error {
	payload, err := marshalEnvelope(event)
	if err != nil {
		return fmt.Errorf("could not marshal event %s: %w", event.EventType(), err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(event.AggregateID()),
		Value: payload,
	})
}

// Close flushes pending messages and releases the underlying writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
