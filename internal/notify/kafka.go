package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer used to publish leads.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes leads as JSON events on a Kafka topic, keyed by
// lead ID.
type KafkaNotifier struct {
	w MessageWriter
}

// NewKafkaWriter returns a synchronous producer for topic. Writes wait for
// the partition leader so a failed publish surfaces as an error.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}
}

// NewKafkaNotifier creates a KafkaNotifier publishing through w.
func NewKafkaNotifier(w MessageWriter) *KafkaNotifier {
	return &KafkaNotifier{w: w}
}

// SendLead publishes the lead.
func (k *KafkaNotifier) SendLead(ctx context.Context, lead *LeadPayload) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("marshaling lead event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(lead.ID),
		Value: data,
		Time:  lead.SubmittedAt,
	}
	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing lead event: %w", err)
	}
	return nil
}

// Close flushes and closes the producer.
func (k *KafkaNotifier) Close() error {
	return k.w.Close()
}
