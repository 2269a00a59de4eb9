package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"lendly/internal/logger"
)

// Event types emitted on the rental lifecycle topic.
const (
	TypeRequestCreated  = "request.created"
	TypeRequestAccepted = "request.accepted"
	TypeRequestDenied   = "request.denied"
	TypeRentalActivated = "rental.activated"
	TypeRentalClosed    = "rental.closed"
	TypeRentalOverdue   = "rental.overdue"
)

// Event is the envelope written to Kafka. Payload carries the request
// snapshot at the time of the transition.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Publisher emits lifecycle events. Publishing failures are logged by
// callers, never surfaced to API clients.
type Publisher interface {
	Publish(ctx context.Context, eventType string, key string, payload any) error
	Close() error
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafka builds a synchronous idempotent producer. Events are keyed
// by item so consumers see transitions for one item in order.
func NewKafka(brokers []string, topic string) (Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info("Kafka publisher initialized", "brokers", brokers, "topic", topic)
	return &kafkaPublisher{producer: producer, topic: topic}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	event := Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(eventType)},
		},
	}
	_, _, err = p.producer.SendMessage(msg)
	return err
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noop struct{}

// NewNoop returns a publisher that drops events. Used when no brokers
// are configured.
func NewNoop() Publisher { return noop{} }

func (noop) Publish(context.Context, string, string, any) error { return nil }
func (noop) Close() error                                       { return nil }
