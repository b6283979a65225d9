package layouts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"venuelayout/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

type EventType string

const (
	EventLayoutCreated   EventType = "layout.created"
	EventLayoutSaved     EventType = "layout.saved"
	EventLayoutPublished EventType = "layout.published"
	EventLayoutArchived  EventType = "layout.archived"
	EventLayoutDeleted   EventType = "layout.deleted"
)

// LayoutEvent is the message published for every layout lifecycle change.
type LayoutEvent struct {
	ID            uuid.UUID    `json:"id"`
	Type          EventType    `json:"type"`
	LayoutID      uuid.UUID    `json:"layout_id"`
	Name          string       `json:"name,omitempty"`
	Status        LayoutStatus `json:"status,omitempty"`
	TotalSeated   int          `json:"total_seated"`
	TotalStanding int          `json:"total_standing"`
	TotalCapacity int          `json:"total_capacity"`
	OccurredAt    time.Time    `json:"occurred_at"`
}

func NewLayoutEvent(eventType EventType, l *VenueLayout) LayoutEvent {
	return LayoutEvent{
		ID:            uuid.New(),
		Type:          eventType,
		LayoutID:      l.ID,
		Name:          l.Name,
		Status:        l.Status,
		TotalSeated:   l.TotalSeated,
		TotalStanding: l.TotalStanding,
		TotalCapacity: l.TotalCapacity,
		OccurredAt:    time.Now().UTC(),
	}
}

// EventPublisher interface defines the contract for publishing layout events
type EventPublisher interface {
	Publish(ctx context.Context, event LayoutEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka layout event producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	ClientID         string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "layout-events",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

// KafkaEventPublisher publishes layout events to a Kafka topic, keyed by layout id
type KafkaEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaEventPublisher creates a new Kafka layout event producer
func NewKafkaEventPublisher(config *KafkaProducerConfig) (*KafkaEventPublisher, error) {
	saramaConfig := sarama.NewConfig()
	if config.ClientID != "" {
		saramaConfig.ClientID = config.ClientID
	}

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Events of one layout land on one partition, in order
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewKafkaEventPublisherWithProducer(producer, config.Topic), nil
}

// NewKafkaEventPublisherWithProducer wraps an existing producer.
func NewKafkaEventPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event LayoutEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal layout event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.LayoutID.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send layout event to Kafka: %w", err)
	}

	logger.GetDefault().DebugWithContext(ctx, "layout event published", map[string]interface{}{
		"topic":     p.topic,
		"partition": partition,
		"offset":    offset,
		"type":      string(event.Type),
		"layout_id": event.LayoutID.String(),
	})
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// NoopPublisher drops every event. It is used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, LayoutEvent) error { return nil }
func (NoopPublisher) Close() error                               { return nil }
