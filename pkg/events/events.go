package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diagnosis/parkingpro/pkg/logger"
	"github.com/nats-io/nats.go"
	"github.com/segmentio/kafka-go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url, nats.Name("parkingpro"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// KafkaPublisher writes every subject to one topic, keyed by subject so that
// consumers can filter without a topic per event.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (k *KafkaPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	if err := k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(subject),
		Value: payload,
		Time:  time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

// Noop drops events; used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) error { return nil }
func (Noop) Close() error                                        { return nil }

const (
	UserRegistered  = "user.registered"
	BookingCreated  = "booking.created"
	BookingCanceled = "booking.canceled"
	ContactReceived = "contact.received"
	OTPIssued       = "otp.issued"
)

type UserRegisteredEvent struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type BookingCreatedEvent struct {
	BookingID  string    `json:"booking_id"`
	User       string    `json:"user"`
	Slot       string    `json:"slot"`
	StartTime  time.Time `json:"start_time"`
	ExpiryTime time.Time `json:"expiry_time"`
}

type BookingCanceledEvent struct {
	User       string    `json:"user"`
	Slot       string    `json:"slot"`
	CanceledAt time.Time `json:"canceled_at"`
}

type ContactReceivedEvent struct {
	MessageID   string    `json:"message_id"`
	Email       string    `json:"email"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// OTPIssuedEvent never carries the code itself.
type OTPIssuedEvent struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
