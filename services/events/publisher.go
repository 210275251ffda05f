package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"mentorship/models"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	RoutingSessionBooked    = "session.booked"
	RoutingSessionCancelled = "session.cancelled"
)

// Publisher emits session lifecycle events.
type Publisher interface {
	PublishSession(ctx context.Context, routingKey string, event models.SessionEvent) error
	Close() error
}

// RabbitPublisher publishes JSON events to a durable topic exchange.
type RabbitPublisher struct {
	mu       sync.Mutex // amqp channels are not safe for concurrent publishes
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) PublishSession(ctx context.Context, routingKey string, event models.SessionEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Type:         routingKey,
		Body:         b,
	})
}

func (p *RabbitPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher is used when RABBIT_URL is unset.
type LogPublisher struct {
	Logger *zap.Logger
}

func (p LogPublisher) PublishSession(_ context.Context, routingKey string, event models.SessionEvent) error {
	p.Logger.Debug("Session event (broker disabled)", zap.String("routingKey", routingKey), zap.String("sessionID", event.SessionID))
	return nil
}

func (LogPublisher) Close() error { return nil }

// SessionEventFrom projects a session onto its published event.
func SessionEventFrom(s models.Session) models.SessionEvent {
	return models.SessionEvent{
		SessionID: s.ID,
		MentorID:  s.MentorID,
		StudentID: s.StudentID,
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    s.Status,
	}
}
