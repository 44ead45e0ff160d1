package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"nalevel/internal/domain/models/account"
	accountSvc "nalevel/internal/domain/services/account"
)

// Publisher implements accountSvc.Notifier by publishing persistent JSON
// messages to NotificationQueue. The broker connection is opened lazily and
// re-dialed after a failed publish.
type Publisher struct {
	url    string
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

var _ accountSvc.Notifier = (*Publisher)(nil)

// NewPublisher creates a publisher for the broker at url
func NewPublisher(url string, logger *slog.Logger) *Publisher {
	return &Publisher{url: url, logger: logger, now: time.Now}
}

// channel returns an open channel, dialing and declaring the queue if needed.
// Callers hold p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Durable so pending mail survives broker restarts
	if _, err := ch.QueueDeclare(
		NotificationQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare %s: %w", NotificationQueue, err)
	}

	p.conn = conn
	p.ch = ch
	p.logger.Info("connected to broker", "queue", NotificationQueue)
	return ch, nil
}

// reset drops the current connection. Callers hold p.mu.
func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Notify publishes n as a NotificationEvent
func (p *Publisher) Notify(ctx context.Context, n account.Notification) error {
	issuedAt := p.now()
	body, err := json.Marshal(newNotificationEvent(n, issuedAt))
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",                // default exchange
		NotificationQueue, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    issuedAt.UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return fmt.Errorf("publish %s: %w", n.Kind, err)
	}

	p.logger.Debug("notification published",
		"kind", n.Kind,
		"email", n.Email,
	)
	return nil
}

// Close shuts the broker connection down
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
