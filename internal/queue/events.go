// Package queue publishes account events to RabbitMQ for an out-of-process
// mail worker.
package queue

import (
	"time"

	"nalevel/internal/domain/models/account"
)

// NotificationQueue is the durable queue account notifications are routed to
const NotificationQueue = "account.notification"

// NotificationEvent is the message body published for every issued token.
// Times are RFC 3339 in UTC.
type NotificationEvent struct {
	Kind      string    `json:"kind"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	IssuedAt  time.Time `json:"issued_at"`
}

func newNotificationEvent(n account.Notification, issuedAt time.Time) NotificationEvent {
	return NotificationEvent{
		Kind:      string(n.Kind),
		Email:     n.Email,
		Token:     n.Token,
		ExpiresAt: n.ExpiresAt.UTC(),
		IssuedAt:  issuedAt.UTC(),
	}
}
