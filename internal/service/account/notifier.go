package account

import (
	"context"
	"log/slog"

	"nalevel/internal/domain/models/account"
	accountSvc "nalevel/internal/domain/services/account"
)

// logNotifier stands in for email delivery. The token itself is only
// written at debug level.
type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that only logs
func NewLogNotifier(logger *slog.Logger) accountSvc.Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(ctx context.Context, msg account.Notification) error {
	n.logger.Info("notification issued",
		"kind", msg.Kind,
		"email", msg.Email,
		"expires_at", msg.ExpiresAt,
	)
	n.logger.Debug("notification token",
		"kind", msg.Kind,
		"email", msg.Email,
		"token", msg.Token,
	)
	return nil
}
