package notify

import (
	"context"

	"github.com/kinothek/kinothek/pkg/interfaces"
)

// NoopNotifier drops every notification. It keeps the catalog usable
// when no broker is configured.
type NoopNotifier struct {
	logger interfaces.Logger
}

// NewNoopNotifier creates a notifier that does nothing.
func NewNoopNotifier(logger interfaces.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

// Send drops the notification.
func (n *NoopNotifier) Send(ctx context.Context, subject, body string) error {
	n.logger.Debug("notification dropped", interfaces.String("subject", subject))
	return nil
}
