package interfaces

import "context"

// Notifier delivers a human-readable notification after a successful
// catalog write. Implementations live in the notify package; delivery
// failures are reported as typed delivery errors and never retried here.
type Notifier interface {
	// Send delivers a notification with the given subject and body.
	Send(ctx context.Context, subject, body string) error
}
