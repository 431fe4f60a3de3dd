// Package notify provides delivery backends for meeting notifications.
//
// A backend only delivers; rendering and audit logging happen upstream in the
// dispatch service. Two backends are included: LogNotifier for development
// and testing, and SMTPNotifier for real email delivery.
package notify

import (
	"context"

	"github.com/huddlehq/huddle/pkg/slogx"
)

// LogNotifier writes notifications to the structured log instead of
// delivering them. It is the default backend in development.
type LogNotifier struct{}

// NewLogNotifier creates a log-only delivery backend.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Send logs the notification and reports success.
func (n *LogNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	slogx.FromContext(ctx).Info("notification delivered (log backend)",
		"recipient", recipient,
		"subject", subject,
		"body_len", len(body),
	)
	return nil
}
