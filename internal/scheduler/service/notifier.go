package service

import "context"

// Notifier is the injected delivery capability. Implementations live in
// internal/scheduler/notify; the dispatcher treats Send as a blocking,
// possibly slow network call and bounds it with a per-recipient timeout.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
