package contracts

import "context"

// EventPublisher emits audit events to the message broker. Publishing is
// best-effort: callers log failures and never fail the request over them.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}
