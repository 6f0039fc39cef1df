package ports

import (
	"context"

	"agromarket/internal/core/application/events"
)

// EventPublisher delivers integration events to the message broker.
// Handlers publish after commit; a failed publish is logged and never rolls
// back the already-committed transaction.
type EventPublisher interface {
	// Publish sends the event. Implementations route by the event's type name.
	Publish(ctx context.Context, event events.DomainEvent) error

	// Close releases the broker connection.
	Close() error
}
