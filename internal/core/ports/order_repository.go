package ports

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Status transitions are conditional updates on the expected current status,
// so a transition raced by another command fails with a conflict instead of
// silently double-applying its side effects. The carrier claim additionally
// conditions on the carrier field still being empty, which makes the claim
// exclusive: exactly one carrier wins.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Status is
	// excluded; use TransitionStatus or Claim.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// TransitionStatus atomically moves the order from one status to another,
	// precondition status == from. Zero rows matched is a conflict.
	TransitionStatus(ctx context.Context, id kernel.UUID, from, to order.Status) error

	// Claim atomically assigns the carrier and moves the order from
	// ReadyForPickup to InTransit, precondition carrier unset. Exactly one
	// concurrent claim succeeds; every other claimer gets a conflict.
	Claim(ctx context.Context, id kernel.UUID, carrierID kernel.UUID) error
}
