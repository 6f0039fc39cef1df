package ports

import (
	"context"

	"agromarket/internal/core/domain/model/agreement"
	"agromarket/internal/core/domain/model/kernel"
)

// AgreementRepository defines the persistence contract for agreement
// aggregates. Agreements are one-to-one with orders, so lookups by order are
// the common path.
type AgreementRepository interface {
	// Add persists a new agreement aggregate to storage. Adding a second
	// agreement for the same order is a conflict.
	Add(ctx context.Context, aggregate *agreement.Agreement) error

	// Update persists a signature or closure, conditional on the stored
	// status still being the one the change was computed from. A raced
	// update returns a conflict so signature timestamps are written exactly
	// once.
	Update(ctx context.Context, aggregate *agreement.Agreement, from agreement.Status) error

	// Get retrieves an agreement aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*agreement.Agreement, error)

	// GetByOrderID retrieves the agreement attached to the given order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*agreement.Agreement, error)
}
