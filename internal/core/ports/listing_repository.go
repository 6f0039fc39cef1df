// Package ports defines the persistence and messaging contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
)

// ListingRepository defines the persistence contract for listing aggregates.
//
// The inventory counters are never mutated through Update: Reserve, Release,
// and Settle are each implemented as a single conditional update so that two
// concurrent commands can never overcommit the same stock. A conditional
// update that matches no row fails with a conflict (or an insufficient-stock
// error carrying the remaining quantity) and leaves the counters untouched.
type ListingRepository interface {
	// Add persists a new listing aggregate to storage.
	Add(ctx context.Context, aggregate *listing.Listing) error

	// Update persists changes to the listing's descriptive fields. Inventory
	// counters and status are excluded; use the conditional operations.
	Update(ctx context.Context, aggregate *listing.Listing) error

	// Get retrieves a listing aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error)

	// Reserve atomically increases the reserved quantity by the given weight,
	// precondition reserved + quantity <= total. On failure it returns an
	// InsufficientStockError naming the remaining available quantity.
	Reserve(ctx context.Context, id kernel.UUID, quantity kernel.Quantity) error

	// Release atomically decreases the reserved quantity by the given weight,
	// precondition reserved >= quantity. Draining the reservation returns the
	// listing to Available.
	Release(ctx context.Context, id kernel.UUID, quantity kernel.Quantity) error

	// Settle atomically consumes the given weight from both the total and the
	// reserved quantity, precondition reserved >= quantity. A listing settled
	// to zero total becomes Sold.
	Settle(ctx context.Context, id kernel.UUID, quantity kernel.Quantity) error
}
