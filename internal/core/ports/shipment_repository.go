package ports

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment
// aggregates. Shipments are one-to-one with orders.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage. Adding a second
	// shipment for the same order is a conflict.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists a stage change, conditional on the stored status
	// still being the one the change was computed from. A raced update
	// returns a conflict so stage timestamps are written exactly once.
	Update(ctx context.Context, aggregate *shipment.Shipment, from shipment.Status) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByOrderID retrieves the shipment attached to the given order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error)
}
