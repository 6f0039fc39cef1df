// Package queries contains read-side operations of the CQRS split. Query
// handlers bypass the domain model and read projection rows straight from
// the database.
package queries

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrGetAvailableListingsQueryIsNotConstructed = errors.New(
	"GetAvailableListingsQuery must be created via NewGetAvailableListingsQuery constructor",
)

// GetAvailableListingsQuery retrieves every listing a buyer can still order
// from: listings with remaining unreserved quantity that have not been sold
// or withdrawn.
type GetAvailableListingsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableListingsQuery creates a query for purchasable listings.
func NewGetAvailableListingsQuery() GetAvailableListingsQuery {
	return GetAvailableListingsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableListingsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableListingsQueryIsNotConstructed)
}

// GetAvailableListingsQueryResponse is the market-browse read model. The
// available quantity is derived in the query, not stored.
type GetAvailableListingsQueryResponse struct {
	ID            kernel.UUID
	SellerID      kernel.UUID
	Crop          string
	Grade         string
	PickupAddress string
	QuantityKg    int64
	ReservedKg    int64
	AvailableKg   int64
	PricePerKg    string
	Status        string
}
