// Package listingrepo provides data transfer objects and mapping functions for
// listing persistence. It implements the repository pattern for the listing
// aggregate, including the conditional inventory operations that keep
// concurrent reservations from overcommitting stock.
package listingrepo

import (
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListingDTO represents the database structure for persisting listing
// aggregates. The inventory counters quantity_kg and reserved_kg are only
// ever changed through single conditional updates, never through full-row
// writes.
type ListingDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID      uuid.UUID `gorm:"type:uuid;index"`
	Crop          string
	Grade         string
	PickupAddress string
	QuantityKg    int64
	ReservedKg    int64
	PricePerKg    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status        int             `gorm:"index"`
}

// TableName specifies the database table name for listing entities.
func (ListingDTO) TableName() string {
	return "listings"
}

// fromDomain converts a listing domain aggregate to its database
// representation.
func fromDomain(aggregate *listing.Listing) ListingDTO {
	return ListingDTO{
		ID:            aggregate.ID().Bytes(),
		SellerID:      aggregate.SellerID().Bytes(),
		Crop:          aggregate.Crop(),
		Grade:         string(aggregate.Grade()),
		PickupAddress: aggregate.PickupAddress(),
		QuantityKg:    aggregate.QuantityKg(),
		ReservedKg:    aggregate.ReservedKg(),
		PricePerKg:    aggregate.PricePerKg().Decimal(),
		Status:        int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to a listing domain aggregate using
// RestoreListing.
func toDomain(dto ListingDTO) (*listing.Listing, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	pricePerKg, err := kernel.NewMoneyFromDecimal(dto.PricePerKg)
	if err != nil {
		return nil, err
	}

	return listing.RestoreListing(
		id,
		sellerID,
		dto.Crop,
		listing.Grade(dto.Grade),
		dto.PickupAddress,
		dto.QuantityKg,
		dto.ReservedKg,
		pricePerKg,
		listing.Status(dto.Status),
	)
}
