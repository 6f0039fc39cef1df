// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Status moves only through conditional updates
// (TransitionStatus, Claim) so that racing commands cannot double-apply a
// transition's side effects.
package orderrepo

import (
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ListingID     uuid.UUID  `gorm:"type:uuid;index"`
	SellerID      uuid.UUID  `gorm:"type:uuid;index"`
	BuyerID       uuid.UUID  `gorm:"type:uuid;index"`
	CarrierID     *uuid.UUID `gorm:"type:uuid;index"`
	QuantityKg    int64
	PricePerKg    decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status        int             `gorm:"index"`
	PaymentStatus int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var carrierID *uuid.UUID
	if id := aggregate.CarrierID(); id != nil {
		raw := id.Bytes()
		carrierID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		ListingID:     aggregate.ListingID().Bytes(),
		SellerID:      aggregate.SellerID().Bytes(),
		BuyerID:       aggregate.BuyerID().Bytes(),
		CarrierID:     carrierID,
		QuantityKg:    aggregate.Quantity().Kilograms(),
		PricePerKg:    aggregate.PricePerKg().Decimal(),
		TotalPrice:    aggregate.TotalPrice().Decimal(),
		Status:        int(aggregate.Status()),
		PaymentStatus: int(aggregate.PaymentStatus()),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	listingID, err := kernel.UUIDFromBytes(dto.ListingID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	var carrierID *kernel.UUID
	if dto.CarrierID != nil {
		cID, carrierErr := kernel.UUIDFromBytes((*dto.CarrierID)[:])
		if carrierErr != nil {
			return nil, carrierErr
		}
		carrierID = &cID
	}

	quantity, err := kernel.QuantityFromKilograms(dto.QuantityKg)
	if err != nil {
		return nil, err
	}

	pricePerKg, err := kernel.NewMoneyFromDecimal(dto.PricePerKg)
	if err != nil {
		return nil, err
	}

	totalPrice, err := kernel.NewMoneyFromDecimal(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		listingID,
		sellerID,
		buyerID,
		carrierID,
		quantity,
		pricePerKg,
		totalPrice,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
	)
}
