// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. Shipments are one-to-one with orders, enforced
// by a unique index on order_id.
package shipmentrepo

import (
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates.
type ShipmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CarrierID   uuid.UUID `gorm:"type:uuid;index"`
	Status      int       `gorm:"index"`
	AssignedAt  time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	FailedAt    *time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment domain aggregate to its database
// representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		CarrierID:   aggregate.CarrierID().Bytes(),
		Status:      int(aggregate.Status()),
		AssignedAt:  aggregate.AssignedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		FailedAt:    aggregate.FailedAt(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate using
// RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		orderID,
		carrierID,
		shipment.Status(dto.Status),
		dto.AssignedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		dto.FailedAt,
	)
}
