package shipmentrepo

import (
	"context"
	"errors"
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/shipment"
	"agromarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database. The unique index on order_id
// rejects a second shipment for the same order.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("shipment",
				"a shipment already exists for order "+aggregate.OrderID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves a stage change. The expected current status is part of the
// UPDATE's predicate, so a change raced past its precondition matches zero
// rows and surfaces a conflict instead of overwriting the winner's stage
// timestamps.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment, from shipment.Status) error {
	if err := errors.Join(aggregate.Validate(), from.Validate()); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(from)).
		Select("status", "picked_up_at", "delivered_at", "failed_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.diagnoseUpdateMiss(ctx, aggregate, from)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// diagnoseUpdateMiss reads the row a failed update targeted and turns the
// miss into not-found or a conflict naming both statuses.
func (r *GormShipmentRepository) diagnoseUpdateMiss(ctx context.Context, aggregate *shipment.Shipment, from shipment.Status) error {
	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", aggregate.ID().Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
		}
		return err
	}

	return errs.NewConflictError("shipment",
		fmt.Sprintf("cannot move from %s to %s, current status is %s",
			from, aggregate.Status(), shipment.Status(dto.Status)))
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the shipment attached to the given order.
func (r *GormShipmentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", "for order "+orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
