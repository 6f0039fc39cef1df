package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order's payment state. Status and the carrier
// assignment are excluded; they only move through TransitionStatus and
// Claim.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("payment_status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// TransitionStatus atomically moves the order from one status to another.
// The expected current status is part of the UPDATE's predicate, so a
// transition that lost a race matches zero rows and surfaces a conflict
// instead of overwriting the winner.
func (r *GormOrderRepository) TransitionStatus(ctx context.Context, id kernel.UUID, from, to order.Status) error {
	if err := errors.Join(id.Validate(), from.Validate(), to.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(from)).
		Update("status", int(to))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.diagnoseTransitionMiss(ctx, id, from, to)
	}

	return nil
}

// Claim atomically assigns a carrier to a ready order and moves it to
// InTransit. The predicate requires the carrier column to still be empty, so
// exactly one of any number of concurrent claimers wins; the rest get a
// conflict naming the order.
func (r *GormOrderRepository) Claim(ctx context.Context, id kernel.UUID, carrierID kernel.UUID) error {
	if err := errors.Join(id.Validate(), carrierID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND carrier_id IS NULL", id.Bytes(), int(order.ReadyForPickup)).
		Updates(map[string]any{
			"carrier_id": carrierID.Bytes(),
			"status":     int(order.InTransit),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var dto OrderDTO
		if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("order", id.String())
			}
			return err
		}

		if dto.CarrierID != nil {
			return errs.NewConflictError("order", "already claimed by another carrier")
		}
		return errs.NewConflictError("order",
			fmt.Sprintf("cannot claim order in status %s", order.Status(dto.Status)))
	}

	return nil
}

// diagnoseTransitionMiss reads the row a failed transition targeted and
// turns the miss into not-found or a conflict naming both statuses.
func (r *GormOrderRepository) diagnoseTransitionMiss(ctx context.Context, id kernel.UUID, from, to order.Status) error {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		return err
	}

	return errs.NewConflictError("order",
		fmt.Sprintf("cannot move from %s to %s, current status is %s",
			from, to, order.Status(dto.Status)))
}
