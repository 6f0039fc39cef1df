package listingrepo

import (
	"context"
	"errors"
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
	"agromarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormListingRepository implements ListingRepository using GORM.
type GormListingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormListingRepository creates a new GORM listing repository.
func NewGormListingRepository(db *gorm.DB, tracker aggregateTracker) *GormListingRepository {
	return &GormListingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new listing to the database.
func (r *GormListingRepository) Add(ctx context.Context, aggregate *listing.Listing) error {
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

// Update saves the descriptive fields of an existing listing. The inventory
// counters and the status stay untouched: they only move through the
// conditional operations below.
func (r *GormListingRepository) Update(ctx context.Context, aggregate *listing.Listing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ListingDTO{}).
		Where("id = ?", dto.ID).
		Select("crop", "grade", "pickup_address", "price_per_kg").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("listing", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a listing by ID.
func (r *GormListingRepository) Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ListingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("listing", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Reserve atomically commits quantity kilograms against the listing. The
// precondition reserved + q <= quantity is part of the UPDATE itself, so two
// racing reservations can never both succeed on the last kilograms. A miss is
// diagnosed with a confirming read to name the remaining stock.
func (r *GormListingRepository) Reserve(ctx context.Context, id kernel.UUID, quantity kernel.Quantity) error {
	if err := errors.Join(id.Validate(), quantity.Validate()); err != nil {
		return err
	}

	q := quantity.Kilograms()
	result := r.db.WithContext(ctx).Model(&ListingDTO{}).
		Where("id = ? AND status IN ? AND reserved_kg + ? <= quantity_kg",
			id.Bytes(), []int{int(listing.Available), int(listing.Reserved)}, q).
		Updates(map[string]any{
			"reserved_kg": gorm.Expr("reserved_kg + ?", q),
			"status":      int(listing.Reserved),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.diagnoseReserveMiss(ctx, id, q)
	}

	return nil
}

// Release atomically returns quantity kilograms to the open pool. Draining
// the last reserved kilogram flips the listing back to Available.
func (r *GormListingRepository) Release(ctx context.Context, id kernel.UUID, quantity kernel.Quantity) error {
	if err := errors.Join(id.Validate(), quantity.Validate()); err != nil {
		return err
	}

	q := quantity.Kilograms()
	result := r.db.WithContext(ctx).Model(&ListingDTO{}).
		Where("id = ? AND reserved_kg >= ?", id.Bytes(), q).
		Updates(map[string]any{
			"reserved_kg": gorm.Expr("reserved_kg - ?", q),
			"status": gorm.Expr("CASE WHEN reserved_kg - ? = 0 AND status = ? THEN ? ELSE status END",
				q, int(listing.Reserved), int(listing.Available)),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.diagnoseCounterMiss(ctx, id, q, "release")
	}

	return nil
}

// Settle atomically consumes quantity kilograms from both counters after a
// delivery. A listing settled down to zero total becomes Sold.
func (r *GormListingRepository) Settle(ctx context.Context, id kernel.UUID, quantity kernel.Quantity) error {
	if err := errors.Join(id.Validate(), quantity.Validate()); err != nil {
		return err
	}

	q := quantity.Kilograms()
	result := r.db.WithContext(ctx).Model(&ListingDTO{}).
		Where("id = ? AND reserved_kg >= ?", id.Bytes(), q).
		Updates(map[string]any{
			"quantity_kg": gorm.Expr("quantity_kg - ?", q),
			"reserved_kg": gorm.Expr("reserved_kg - ?", q),
			"status": gorm.Expr(
				"CASE WHEN quantity_kg - ? = 0 THEN ? WHEN reserved_kg - ? = 0 AND status = ? THEN ? ELSE status END",
				q, int(listing.Sold), q, int(listing.Reserved), int(listing.Available)),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.diagnoseCounterMiss(ctx, id, q, "settle")
	}

	return nil
}

// diagnoseReserveMiss reads the row a failed reservation targeted and turns
// the miss into the precise domain error: not found, not reservable, or
// insufficient stock with the remaining kilograms.
func (r *GormListingRepository) diagnoseReserveMiss(ctx context.Context, id kernel.UUID, q int64) error {
	var dto ListingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("listing", id.String())
		}
		return err
	}

	if err := listing.Status(dto.Status).ValidateReservable(); err != nil {
		return err
	}

	return errs.NewInsufficientStockError(id.String(), q, dto.QuantityKg-dto.ReservedKg)
}

// diagnoseCounterMiss covers the release and settle misses, where the only
// explanations are a vanished row or a reservation smaller than requested.
func (r *GormListingRepository) diagnoseCounterMiss(ctx context.Context, id kernel.UUID, q int64, action string) error {
	var dto ListingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("listing", id.String())
		}
		return err
	}

	return errs.NewConflictError("listing",
		fmt.Sprintf("cannot %s %d kg, only %d kg reserved", action, q, dto.ReservedKg))
}
