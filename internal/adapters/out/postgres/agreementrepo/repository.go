package agreementrepo

import (
	"context"
	"errors"
	"fmt"

	"agromarket/internal/core/domain/model/agreement"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAgreementRepository implements AgreementRepository using GORM.
type GormAgreementRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAgreementRepository creates a new GORM agreement repository.
func NewGormAgreementRepository(db *gorm.DB, tracker aggregateTracker) *GormAgreementRepository {
	return &GormAgreementRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new agreement to the database. The unique index on order_id
// rejects a second agreement for the same order; the duplicate surfaces as a
// conflict.
func (r *GormAgreementRepository) Add(ctx context.Context, aggregate *agreement.Agreement) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("agreement",
				"an agreement already exists for order "+aggregate.OrderID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves a signature or closure. The expected current status is part
// of the UPDATE's predicate, so a concurrent double sign matches zero rows
// and surfaces a conflict instead of overwriting the recorded signature.
func (r *GormAgreementRepository) Update(ctx context.Context, aggregate *agreement.Agreement, from agreement.Status) error {
	if err := errors.Join(aggregate.Validate(), from.Validate()); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AgreementDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(from)).
		Select("advance_amount", "final_amount", "seller_signed_at", "buyer_signed_at",
			"seller_terms_accepted", "buyer_terms_accepted", "status").
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
func (r *GormAgreementRepository) diagnoseUpdateMiss(ctx context.Context, aggregate *agreement.Agreement, from agreement.Status) error {
	var dto AgreementDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", aggregate.ID().Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("agreement", aggregate.ID().String())
		}
		return err
	}

	return errs.NewConflictError("agreement",
		fmt.Sprintf("cannot move from %s to %s, current status is %s",
			from, aggregate.Status(), agreement.Status(dto.Status)))
}

// Get retrieves an agreement by ID.
func (r *GormAgreementRepository) Get(ctx context.Context, id kernel.UUID) (*agreement.Agreement, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgreementDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agreement", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the agreement attached to the given order.
func (r *GormAgreementRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*agreement.Agreement, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AgreementDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agreement", "for order "+orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
