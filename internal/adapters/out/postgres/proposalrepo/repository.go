package proposalrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/proposal"
	"agromarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProposalRepository implements ProposalRepository using GORM.
type GormProposalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProposalRepository creates a new GORM proposal repository.
func NewGormProposalRepository(db *gorm.DB, tracker aggregateTracker) *GormProposalRepository {
	return &GormProposalRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new proposal to the database.
func (r *GormProposalRepository) Add(ctx context.Context, aggregate *proposal.Proposal) error {
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

// TransitionStatus atomically moves the proposal from one status to
// another. Every decision on a proposal (accept, reject, withdraw, expire)
// goes through here: the expected current status is part of the UPDATE's
// predicate, so two concurrent decisions on the same proposal resolve to
// exactly one winner and the loser surfaces a conflict instead of
// overwriting it.
func (r *GormProposalRepository) TransitionStatus(ctx context.Context, id kernel.UUID, from, to proposal.Status) error {
	if err := errors.Join(id.Validate(), from.Validate(), to.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ProposalDTO{}).
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

// diagnoseTransitionMiss reads the row a failed transition targeted and
// turns the miss into not-found or a conflict naming both statuses.
func (r *GormProposalRepository) diagnoseTransitionMiss(ctx context.Context, id kernel.UUID, from, to proposal.Status) error {
	var dto ProposalDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("proposal", id.String())
		}
		return err
	}

	return errs.NewConflictError("proposal",
		fmt.Sprintf("cannot move from %s to %s, current status is %s",
			from, to, proposal.Status(dto.Status)))
}

// Get retrieves a proposal by ID.
func (r *GormProposalRepository) Get(ctx context.Context, id kernel.UUID) (*proposal.Proposal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProposalDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("proposal", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetExpiredPending retrieves pending proposals whose validity deadline lies
// before the given instant. Results feed the expiry sweep.
func (r *GormProposalRepository) GetExpiredPending(ctx context.Context, now time.Time) ([]*proposal.Proposal, error) {
	var dtos []ProposalDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND valid_until < ?", int(proposal.Pending), now).Error; err != nil {
		return nil, err
	}

	proposals := make([]*proposal.Proposal, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}

	return proposals, nil
}
