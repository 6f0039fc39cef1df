package ports

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/proposal"
)

// ProposalRepository defines the persistence contract for proposal
// aggregates.
type ProposalRepository interface {
	// Add persists a new proposal aggregate to storage.
	Add(ctx context.Context, aggregate *proposal.Proposal) error

	// TransitionStatus atomically moves the proposal from one status to
	// another. The expected current status is part of the update's
	// predicate; a decision that lost a race returns a conflict instead of
	// overwriting it.
	TransitionStatus(ctx context.Context, id kernel.UUID, from, to proposal.Status) error

	// Get retrieves a proposal aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*proposal.Proposal, error)

	// GetExpiredPending retrieves pending proposals whose validity deadline
	// lies before the given instant. Used by the expiry sweep.
	GetExpiredPending(ctx context.Context, now time.Time) ([]*proposal.Proposal, error)
}
