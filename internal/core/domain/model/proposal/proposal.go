package proposal

import (
	"errors"
	"fmt"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

var (
	// ErrProposalIsNotConstructed is returned when a Proposal was not created
	// through NewProposal or RestoreProposal.
	ErrProposalIsNotConstructed = errors.New("Proposal must be created via NewProposal constructor")

	// ErrProposalExpired is returned when accepting a proposal whose validity
	// deadline has passed. The proposal transitions to Expired instead of
	// Accepted; no reservation is attempted.
	ErrProposalExpired = errs.NewConflictError("proposal", "validity deadline has passed")
)

// Proposal is the negotiation-path alternative to a direct order: a buyer's
// counter-bid of price and quantity against a listing. No stock is reserved
// at submission; seller acceptance performs the same reservation an order
// does, re-validated against the listing's availability at accept time —
// several proposals may be pending against the same stock, and the first
// acceptance to win the conditional update takes it.
//
// Fees are derived once at construction (and again only on an explicit
// terms change) by the pure ComputeFees function.
type Proposal struct {
	id         kernel.UUID
	listingID  kernel.UUID
	sellerID   kernel.UUID
	buyerID    kernel.UUID
	quantity   kernel.Quantity
	pricePerKg kernel.Money
	message    string
	validUntil time.Time
	fees       Fees
	status     Status

	isConstructed bool
}

// NewProposal creates a pending proposal with fees derived from its terms.
// The validity deadline must be in the future relative to now.
func NewProposal(
	id kernel.UUID,
	listingID kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	quantity kernel.Quantity,
	pricePerKg kernel.Money,
	message string,
	validUntil time.Time,
	now time.Time,
) (*Proposal, error) {
	p := &Proposal{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setListingID(listingID),
		p.setParties(sellerID, buyerID),
		p.setTerms(quantity, pricePerKg),
	); err != nil {
		return nil, err
	}

	if !validUntil.After(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("validUntil",
			fmt.Errorf("deadline %s is not in the future", validUntil.Format(time.RFC3339)))
	}

	p.message = message
	p.validUntil = validUntil
	return p, nil
}

// RestoreProposal reconstructs a proposal from persistence, fees included —
// they were derived once at creation and are not recomputed on load.
func RestoreProposal(
	id kernel.UUID,
	listingID kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	quantity kernel.Quantity,
	pricePerKg kernel.Money,
	message string,
	validUntil time.Time,
	fees Fees,
	status Status,
) (*Proposal, error) {
	p := &Proposal{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setListingID(listingID),
		p.setParties(sellerID, buyerID),
		status.Validate(),
		fees.Total.Validate(),
		fees.PlatformFee.Validate(),
		fees.BookingAmount.Validate(),
	); err != nil {
		return nil, err
	}

	if err := errors.Join(quantity.Validate(), pricePerKg.Validate()); err != nil {
		return nil, err
	}

	p.quantity = quantity
	p.pricePerKg = pricePerKg
	p.message = message
	p.validUntil = validUntil
	p.fees = fees
	p.status = status
	return p, nil
}

// Validate ensures the Proposal was created through a constructor.
func (p *Proposal) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProposalIsNotConstructed
	}
	return nil
}

// ID returns the proposal's unique identifier.
func (p *Proposal) ID() kernel.UUID {
	return p.id
}

// ListingID returns the listing the proposal bids against.
func (p *Proposal) ListingID() kernel.UUID {
	return p.listingID
}

// SellerID returns the listing's owning seller.
func (p *Proposal) SellerID() kernel.UUID {
	return p.sellerID
}

// BuyerID returns the proposing buyer.
func (p *Proposal) BuyerID() kernel.UUID {
	return p.buyerID
}

// Quantity returns the proposed weight.
func (p *Proposal) Quantity() kernel.Quantity {
	return p.quantity
}

// PricePerKg returns the proposed unit price.
func (p *Proposal) PricePerKg() kernel.Money {
	return p.pricePerKg
}

// Message returns the buyer's free-text note.
func (p *Proposal) Message() string {
	return p.message
}

// ValidUntil returns the validity deadline.
func (p *Proposal) ValidUntil() time.Time {
	return p.validUntil
}

// Fees returns the derived fees.
func (p *Proposal) Fees() Fees {
	return p.fees
}

// Status returns the current proposal status.
func (p *Proposal) Status() Status {
	return p.status
}

// IsExpiredAt reports whether the deadline has passed at the given instant.
func (p *Proposal) IsExpiredAt(now time.Time) bool {
	return now.After(p.validUntil)
}

// UpdateTerms lets the proposing buyer revise quantity, price, and deadline
// while the proposal is still pending. Fees are re-derived here, once, and
// nowhere else.
func (p *Proposal) UpdateTerms(
	actor kernel.Actor,
	quantity kernel.Quantity,
	pricePerKg kernel.Money,
	validUntil time.Time,
	now time.Time,
) error {
	if actor.Role() != kernel.RoleBuyer || !actor.Is(p.buyerID) {
		return errs.NewNotAuthorizedError(actor.ID().String(), "update proposal")
	}
	if err := p.status.ValidateDecidable(); err != nil {
		return err
	}
	if !validUntil.After(now) {
		return errs.NewValueIsInvalidErrorWithCause("validUntil",
			fmt.Errorf("deadline %s is not in the future", validUntil.Format(time.RFC3339)))
	}

	if err := p.setTerms(quantity, pricePerKg); err != nil {
		return err
	}
	p.validUntil = validUntil
	return nil
}

// Accept records the owning seller's acceptance at the given instant. If the
// validity deadline has passed the proposal transitions to Expired instead
// and ErrProposalExpired is returned — the caller persists the expiry and
// must not reserve stock. On success the caller performs the reservation
// and materializes the order in the same unit of work.
func (p *Proposal) Accept(actor kernel.Actor, now time.Time) error {
	if err := p.requireSeller(actor, "accept proposal"); err != nil {
		return err
	}
	if err := p.status.ValidateDecidable(); err != nil {
		return err
	}

	if p.IsExpiredAt(now) {
		p.status = Expired
		return ErrProposalExpired
	}

	p.status = Accepted
	return nil
}

// Reject records the owning seller's rejection.
func (p *Proposal) Reject(actor kernel.Actor) error {
	if err := p.requireSeller(actor, "reject proposal"); err != nil {
		return err
	}
	if err := p.status.ValidateDecidable(); err != nil {
		return err
	}

	p.status = Rejected
	return nil
}

// Withdraw records the proposing buyer's retraction.
func (p *Proposal) Withdraw(actor kernel.Actor) error {
	if actor.Role() != kernel.RoleBuyer || !actor.Is(p.buyerID) {
		return errs.NewNotAuthorizedError(actor.ID().String(), "withdraw proposal")
	}
	if err := p.status.ValidateDecidable(); err != nil {
		return err
	}

	p.status = Withdrawn
	return nil
}

// Expire transitions a pending proposal past its deadline to Expired.
// Used by the system sweep; a no-op error for undecided-but-still-valid or
// already-decided proposals.
func (p *Proposal) Expire(now time.Time) error {
	if err := p.status.ValidateDecidable(); err != nil {
		return err
	}
	if !p.IsExpiredAt(now) {
		return errs.NewConflictError("proposal", "validity deadline has not passed")
	}

	p.status = Expired
	return nil
}

func (p *Proposal) requireSeller(actor kernel.Actor, action string) error {
	if actor.Role() != kernel.RoleSeller || !actor.Is(p.sellerID) {
		return errs.NewNotAuthorizedError(actor.ID().String(), action)
	}
	return nil
}

func (p *Proposal) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Proposal) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	p.listingID = listingID
	return nil
}

func (p *Proposal) setParties(sellerID, buyerID kernel.UUID) error {
	if err := errors.Join(sellerID.Validate(), buyerID.Validate()); err != nil {
		return err
	}
	if sellerID.IsEqual(buyerID) {
		return errs.NewValueIsInvalidErrorWithCause("buyer",
			fmt.Errorf("buyer and seller are the same subject"))
	}
	p.sellerID = sellerID
	p.buyerID = buyerID
	return nil
}

func (p *Proposal) setTerms(quantity kernel.Quantity, pricePerKg kernel.Money) error {
	if err := errors.Join(quantity.Validate(), pricePerKg.Validate()); err != nil {
		return err
	}
	p.quantity = quantity
	p.pricePerKg = pricePerKg
	p.fees = ComputeFees(quantity, pricePerKg)
	return nil
}
