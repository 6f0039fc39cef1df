package agreement

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// advanceFraction is the share of the order total due as an advance payment
// when the agreement completes. The remainder is due at settlement.
var advanceFraction = decimal.RequireFromString("0.30")

// ErrAgreementIsNotConstructed is returned when an Agreement was not created
// through NewAgreement or RestoreAgreement.
var ErrAgreementIsNotConstructed = errors.New("Agreement must be created via NewAgreement constructor")

// Agreement is the purchase contract attached one-to-one to an accepted
// order. Signing is strictly ordered: the seller signs first, fixing the
// advance/final payment split from the order total, then the buyer
// countersigns, completing the agreement. The split is computed exactly once
// at the seller's signature and never recomputed on load.
type Agreement struct {
	id         kernel.UUID
	orderID    kernel.UUID
	sellerID   kernel.UUID
	buyerID    kernel.UUID
	orderTotal kernel.Money

	advanceAmount       kernel.Money
	finalAmount         kernel.Money
	sellerSignedAt      *time.Time
	buyerSignedAt       *time.Time
	sellerTermsAccepted bool
	buyerTermsAccepted  bool
	status              Status

	isConstructed bool
}

// NewAgreement creates an unsigned agreement for the given order.
func NewAgreement(
	id kernel.UUID,
	orderID kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	orderTotal kernel.Money,
) (*Agreement, error) {
	a := &Agreement{
		status:        PendingSeller,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setParties(sellerID, buyerID),
		a.setOrderTotal(orderTotal),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgreement reconstructs an agreement from persistence. The payment
// split is only present once the seller has signed; before that the amounts
// are left unset.
func RestoreAgreement(
	id kernel.UUID,
	orderID kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	orderTotal kernel.Money,
	advanceAmount kernel.Money,
	finalAmount kernel.Money,
	sellerSignedAt *time.Time,
	buyerSignedAt *time.Time,
	sellerTermsAccepted bool,
	buyerTermsAccepted bool,
	status Status,
) (*Agreement, error) {
	a := &Agreement{
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setParties(sellerID, buyerID),
		a.setOrderTotal(orderTotal),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if sellerSignedAt != nil {
		if err := errors.Join(advanceAmount.Validate(), finalAmount.Validate()); err != nil {
			return nil, err
		}
		a.advanceAmount = advanceAmount
		a.finalAmount = finalAmount
	}

	a.sellerSignedAt = sellerSignedAt
	a.buyerSignedAt = buyerSignedAt
	a.sellerTermsAccepted = sellerTermsAccepted
	a.buyerTermsAccepted = buyerTermsAccepted
	a.status = status
	return a, nil
}

// Validate ensures the Agreement was created through a constructor.
func (a *Agreement) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAgreementIsNotConstructed
	}
	return nil
}

// ID returns the agreement's unique identifier.
func (a *Agreement) ID() kernel.UUID {
	return a.id
}

// OrderID returns the order this agreement is attached to.
func (a *Agreement) OrderID() kernel.UUID {
	return a.orderID
}

// SellerID returns the selling party.
func (a *Agreement) SellerID() kernel.UUID {
	return a.sellerID
}

// BuyerID returns the buying party.
func (a *Agreement) BuyerID() kernel.UUID {
	return a.buyerID
}

// OrderTotal returns the order total the payment split derives from.
func (a *Agreement) OrderTotal() kernel.Money {
	return a.orderTotal
}

// AdvanceAmount returns the advance share. Unset before the seller signs.
func (a *Agreement) AdvanceAmount() kernel.Money {
	return a.advanceAmount
}

// FinalAmount returns the settlement share. Unset before the seller signs.
func (a *Agreement) FinalAmount() kernel.Money {
	return a.finalAmount
}

// SellerSignedAt returns when the seller signed, or nil.
func (a *Agreement) SellerSignedAt() *time.Time {
	return a.sellerSignedAt
}

// BuyerSignedAt returns when the buyer countersigned, or nil.
func (a *Agreement) BuyerSignedAt() *time.Time {
	return a.buyerSignedAt
}

// SellerTermsAccepted reports whether the seller's signature carried the
// terms acknowledgement.
func (a *Agreement) SellerTermsAccepted() bool {
	return a.sellerTermsAccepted
}

// BuyerTermsAccepted reports whether the buyer's countersignature carried
// the terms acknowledgement.
func (a *Agreement) BuyerTermsAccepted() bool {
	return a.buyerTermsAccepted
}

// Status returns the signature state.
func (a *Agreement) Status() Status {
	return a.status
}

// IsFullySigned reports whether both parties have signed.
func (a *Agreement) IsFullySigned() bool {
	return a.status == Completed
}

// SignAsSeller records the seller's signature and fixes the advance/final
// split from the order total. The remainder goes to the final amount so the
// two shares always sum exactly to the total.
func (a *Agreement) SignAsSeller(actor kernel.Actor, termsAccepted bool, now time.Time) error {
	if actor.Role() != kernel.RoleSeller || !actor.Is(a.sellerID) {
		return errs.NewNotAuthorizedError(actor.ID().String(), "sign agreement as seller")
	}
	if a.status != PendingSeller {
		return errs.NewConflictError("agreement", "seller signature already recorded or agreement closed")
	}
	if !termsAccepted {
		return errs.NewValueIsInvalidError("termsAccepted")
	}

	advance := a.orderTotal.Fraction(advanceFraction)
	final, err := a.orderTotal.Sub(advance)
	if err != nil {
		return err
	}

	a.advanceAmount = advance
	a.finalAmount = final
	signedAt := now
	a.sellerSignedAt = &signedAt
	a.sellerTermsAccepted = true
	a.status = PendingBuyer
	return nil
}

// SignAsBuyer records the buyer's countersignature and completes the
// agreement. The seller must have signed first.
func (a *Agreement) SignAsBuyer(actor kernel.Actor, termsAccepted bool, now time.Time) error {
	if actor.Role() != kernel.RoleBuyer || !actor.Is(a.buyerID) {
		return errs.NewNotAuthorizedError(actor.ID().String(), "sign agreement as buyer")
	}
	if a.status == PendingSeller {
		return errs.NewConflictError("agreement", "seller has not signed yet")
	}
	if a.status != PendingBuyer {
		return errs.NewConflictError("agreement", "buyer signature already recorded or agreement closed")
	}
	if !termsAccepted {
		return errs.NewValueIsInvalidError("termsAccepted")
	}

	signedAt := now
	a.buyerSignedAt = &signedAt
	a.buyerTermsAccepted = true
	a.status = Completed
	return nil
}

// Cancel withdraws the agreement on behalf of either party. Whether the
// attached order is still in a cancellable phase is the caller's check.
func (a *Agreement) Cancel(actor kernel.Actor) error {
	if !actor.Is(a.sellerID) && !actor.Is(a.buyerID) {
		return errs.NewNotAuthorizedError(actor.ID().String(), "cancel agreement")
	}
	if a.status.IsFinal() {
		return errs.NewConflictError("agreement", "agreement is already closed")
	}

	a.status = Cancelled
	return nil
}

// MarkBreached records an administratively determined breach.
func (a *Agreement) MarkBreached() error {
	if a.status.IsFinal() && a.status != Completed {
		return errs.NewConflictError("agreement", "agreement is already closed")
	}

	a.status = Breached
	return nil
}

func (a *Agreement) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	a.id = id
	return nil
}

func (a *Agreement) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	a.orderID = orderID
	return nil
}

func (a *Agreement) setParties(sellerID, buyerID kernel.UUID) error {
	if err := errors.Join(sellerID.Validate(), buyerID.Validate()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("parties", err)
	}
	if sellerID.IsEqual(buyerID) {
		return errs.NewValueIsInvalidError("sellerID and buyerID must differ")
	}
	a.sellerID = sellerID
	a.buyerID = buyerID
	return nil
}

func (a *Agreement) setOrderTotal(orderTotal kernel.Money) error {
	if err := orderTotal.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderTotal", err)
	}
	a.orderTotal = orderTotal
	return nil
}
