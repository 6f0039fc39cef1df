package order

import (
	"errors"
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through a constructor.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a single purchase of part of a listing.
// It exists only after a successful reservation against its listing and
// carries that reservation through negotiation, fulfillment, and settlement
// (or back out through rejection/cancellation, which release it).
//
// Invariants:
//   - totalPrice = quantity × pricePerKg, computed once at construction
//   - status transitions follow the machine defined on Status
//   - every party-driven transition is guarded by the acting subject:
//     the owning seller accepts/rejects/marks ready, the placing buyer
//     cancels, the assigned carrier delivers
//   - at most one carrier is ever assigned, and never overwritten
type Order struct {
	id         kernel.UUID
	listingID  kernel.UUID
	sellerID   kernel.UUID
	buyerID    kernel.UUID
	carrierID  *kernel.UUID
	quantity   kernel.Quantity
	pricePerKg kernel.Money
	totalPrice kernel.Money
	status     Status
	payment    PaymentStatus

	isConstructed bool
}

// NewOrder creates an order in Pending status for the direct purchase path.
// The total price is derived here, once, from quantity and unit price.
func NewOrder(
	id kernel.UUID,
	listingID kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	quantity kernel.Quantity,
	pricePerKg kernel.Money,
) (*Order, error) {
	return newOrder(id, listingID, sellerID, buyerID, quantity, pricePerKg, Pending)
}

// NewAcceptedOrder creates an order directly in Accepted status. Used when an
// order is materialized from an accepted proposal: the seller's acceptance of
// the proposal is the acceptance of the order, so routing it through Pending
// would let the seller back out of a deal they just agreed to while holding
// the reservation.
func NewAcceptedOrder(
	id kernel.UUID,
	listingID kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	quantity kernel.Quantity,
	pricePerKg kernel.Money,
) (*Order, error) {
	return newOrder(id, listingID, sellerID, buyerID, quantity, pricePerKg, Accepted)
}

func newOrder(
	id kernel.UUID,
	listingID kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	quantity kernel.Quantity,
	pricePerKg kernel.Money,
	status Status,
) (*Order, error) {
	o := &Order{
		status:        status,
		payment:       PaymentPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setListingID(listingID),
		o.setParties(sellerID, buyerID),
		o.setQuantity(quantity),
		o.setPricePerKg(pricePerKg),
	); err != nil {
		return nil, err
	}

	o.totalPrice = pricePerKg.MulQuantity(quantity)
	return o, nil
}

// RestoreOrder reconstructs an order from persistence. The stored total is
// trusted as-is; it was computed once at construction and is immutable.
func RestoreOrder(
	id kernel.UUID,
	listingID kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	carrierID *kernel.UUID,
	quantity kernel.Quantity,
	pricePerKg kernel.Money,
	totalPrice kernel.Money,
	status Status,
	payment PaymentStatus,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setListingID(listingID),
		o.setParties(sellerID, buyerID),
		o.setQuantity(quantity),
		o.setPricePerKg(pricePerKg),
		totalPrice.Validate(),
		status.Validate(),
		payment.Validate(),
	); err != nil {
		return nil, err
	}

	if carrierID != nil {
		if err := carrierID.Validate(); err != nil {
			return nil, err
		}
		id := *carrierID
		o.carrierID = &id
	}

	o.totalPrice = totalPrice
	o.status = status
	o.payment = payment
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ListingID returns the listing the order draws from.
func (o *Order) ListingID() kernel.UUID {
	return o.listingID
}

// SellerID returns the listing's owning seller.
func (o *Order) SellerID() kernel.UUID {
	return o.sellerID
}

// BuyerID returns the buyer who placed the order.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// CarrierID returns the assigned carrier, or nil while unassigned.
func (o *Order) CarrierID() *kernel.UUID {
	return o.carrierID
}

// Quantity returns the ordered weight.
func (o *Order) Quantity() kernel.Quantity {
	return o.quantity
}

// PricePerKg returns the agreed unit price.
func (o *Order) PricePerKg() kernel.Money {
	return o.pricePerKg
}

// TotalPrice returns the immutable computed total.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// Status returns the current order status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment progress.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.payment
}

// Accept records the owning seller's acceptance of a pending order.
func (o *Order) Accept(actor kernel.Actor) error {
	if err := o.requireSeller(actor, "accept order"); err != nil {
		return err
	}
	return o.applyTransition(Status.Accept)
}

// Reject records the owning seller's rejection of a pending order. The
// caller is responsible for releasing the order's reservation in the same
// unit of work.
func (o *Order) Reject(actor kernel.Actor) error {
	if err := o.requireSeller(actor, "reject order"); err != nil {
		return err
	}
	return o.applyTransition(Status.Reject)
}

// Cancel records the placing buyer's withdrawal of a pending order. The
// caller releases the reservation in the same unit of work.
func (o *Order) Cancel(actor kernel.Actor) error {
	if actor.Role() != kernel.RoleBuyer || !actor.Is(o.buyerID) {
		return errs.NewNotAuthorizedError(actor.ID().String(), "cancel order")
	}
	return o.applyTransition(Status.Cancel)
}

// MarkReady moves an accepted order to ReadyForPickup. The agreement gate
// (both signatures recorded) is enforced by the command handler, which can
// see the agreement; the aggregate enforces actor and state.
func (o *Order) MarkReady(actor kernel.Actor) error {
	if err := o.requireSeller(actor, "mark order ready"); err != nil {
		return err
	}
	return o.applyTransition(Status.MarkReady)
}

// AssignCarrier records the winning carrier of an exclusive claim and moves
// the order into transit. A second assignment attempt is a conflict, never
// an overwrite; the persistence layer enforces the same rule atomically for
// concurrent claimants.
func (o *Order) AssignCarrier(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	if o.carrierID != nil {
		return errs.NewConflictError("order", "carrier already assigned")
	}

	if err := o.applyTransition(Status.StartTransit); err != nil {
		return err
	}
	o.carrierID = &carrierID
	return nil
}

// Deliver records the assigned carrier's delivery confirmation.
func (o *Order) Deliver(actor kernel.Actor) error {
	if actor.Role() != kernel.RoleCarrier || o.carrierID == nil || !actor.Is(*o.carrierID) {
		return errs.NewNotAuthorizedError(actor.ID().String(), "deliver order")
	}
	return o.applyTransition(Status.Deliver)
}

// Complete finalizes a delivered order after settlement.
func (o *Order) Complete() error {
	return o.applyTransition(Status.Complete)
}

// MarkAdvancePaid records the advance payment due at agreement completion.
func (o *Order) MarkAdvancePaid() error {
	next, err := o.payment.MarkAdvancePaid()
	if err != nil {
		return err
	}
	o.payment = next
	return nil
}

// MarkFullPaid records the final payment due at settlement.
func (o *Order) MarkFullPaid() error {
	next, err := o.payment.MarkFullPaid()
	if err != nil {
		return err
	}
	o.payment = next
	return nil
}

// MarkPaymentFailed records a gateway-reported failure.
func (o *Order) MarkPaymentFailed() error {
	next, err := o.payment.MarkFailed()
	if err != nil {
		return err
	}
	o.payment = next
	return nil
}

func (o *Order) requireSeller(actor kernel.Actor, action string) error {
	if actor.Role() != kernel.RoleSeller || !actor.Is(o.sellerID) {
		return errs.NewNotAuthorizedError(actor.ID().String(), action)
	}
	return nil
}

func (o *Order) applyTransition(transition func(Status) (Status, error)) error {
	next, err := transition(o.status)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	o.listingID = listingID
	return nil
}

func (o *Order) setParties(sellerID, buyerID kernel.UUID) error {
	if err := errors.Join(sellerID.Validate(), buyerID.Validate()); err != nil {
		return err
	}
	if sellerID.IsEqual(buyerID) {
		return errs.NewValueIsInvalidErrorWithCause("buyer",
			fmt.Errorf("buyer and seller are the same subject"))
	}
	o.sellerID = sellerID
	o.buyerID = buyerID
	return nil
}

func (o *Order) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setPricePerKg(pricePerKg kernel.Money) error {
	if err := pricePerKg.Validate(); err != nil {
		return err
	}
	o.pricePerKg = pricePerKg
	return nil
}
