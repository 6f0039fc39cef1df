package order

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the negotiation-then-fulfillment workflow in lockstep across seller,
// buyer, and carrier.
//
// State transitions:
//
//	Pending ──> Accepted ──> ReadyForPickup ──> InTransit ──> Delivered ──> Completed
//	   │
//	   ├──> Rejected   (seller rejects, reservation released)
//	   └──> Cancelled  (buyer cancels, reservation released)
//
// Rejected, Cancelled, and Completed are terminal. Every transition is
// applied through a conditional update on the current status, so a
// transition attempted from the wrong state fails with a conflict and has
// no side effects.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the reservation is held, the seller has
	// not yet decided.
	Pending

	// Accepted means the seller agreed to the order. Agreement signatures
	// happen in this phase.
	Accepted

	// Rejected means the seller declined. Terminal; the reservation was released.
	Rejected

	// ReadyForPickup means the goods await a carrier claim.
	ReadyForPickup

	// InTransit means an exclusive carrier claim succeeded and delivery is
	// progressing.
	InTransit

	// Delivered means the carrier confirmed handoff; settlement is due.
	Delivered

	// Cancelled means the buyer withdrew before acceptance. Terminal; the
	// reservation was released.
	Cancelled

	// Completed means settlement consumed the reservation. Terminal.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Accepted:       "Accepted",
		Rejected:       "Rejected",
		ReadyForPickup: "ReadyForPickup",
		InTransit:      "InTransit",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
		Completed:      "Completed",
	}
}

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Cancelled || s == Completed
}

// IsPreDispatch reports whether the order is still in the negotiation phase.
// Agreement cancellation is only legal here.
func (s Status) IsPreDispatch() bool {
	return s == Pending || s == Accepted
}

func (s Status) transition(from, to Status, action string) (Status, error) {
	if s != from {
		return 0, errs.NewConflictError("order",
			fmt.Sprintf("cannot %s from status %s", action, s))
	}
	return to, nil
}

// Accept transitions Pending -> Accepted.
func (s Status) Accept() (Status, error) {
	return s.transition(Pending, Accepted, "accept")
}

// Reject transitions Pending -> Rejected.
func (s Status) Reject() (Status, error) {
	return s.transition(Pending, Rejected, "reject")
}

// Cancel transitions Pending -> Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.transition(Pending, Cancelled, "cancel")
}

// MarkReady transitions Accepted -> ReadyForPickup.
func (s Status) MarkReady() (Status, error) {
	return s.transition(Accepted, ReadyForPickup, "mark ready")
}

// StartTransit transitions ReadyForPickup -> InTransit.
func (s Status) StartTransit() (Status, error) {
	return s.transition(ReadyForPickup, InTransit, "start transit")
}

// Deliver transitions InTransit -> Delivered.
func (s Status) Deliver() (Status, error) {
	return s.transition(InTransit, Delivered, "deliver")
}

// Complete transitions Delivered -> Completed.
func (s Status) Complete() (Status, error) {
	return s.transition(Delivered, Completed, "complete")
}
