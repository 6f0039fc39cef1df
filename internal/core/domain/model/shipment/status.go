package shipment

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Status represents the delivery progress of a claimed shipment.
//
// State transitions:
//
//	Assigned ──> PickedUp ──> InTransit ──> Delivered
//	    │            │            │
//	    └────────────┴────────────┴──> Failed
//
// Delivered and Failed are terminal. A shipment only exists once a carrier
// has won the exclusive claim, so Assigned is the initial state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Assigned means a carrier won the claim and is headed for pickup.
	Assigned

	// PickedUp means the goods left the seller's pickup address.
	PickedUp

	// InTransit means the goods are on the road.
	InTransit

	// Delivered means the carrier confirmed handoff to the buyer. Terminal.
	Delivered

	// Failed means delivery was abandoned from a live stage. Terminal.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid shipment status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid shipment status", s))
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

// IsLive reports whether the shipment can still progress or fail.
func (s Status) IsLive() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}
