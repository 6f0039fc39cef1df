package agreement

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Status represents the signature state of a purchase agreement.
//
// State transitions:
//
//	PendingSeller ──> PendingBuyer ──> Completed
//	      │                │
//	      └────────────────┴──> Cancelled
//
// Signatures are strictly ordered: the seller signs first, the buyer
// countersigns. Breached is reserved for dispute handling and is only ever
// set administratively, never by a signature flow.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// PendingSeller means no party has signed yet.
	PendingSeller

	// PendingBuyer means the seller signed and the payment split is fixed;
	// the buyer's countersignature is awaited.
	PendingBuyer

	// Completed means both parties signed. Terminal for the signature flow.
	Completed

	// Cancelled means a party withdrew before completion. Terminal.
	Cancelled

	// Breached marks an administratively recorded breach. Terminal.
	Breached
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		PendingSeller: "PendingSeller",
		PendingBuyer:  "PendingBuyer",
		Completed:     "Completed",
		Cancelled:     "Cancelled",
		Breached:      "Breached",
	}
}

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid agreement status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid agreement status", s))
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

// IsFinal reports whether no further signature transitions are possible.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled || s == Breached
}
