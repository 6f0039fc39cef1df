package listing

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Status represents the lifecycle state of a listing.
//
// State transitions:
//
//	Available ⇄ Reserved ──> Sold
//	     │
//	     └──> Unavailable (seller withdraws, only while nothing is reserved)
//
// Available/Reserved flip as reservations are taken and drained; Sold is
// reached through settlement when the remaining quantity hits zero and is
// final. Status is a value object; the quantity arithmetic that drives the
// transitions lives on the Listing aggregate and, atomically, in the
// persistence layer.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Available means the listing has uncommitted stock and accepts orders
	// and proposals.
	Available

	// Reserved means at least one live reservation is committed against the
	// listing. Further reservations are allowed up to the remaining quantity.
	Reserved

	// Sold means settlement consumed the full quantity. Final.
	Sold

	// Unavailable means the seller withdrew the listing from sale.
	Unavailable
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "Unknown",
		Available:   "Available",
		Reserved:    "Reserved",
		Sold:        "Sold",
		Unavailable: "Unavailable",
	}
}

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid listing status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid listing status", s))
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

// ValidateReservable reports whether new reservations may be taken from the
// current status. Only Available and Reserved listings sell.
func (s Status) ValidateReservable() error {
	if s != Available && s != Reserved {
		return errs.NewConflictError("listing",
			fmt.Sprintf("%s is not open for reservations", s))
	}
	return nil
}
