package proposal

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Status represents the lifecycle state of a proposal.
//
// State transitions:
//
//	Pending ──> Accepted   (seller accepts before the deadline, reservation succeeds)
//	   ├──────> Rejected   (seller declines)
//	   ├──────> Withdrawn  (buyer retracts)
//	   └──────> Expired    (validity deadline passes)
//
// All non-Pending states are terminal. A proposal past its deadline is
// treated as expired at the next read regardless of its stored status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the seller has not decided and the
	// deadline has not passed. No stock is reserved while Pending.
	Pending

	// Accepted means the seller agreed and the reservation succeeded; an
	// order was materialized from the proposal.
	Accepted

	// Rejected means the seller declined.
	Rejected

	// Withdrawn means the buyer retracted the proposal.
	Withdrawn

	// Expired means the validity deadline passed before a decision.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Accepted:  "Accepted",
		Rejected:  "Rejected",
		Withdrawn: "Withdrawn",
		Expired:   "Expired",
	}
}

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid proposal status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid proposal status", s))
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

// ValidateDecidable reports whether a decision (accept, reject, withdraw,
// expire) may still be taken.
func (s Status) ValidateDecidable() error {
	if s != Pending {
		return errs.NewConflictError("proposal",
			fmt.Sprintf("already decided: %s", s))
	}
	return nil
}
