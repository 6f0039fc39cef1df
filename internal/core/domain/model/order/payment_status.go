package order

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// PaymentStatus tracks how far the buyer's payment has progressed. The
// payment gateway itself is external; these are the lifecycle marks the core
// owns: the advance becomes due when the agreement completes, the remainder
// at settlement.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means nothing has been paid.
	PaymentPending

	// PaymentAdvancePaid means the advance portion was settled at agreement
	// completion.
	PaymentAdvancePaid

	// PaymentFullPaid means the remainder was settled at delivery.
	PaymentFullPaid

	// PaymentFailed means the external gateway reported a failure.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:     "Unknown",
		PaymentPending:     "Pending",
		PaymentAdvancePaid: "AdvancePaid",
		PaymentFullPaid:    "FullPaid",
		PaymentFailed:      "Failed",
	}
}

// Validate checks the PaymentStatus is one of the defined values.
func (p PaymentStatus) Validate() error {
	if p == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// MarkAdvancePaid transitions Pending -> AdvancePaid.
func (p PaymentStatus) MarkAdvancePaid() (PaymentStatus, error) {
	if p != PaymentPending {
		return 0, errs.NewConflictError("payment",
			fmt.Sprintf("cannot mark advance paid from status %s", p))
	}
	return PaymentAdvancePaid, nil
}

// MarkFullPaid transitions AdvancePaid -> FullPaid.
func (p PaymentStatus) MarkFullPaid() (PaymentStatus, error) {
	if p != PaymentAdvancePaid {
		return 0, errs.NewConflictError("payment",
			fmt.Sprintf("cannot mark full paid from status %s", p))
	}
	return PaymentFullPaid, nil
}

// MarkFailed records a gateway failure from any non-final payment state.
func (p PaymentStatus) MarkFailed() (PaymentStatus, error) {
	if p == PaymentFullPaid || p == PaymentFailed {
		return 0, errs.NewConflictError("payment",
			fmt.Sprintf("cannot mark failed from status %s", p))
	}
	return PaymentFailed, nil
}
