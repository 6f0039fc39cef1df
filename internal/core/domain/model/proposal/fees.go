package proposal

import (
	"agromarket/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Fee constants. The platform fee is proportional to normalized weight; the
// booking amount is a fixed fraction of the proposed total.
var (
	platformFeePerKg = decimal.RequireFromString("0.20")
	bookingFraction  = decimal.RequireFromString("0.10")
)

// Fees are the charges derived from a proposal's quantity and price. They
// are computed exactly once, at proposal creation or modification, by
// ComputeFees — never recomputed as a side effect of persistence or
// anywhere else.
type Fees struct {
	// Total is quantity × proposed price per kilogram.
	Total kernel.Money
	// PlatformFee is the marketplace charge, proportional to weight.
	PlatformFee kernel.Money
	// BookingAmount is the fraction of the total due at booking.
	BookingAmount kernel.Money
}

// ComputeFees derives the fees for a proposed quantity and unit price.
// It is a pure function: same inputs, same fees, no clock, no storage.
func ComputeFees(quantity kernel.Quantity, pricePerKg kernel.Money) Fees {
	total := pricePerKg.MulQuantity(quantity)

	platformFee, _ := kernel.NewMoneyFromDecimal(
		platformFeePerKg.Mul(decimal.NewFromInt(quantity.Kilograms())))

	return Fees{
		Total:         total,
		PlatformFee:   platformFee,
		BookingAmount: total.Fraction(bookingFraction),
	}
}
