package kernel

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// WeightUnit names a display unit for produce weight. Internally every
// quantity is stored in kilograms; display units convert at the boundary
// and are never stored redundantly.
type WeightUnit string

const (
	// UnitKilogram is the normalized internal unit.
	UnitKilogram WeightUnit = "kg"
	// UnitQuintal is 100 kilograms.
	UnitQuintal WeightUnit = "quintal"
	// UnitTon is 1000 kilograms.
	UnitTon WeightUnit = "ton"
)

// kilogramsPerUnit maps each supported unit to its kilogram factor.
func kilogramsPerUnit(unit WeightUnit) (int64, error) {
	switch unit {
	case UnitKilogram:
		return 1, nil
	case UnitQuintal:
		return 100, nil
	case UnitTon:
		return 1000, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("unit",
			fmt.Errorf("%q is not a supported weight unit", unit))
	}
}

// ErrQuantityIsNotConstructed is returned when validating a zero-value Quantity.
var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError(
	"quantity must be created via NewQuantity or QuantityFromKilograms")

// Quantity is a positive produce weight, normalized to whole kilograms.
// It is an immutable value object; arithmetic returns new instances.
type Quantity struct {
	kilograms int64
}

// NewQuantity creates a Quantity from a value in the given display unit.
// The value must be positive and the unit one of kg, quintal, or ton.
func NewQuantity(value int64, unit WeightUnit) (Quantity, error) {
	factor, err := kilogramsPerUnit(unit)
	if err != nil {
		return Quantity{}, err
	}

	if value <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", value))
	}

	return Quantity{kilograms: value * factor}, nil
}

// QuantityFromKilograms creates a Quantity from an already-normalized value.
// Used when reconstructing aggregates from persistence.
func QuantityFromKilograms(kilograms int64) (Quantity, error) {
	if kilograms <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", kilograms))
	}
	return Quantity{kilograms: kilograms}, nil
}

// Kilograms returns the normalized weight.
func (q Quantity) Kilograms() int64 {
	return q.kilograms
}

// In converts the quantity to the given display unit, truncating toward zero.
// Conversion happens only at the boundary; storage always holds kilograms.
func (q Quantity) In(unit WeightUnit) (int64, error) {
	factor, err := kilogramsPerUnit(unit)
	if err != nil {
		return 0, err
	}
	return q.kilograms / factor, nil
}

// IsEqual compares two quantities by normalized weight.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.kilograms == other.kilograms
}

// Validate returns ErrQuantityIsNotConstructed for the zero value.
func (q Quantity) Validate() error {
	if q.kilograms <= 0 {
		return ErrQuantityIsNotConstructed
	}
	return nil
}

func (q Quantity) String() string {
	return fmt.Sprintf("%d kg", q.kilograms)
}
