package listing

import (
	"errors"
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// Domain errors for listing operations.
var (
	// ErrListingIsNotConstructed is returned when a Listing was not created
	// through NewListing or RestoreListing.
	ErrListingIsNotConstructed = errors.New("Listing must be created via NewListing constructor")
	// ErrCropIsRequired is returned when creating a listing without a crop name.
	ErrCropIsRequired = errs.NewValueIsRequiredError("crop")
	// ErrPickupAddressIsRequired is returned when creating a listing without a pickup address.
	ErrPickupAddressIsRequired = errs.NewValueIsRequiredError("pickupAddress")
)

// Grade is the declared quality grade of a crop lot.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// Validate checks the grade is one of the declared values.
func (g Grade) Validate() error {
	switch g {
	case GradeA, GradeB, GradeC:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("grade",
			fmt.Errorf("%q is not a valid grade", g))
	}
}

// Listing is the aggregate root for a sellable crop lot. It owns the
// inventory invariant of the whole engine:
//
//	0 ≤ reservedKg ≤ quantityKg, at all times, for all observers
//
// availableKg is derived as quantityKg − reservedKg and never stored.
//
// The aggregate's Reserve/Release/Settle methods express the ledger rules
// for in-memory use and tests; the postgres adapter applies the very same
// post-conditions as single conditional UPDATEs so that concurrent writers
// cannot jointly overcommit stock. Both must agree: the SQL mirrors the
// domain methods' post-conditions exactly.
type Listing struct {
	id            kernel.UUID
	sellerID      kernel.UUID
	crop          string
	grade         Grade
	pickupAddress string
	quantityKg    int64
	reservedKg    int64
	pricePerKg    kernel.Money
	status        Status

	isConstructed bool
}

// NewListing creates a listing in Available status with nothing reserved.
// Quantity arrives as a kernel.Quantity so boundary units (quintal, ton) are
// already normalized to kilograms.
func NewListing(
	id kernel.UUID,
	sellerID kernel.UUID,
	crop string,
	grade Grade,
	pickupAddress string,
	quantity kernel.Quantity,
	pricePerKg kernel.Money,
) (*Listing, error) {
	l := &Listing{
		status:        Available,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setSellerID(sellerID),
		l.setCrop(crop),
		l.setGrade(grade),
		l.setPickupAddress(pickupAddress),
		l.setQuantity(quantity),
		l.setPricePerKg(pricePerKg),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreListing reconstructs a listing from persistence, including its
// reserved portion and status. Quantities arrive as raw kilograms because a
// fully settled listing legitimately holds zero.
func RestoreListing(
	id kernel.UUID,
	sellerID kernel.UUID,
	crop string,
	grade Grade,
	pickupAddress string,
	quantityKg int64,
	reservedKg int64,
	pricePerKg kernel.Money,
	status Status,
) (*Listing, error) {
	l := &Listing{
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setSellerID(sellerID),
		l.setCrop(crop),
		l.setGrade(grade),
		l.setPickupAddress(pickupAddress),
		l.setPricePerKg(pricePerKg),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if quantityKg < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantityKg))
	}
	if reservedKg < 0 || reservedKg > quantityKg {
		return nil, errs.NewValueIsOutOfRangeError("reservedQuantity", reservedKg, 0, quantityKg)
	}

	l.quantityKg = quantityKg
	l.reservedKg = reservedKg
	l.status = status
	return l, nil
}

// Validate ensures the Listing was created through a constructor.
func (l *Listing) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrListingIsNotConstructed
	}
	return nil
}

// IsEqual compares two listings by identifier.
func (l *Listing) IsEqual(other *Listing) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the listing's unique identifier.
func (l *Listing) ID() kernel.UUID {
	return l.id
}

// SellerID returns the owning seller.
func (l *Listing) SellerID() kernel.UUID {
	return l.sellerID
}

// Crop returns the crop name.
func (l *Listing) Crop() string {
	return l.crop
}

// Grade returns the declared quality grade.
func (l *Listing) Grade() Grade {
	return l.grade
}

// PickupAddress returns where the carrier collects the goods.
func (l *Listing) PickupAddress() string {
	return l.pickupAddress
}

// QuantityKg returns the total lot weight still owned by the listing.
func (l *Listing) QuantityKg() int64 {
	return l.quantityKg
}

// ReservedKg returns the committed portion of the lot.
func (l *Listing) ReservedKg() int64 {
	return l.reservedKg
}

// AvailableKg returns the derived uncommitted weight. Never stored.
func (l *Listing) AvailableKg() int64 {
	return l.quantityKg - l.reservedKg
}

// PricePerKg returns the fixed asking price per kilogram.
func (l *Listing) PricePerKg() kernel.Money {
	return l.pricePerKg
}

// Status returns the current listing status.
func (l *Listing) Status() Status {
	return l.status
}

// IsOwnedBy reports whether the given subject is the listing's seller.
func (l *Listing) IsOwnedBy(sellerID kernel.UUID) bool {
	return l.sellerID.IsEqual(sellerID)
}

// Reserve commits quantity kilograms of the lot to a unit of work (an order
// or an accepted proposal). The check and the increment are one step: either
// the post-condition reservedKg+q ≤ quantityKg holds and the reservation is
// applied, or nothing changes and InsufficientStockError names the remaining
// amount.
func (l *Listing) Reserve(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	if err := l.status.ValidateReservable(); err != nil {
		return err
	}

	q := quantity.Kilograms()
	if l.reservedKg+q > l.quantityKg {
		return errs.NewInsufficientStockError(l.id.String(), q, l.AvailableKg())
	}

	l.reservedKg += q
	l.status = Reserved
	return nil
}

// Release returns a previously reserved quantity to the open pool, after a
// rejection or cancellation. Releasing more than is reserved is a conflict:
// it would mean a reservation is being released twice.
func (l *Listing) Release(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}

	q := quantity.Kilograms()
	if q > l.reservedKg {
		return errs.NewConflictError("listing",
			fmt.Sprintf("cannot release %d kg, only %d kg reserved", q, l.reservedKg))
	}

	l.reservedKg -= q
	if l.reservedKg == 0 && l.status == Reserved {
		l.status = Available
	}
	return nil
}

// Settle converts a delivered reservation into permanently consumed stock:
// quantity and reserved drop together, and the listing flips to Sold when
// nothing remains. Only reserved stock can be settled.
func (l *Listing) Settle(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}

	q := quantity.Kilograms()
	if q > l.reservedKg {
		return errs.NewConflictError("listing",
			fmt.Sprintf("cannot settle %d kg, only %d kg reserved", q, l.reservedKg))
	}

	l.quantityKg -= q
	l.reservedKg -= q
	if l.quantityKg == 0 {
		l.status = Sold
	} else if l.reservedKg == 0 && l.status == Reserved {
		l.status = Available
	}
	return nil
}

// Withdraw takes the listing off sale. Forbidden while any reservation is
// live, for the same reason deletion is.
func (l *Listing) Withdraw() error {
	if l.reservedKg > 0 {
		return errs.NewConflictError("listing",
			fmt.Sprintf("cannot withdraw with %d kg reserved", l.reservedKg))
	}
	if l.status == Sold {
		return errs.NewConflictError("listing", "already sold")
	}

	l.status = Unavailable
	return nil
}

// CanBeDeleted reports whether the listing may be removed. Deletion is
// forbidden while reservedKg > 0.
func (l *Listing) CanBeDeleted() bool {
	return l.reservedKg == 0
}

func (l *Listing) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Listing) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	l.sellerID = sellerID
	return nil
}

func (l *Listing) setCrop(crop string) error {
	if crop == "" {
		return ErrCropIsRequired
	}
	l.crop = crop
	return nil
}

func (l *Listing) setGrade(grade Grade) error {
	if err := grade.Validate(); err != nil {
		return err
	}
	l.grade = grade
	return nil
}

func (l *Listing) setPickupAddress(pickupAddress string) error {
	if pickupAddress == "" {
		return ErrPickupAddressIsRequired
	}
	l.pickupAddress = pickupAddress
	return nil
}

func (l *Listing) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	l.quantityKg = quantity.Kilograms()
	return nil
}

func (l *Listing) setPricePerKg(pricePerKg kernel.Money) error {
	if err := pricePerKg.Validate(); err != nil {
		return err
	}
	l.pricePerKg = pricePerKg
	return nil
}
