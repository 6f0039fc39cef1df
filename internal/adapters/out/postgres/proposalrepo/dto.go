// Package proposalrepo provides data transfer objects and mapping functions
// for proposal persistence.
package proposalrepo

import (
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/proposal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProposalDTO represents the database structure for persisting proposal
// aggregates. The fee breakdown is stored as computed at creation; it is
// never recomputed on load.
type ProposalDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ListingID     uuid.UUID `gorm:"type:uuid;index"`
	SellerID      uuid.UUID `gorm:"type:uuid;index"`
	BuyerID       uuid.UUID `gorm:"type:uuid;index"`
	QuantityKg    int64
	PricePerKg    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Message       string
	ValidUntil    time.Time       `gorm:"index"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(14,2)"`
	PlatformFee   decimal.Decimal `gorm:"type:numeric(12,2)"`
	BookingAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status        int             `gorm:"index"`
}

// TableName specifies the database table name for proposal entities.
func (ProposalDTO) TableName() string {
	return "proposals"
}

// fromDomain converts a proposal domain aggregate to its database
// representation.
func fromDomain(aggregate *proposal.Proposal) ProposalDTO {
	fees := aggregate.Fees()

	return ProposalDTO{
		ID:            aggregate.ID().Bytes(),
		ListingID:     aggregate.ListingID().Bytes(),
		SellerID:      aggregate.SellerID().Bytes(),
		BuyerID:       aggregate.BuyerID().Bytes(),
		QuantityKg:    aggregate.Quantity().Kilograms(),
		PricePerKg:    aggregate.PricePerKg().Decimal(),
		Message:       aggregate.Message(),
		ValidUntil:    aggregate.ValidUntil(),
		TotalPrice:    fees.Total.Decimal(),
		PlatformFee:   fees.PlatformFee.Decimal(),
		BookingAmount: fees.BookingAmount.Decimal(),
		Status:        int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to a proposal domain aggregate using
// RestoreProposal.
func toDomain(dto ProposalDTO) (*proposal.Proposal, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	listingID, err := kernel.UUIDFromBytes(dto.ListingID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	quantity, err := kernel.QuantityFromKilograms(dto.QuantityKg)
	if err != nil {
		return nil, err
	}

	pricePerKg, err := kernel.NewMoneyFromDecimal(dto.PricePerKg)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoneyFromDecimal(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	platformFee, err := kernel.NewMoneyFromDecimal(dto.PlatformFee)
	if err != nil {
		return nil, err
	}

	bookingAmount, err := kernel.NewMoneyFromDecimal(dto.BookingAmount)
	if err != nil {
		return nil, err
	}

	return proposal.RestoreProposal(
		id,
		listingID,
		sellerID,
		buyerID,
		quantity,
		pricePerKg,
		dto.Message,
		dto.ValidUntil,
		proposal.Fees{
			Total:         total,
			PlatformFee:   platformFee,
			BookingAmount: bookingAmount,
		},
		proposal.Status(dto.Status),
	)
}
