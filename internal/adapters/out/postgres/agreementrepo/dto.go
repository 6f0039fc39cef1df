// Package agreementrepo provides data transfer objects and mapping functions
// for agreement persistence. Agreements are one-to-one with orders; the
// unique index on order_id is what makes a duplicate signing attempt fail at
// the database rather than racing past a read check.
package agreementrepo

import (
	"time"

	"agromarket/internal/core/domain/model/agreement"
	"agromarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgreementDTO represents the database structure for persisting agreement
// aggregates. The advance/final split is nullable because it only exists
// once the seller has signed.
type AgreementDTO struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID        `gorm:"type:uuid;uniqueIndex"`
	SellerID            uuid.UUID        `gorm:"type:uuid;index"`
	BuyerID             uuid.UUID        `gorm:"type:uuid;index"`
	OrderTotal          decimal.Decimal  `gorm:"type:numeric(14,2)"`
	AdvanceAmount       *decimal.Decimal `gorm:"type:numeric(14,2)"`
	FinalAmount         *decimal.Decimal `gorm:"type:numeric(14,2)"`
	SellerSignedAt      *time.Time
	BuyerSignedAt       *time.Time
	SellerTermsAccepted bool
	BuyerTermsAccepted  bool
	Status              int `gorm:"index"`
}

// TableName specifies the database table name for agreement entities.
func (AgreementDTO) TableName() string {
	return "agreements"
}

// fromDomain converts an agreement domain aggregate to its database
// representation.
func fromDomain(aggregate *agreement.Agreement) AgreementDTO {
	var advanceAmount, finalAmount *decimal.Decimal
	if aggregate.SellerSignedAt() != nil {
		advance := aggregate.AdvanceAmount().Decimal()
		final := aggregate.FinalAmount().Decimal()
		advanceAmount = &advance
		finalAmount = &final
	}

	return AgreementDTO{
		ID:                  aggregate.ID().Bytes(),
		OrderID:             aggregate.OrderID().Bytes(),
		SellerID:            aggregate.SellerID().Bytes(),
		BuyerID:             aggregate.BuyerID().Bytes(),
		OrderTotal:          aggregate.OrderTotal().Decimal(),
		AdvanceAmount:       advanceAmount,
		FinalAmount:         finalAmount,
		SellerSignedAt:      aggregate.SellerSignedAt(),
		BuyerSignedAt:       aggregate.BuyerSignedAt(),
		SellerTermsAccepted: aggregate.SellerTermsAccepted(),
		BuyerTermsAccepted:  aggregate.BuyerTermsAccepted(),
		Status:              int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to an agreement domain aggregate using
// RestoreAgreement.
func toDomain(dto AgreementDTO) (*agreement.Agreement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
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

	orderTotal, err := kernel.NewMoneyFromDecimal(dto.OrderTotal)
	if err != nil {
		return nil, err
	}

	var advanceAmount, finalAmount kernel.Money
	if dto.SellerSignedAt != nil && dto.AdvanceAmount != nil && dto.FinalAmount != nil {
		advanceAmount, err = kernel.NewMoneyFromDecimal(*dto.AdvanceAmount)
		if err != nil {
			return nil, err
		}
		finalAmount, err = kernel.NewMoneyFromDecimal(*dto.FinalAmount)
		if err != nil {
			return nil, err
		}
	}

	return agreement.RestoreAgreement(
		id,
		orderID,
		sellerID,
		buyerID,
		orderTotal,
		advanceAmount,
		finalAmount,
		dto.SellerSignedAt,
		dto.BuyerSignedAt,
		dto.SellerTermsAccepted,
		dto.BuyerTermsAccepted,
		agreement.Status(dto.Status),
	)
}
