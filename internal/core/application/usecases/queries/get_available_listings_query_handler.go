package queries

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableListingsQueryHandler reads purchasable listings with raw SQL
// for optimal read performance in the CQRS pattern.
type GetAvailableListingsQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableListingsQueryHandler creates a handler for market browse
// queries. Requires a GORM database connection for query execution.
func NewGetAvailableListingsQueryHandler(db *gorm.DB) GetAvailableListingsQueryHandler {
	return GetAvailableListingsQueryHandler{db: db}
}

// Handle executes the query. Returns listings in Available or Reserved
// status with remaining unreserved quantity, sorted by crop then id.
func (h GetAvailableListingsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableListingsQuery,
) ([]GetAvailableListingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	listings := make([]GetAvailableListingsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			seller_id,
			crop,
			grade,
			pickup_address,
			quantity_kg,
			reserved_kg,
			price_per_kg,
			status
		FROM listings
		WHERE status IN (?, ?)
		AND quantity_kg - reserved_kg > 0
		ORDER BY crop, id
	`, listing.Available, listing.Reserved).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableListingsQueryResponse
		var id, sellerID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&sellerID,
			&resp.Crop,
			&resp.Grade,
			&resp.PickupAddress,
			&resp.QuantityKg,
			&resp.ReservedKg,
			&resp.PricePerKg,
			&status,
		)
		if err != nil {
			return nil, err
		}

		listingID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = listingID

		ownerID, idErr := kernel.UUIDFromBytes(sellerID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.SellerID = ownerID

		resp.AvailableKg = resp.QuantityKg - resp.ReservedKg
		resp.Status = listing.Status(status).String()
		listings = append(listings, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}
