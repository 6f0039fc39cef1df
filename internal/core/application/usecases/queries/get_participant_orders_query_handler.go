package queries

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParticipantOrdersQueryHandler reads a participant's open orders with
// raw SQL, matching the subject against all three roles an order carries.
type GetParticipantOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetParticipantOrdersQueryHandler creates a handler for order tracking
// queries. Requires a GORM database connection for query execution.
func NewGetParticipantOrdersQueryHandler(db *gorm.DB) GetParticipantOrdersQueryHandler {
	return GetParticipantOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns every order the subject is seller,
// buyer, or carrier on that has not reached Completed, sorted by id.
func (h GetParticipantOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetParticipantOrdersQuery,
) ([]GetParticipantOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	subject := query.SubjectID().Bytes()
	orders := make([]GetParticipantOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			listing_id,
			seller_id,
			buyer_id,
			carrier_id,
			quantity_kg,
			price_per_kg,
			total_price,
			status,
			payment_status
		FROM orders
		WHERE (seller_id = ? OR buyer_id = ? OR carrier_id = ?)
		AND status != ?
		ORDER BY id
	`, subject, subject, subject, order.Completed).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetParticipantOrdersQueryResponse
		var id, listingID, sellerID, buyerID uuid.UUID
		var carrierID *uuid.UUID
		var status, paymentStatus int

		err = rows.Scan(
			&id,
			&listingID,
			&sellerID,
			&buyerID,
			&carrierID,
			&resp.QuantityKg,
			&resp.PricePerKg,
			&resp.TotalPrice,
			&status,
			&paymentStatus,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ListingID, err = kernel.UUIDFromBytes(listingID[:]); err != nil {
			return nil, err
		}
		if resp.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
			return nil, err
		}
		if resp.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
			return nil, err
		}
		if carrierID != nil {
			carrier, idErr := kernel.UUIDFromBytes(carrierID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CarrierID = &carrier
		}

		resp.Status = order.Status(status).String()
		resp.PaymentStatus = order.PaymentStatus(paymentStatus).String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
