package queries

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrGetParticipantOrdersQueryIsNotConstructed = errors.New(
	"GetParticipantOrdersQuery must be created via NewGetParticipantOrdersQuery constructor",
)

// GetParticipantOrdersQuery retrieves the uncompleted orders a subject takes
// part in, whether as seller, buyer, or assigned carrier.
type GetParticipantOrdersQuery struct {
	subjectID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParticipantOrdersQuery creates a query for the subject's open orders.
func NewGetParticipantOrdersQuery(subjectID kernel.UUID) (GetParticipantOrdersQuery, error) {
	if err := subjectID.Validate(); err != nil {
		return GetParticipantOrdersQuery{}, err
	}

	return GetParticipantOrdersQuery{
		subjectID: subjectID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParticipantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetParticipantOrdersQueryIsNotConstructed)
}

// SubjectID returns the participant whose orders are requested.
func (q GetParticipantOrdersQuery) SubjectID() kernel.UUID {
	return q.subjectID
}

// GetParticipantOrdersQueryResponse is the order-tracking read model.
// CarrierID is nil until a carrier claims the order.
type GetParticipantOrdersQueryResponse struct {
	ID            kernel.UUID
	ListingID     kernel.UUID
	SellerID      kernel.UUID
	BuyerID       kernel.UUID
	CarrierID     *kernel.UUID
	QuantityKg    int64
	PricePerKg    string
	TotalPrice    string
	Status        string
	PaymentStatus string
}
