package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/domain/model/proposal"

	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type marketFixture struct {
	seller  kernel.Actor
	buyer   kernel.Actor
	carrier kernel.Actor
	listing *listing.Listing
}

// newMarketFixture builds a seller, a buyer, a carrier, and an available
// 100 kg listing at 50 per kg owned by the seller.
func newMarketFixture(t *testing.T) marketFixture {
	t.Helper()

	seller, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleSeller)
	require.NoError(t, err)
	buyer, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleBuyer)
	require.NoError(t, err)
	carrier, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCarrier)
	require.NoError(t, err)

	qty, err := kernel.NewQuantity(100, kernel.UnitKilogram)
	require.NoError(t, err)
	price, err := kernel.NewMoneyFromString("50")
	require.NoError(t, err)

	lst, err := listing.NewListing(
		kernel.NewUUID(), seller.ID(), "wheat", listing.GradeA,
		"12 Mill Road", qty, price,
	)
	require.NoError(t, err)

	return marketFixture{seller: seller, buyer: buyer, carrier: carrier, listing: lst}
}

func (f marketFixture) quantityKg(t *testing.T, kg int64) kernel.Quantity {
	t.Helper()

	qty, err := kernel.QuantityFromKilograms(kg)
	require.NoError(t, err)
	return qty
}

// newPendingOrder places a 30 kg order by the fixture's buyer on the
// fixture's listing.
func (f marketFixture) newPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	ord, err := order.NewOrder(
		kernel.NewUUID(), f.listing.ID(), f.seller.ID(), f.buyer.ID(),
		f.quantityKg(t, 30), f.listing.PricePerKg(),
	)
	require.NoError(t, err)
	return ord
}

// newPendingProposal submits a 40 kg proposal at 45 per kg by the fixture's
// buyer, valid until the given deadline.
func (f marketFixture) newPendingProposal(t *testing.T, validUntil time.Time) *proposal.Proposal {
	t.Helper()

	price, err := kernel.NewMoneyFromString("45")
	require.NoError(t, err)

	prop, err := proposal.NewProposal(
		kernel.NewUUID(), f.listing.ID(), f.seller.ID(), f.buyer.ID(),
		f.quantityKg(t, 40), price, "", validUntil, validUntil.Add(-24*time.Hour),
	)
	require.NoError(t, err)
	return prop
}
