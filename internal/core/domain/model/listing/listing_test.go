package listing_test

import (
	"testing"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListing(t *testing.T, kg int64) *listing.Listing {
	t.Helper()

	qty, err := kernel.QuantityFromKilograms(kg)
	require.NoError(t, err)
	price, err := kernel.NewMoneyFromString("50")
	require.NoError(t, err)

	l, err := listing.NewListing(
		kernel.NewUUID(), kernel.NewUUID(),
		"wheat", listing.GradeA, "Plot 4, Nashik Road",
		qty, price,
	)
	require.NoError(t, err)
	return l
}

func mustQty(t *testing.T, kg int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.QuantityFromKilograms(kg)
	require.NoError(t, err)
	return q
}

func TestNewListing(t *testing.T) {
	t.Run("starts available with nothing reserved", func(t *testing.T) {
		l := newTestListing(t, 100)

		assert.Equal(t, listing.Available, l.Status())
		assert.Equal(t, int64(100), l.QuantityKg())
		assert.Equal(t, int64(0), l.ReservedKg())
		assert.Equal(t, int64(100), l.AvailableKg())
		require.NoError(t, l.Validate())
	})

	t.Run("rejects missing crop", func(t *testing.T) {
		qty := mustQty(t, 10)
		price, _ := kernel.NewMoneyFromString("50")
		_, err := listing.NewListing(kernel.NewUUID(), kernel.NewUUID(),
			"", listing.GradeA, "somewhere", qty, price)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects invalid grade", func(t *testing.T) {
		qty := mustQty(t, 10)
		price, _ := kernel.NewMoneyFromString("50")
		_, err := listing.NewListing(kernel.NewUUID(), kernel.NewUUID(),
			"wheat", listing.Grade("Z"), "somewhere", qty, price)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var l listing.Listing
		require.ErrorIs(t, l.Validate(), listing.ErrListingIsNotConstructed)
	})
}

func TestListing_Reserve(t *testing.T) {
	t.Run("reserves within capacity", func(t *testing.T) {
		l := newTestListing(t, 100)

		require.NoError(t, l.Reserve(mustQty(t, 60)))

		assert.Equal(t, int64(60), l.ReservedKg())
		assert.Equal(t, int64(40), l.AvailableKg())
		assert.Equal(t, listing.Reserved, l.Status())
	})

	t.Run("second reservation beyond capacity fails with remaining amount", func(t *testing.T) {
		l := newTestListing(t, 100)
		require.NoError(t, l.Reserve(mustQty(t, 60)))

		err := l.Reserve(mustQty(t, 60))

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		var stockErr *errs.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(40), stockErr.AvailableKg)
		assert.Equal(t, int64(60), stockErr.RequestedKg)

		// Failed reservation has no side effects.
		assert.Equal(t, int64(60), l.ReservedKg())
	})

	t.Run("reserving the full lot is allowed", func(t *testing.T) {
		l := newTestListing(t, 100)

		require.NoError(t, l.Reserve(mustQty(t, 100)))
		assert.Equal(t, int64(0), l.AvailableKg())
	})

	t.Run("withdrawn listing is not reservable", func(t *testing.T) {
		l := newTestListing(t, 100)
		require.NoError(t, l.Withdraw())

		err := l.Reserve(mustQty(t, 10))
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	// Invariant: 0 ≤ reserved ≤ quantity after every operation.
	t.Run("invariant holds across mixed operations", func(t *testing.T) {
		l := newTestListing(t, 100)

		require.NoError(t, l.Reserve(mustQty(t, 30)))
		require.NoError(t, l.Reserve(mustQty(t, 30)))
		require.NoError(t, l.Release(mustQty(t, 30)))
		require.NoError(t, l.Reserve(mustQty(t, 70)))
		require.Error(t, l.Reserve(mustQty(t, 1)))

		assert.GreaterOrEqual(t, l.ReservedKg(), int64(0))
		assert.LessOrEqual(t, l.ReservedKg(), l.QuantityKg())
	})
}

func TestListing_Release(t *testing.T) {
	t.Run("release restores availability", func(t *testing.T) {
		l := newTestListing(t, 100)
		require.NoError(t, l.Reserve(mustQty(t, 30)))

		require.NoError(t, l.Release(mustQty(t, 30)))

		assert.Equal(t, int64(0), l.ReservedKg())
		assert.Equal(t, listing.Available, l.Status())
	})

	t.Run("releasing more than reserved is a conflict", func(t *testing.T) {
		l := newTestListing(t, 100)
		require.NoError(t, l.Reserve(mustQty(t, 30)))
		require.NoError(t, l.Release(mustQty(t, 30)))

		err := l.Release(mustQty(t, 30))
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("partial release keeps listing reserved", func(t *testing.T) {
		l := newTestListing(t, 100)
		require.NoError(t, l.Reserve(mustQty(t, 60)))

		require.NoError(t, l.Release(mustQty(t, 20)))

		assert.Equal(t, int64(40), l.ReservedKg())
		assert.Equal(t, listing.Reserved, l.Status())
	})
}

func TestListing_Settle(t *testing.T) {
	t.Run("settlement consumes quantity and reservation together", func(t *testing.T) {
		l := newTestListing(t, 100)
		require.NoError(t, l.Reserve(mustQty(t, 60)))

		require.NoError(t, l.Settle(mustQty(t, 60)))

		assert.Equal(t, int64(40), l.QuantityKg())
		assert.Equal(t, int64(0), l.ReservedKg())
		assert.Equal(t, listing.Available, l.Status())
	})

	t.Run("settling the last kilogram flips to Sold", func(t *testing.T) {
		l := newTestListing(t, 100)
		require.NoError(t, l.Reserve(mustQty(t, 100)))

		require.NoError(t, l.Settle(mustQty(t, 100)))

		assert.Equal(t, int64(0), l.QuantityKg())
		assert.Equal(t, listing.Sold, l.Status())
	})

	t.Run("settling unreserved stock is a conflict", func(t *testing.T) {
		l := newTestListing(t, 100)

		err := l.Settle(mustQty(t, 10))
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestListing_Withdraw(t *testing.T) {
	t.Run("withdraw forbidden while reserved", func(t *testing.T) {
		l := newTestListing(t, 100)
		require.NoError(t, l.Reserve(mustQty(t, 10)))

		require.ErrorIs(t, l.Withdraw(), errs.ErrConflict)
		assert.False(t, l.CanBeDeleted())
	})

	t.Run("withdraw allowed when nothing reserved", func(t *testing.T) {
		l := newTestListing(t, 100)

		require.NoError(t, l.Withdraw())
		assert.Equal(t, listing.Unavailable, l.Status())
		assert.True(t, l.CanBeDeleted())
	})
}

func TestRestoreListing(t *testing.T) {
	t.Run("restores persisted state", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromString("50")
		l, err := listing.RestoreListing(
			kernel.NewUUID(), kernel.NewUUID(),
			"onion", listing.GradeB, "Gate 2, Lasalgaon",
			80, 30, price, listing.Reserved,
		)

		require.NoError(t, err)
		assert.Equal(t, int64(50), l.AvailableKg())
	})

	t.Run("settled-out listing restores with zero quantity", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromString("50")
		l, err := listing.RestoreListing(
			kernel.NewUUID(), kernel.NewUUID(),
			"onion", listing.GradeB, "Gate 2, Lasalgaon",
			0, 0, price, listing.Sold,
		)

		require.NoError(t, err)
		assert.Equal(t, listing.Sold, l.Status())
	})

	t.Run("rejects reserved beyond quantity", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromString("50")
		_, err := listing.RestoreListing(
			kernel.NewUUID(), kernel.NewUUID(),
			"onion", listing.GradeB, "Gate 2, Lasalgaon",
			80, 90, price, listing.Reserved,
		)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
