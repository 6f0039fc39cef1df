package agreement_test

import (
	"testing"
	"time"

	"agromarket/internal/core/domain/model/agreement"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

type agreementFixture struct {
	seller kernel.Actor
	buyer  kernel.Actor
	agr    *agreement.Agreement
}

func newAgreementFixture(t *testing.T, total string) agreementFixture {
	t.Helper()

	seller, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleSeller)
	require.NoError(t, err)
	buyer, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleBuyer)
	require.NoError(t, err)

	orderTotal, err := kernel.NewMoneyFromString(total)
	require.NoError(t, err)

	agr, err := agreement.NewAgreement(
		kernel.NewUUID(), kernel.NewUUID(), seller.ID(), buyer.ID(), orderTotal,
	)
	require.NoError(t, err)

	return agreementFixture{seller: seller, buyer: buyer, agr: agr}
}

func TestNewAgreement(t *testing.T) {
	t.Run("starts pending seller signature", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")

		assert.Equal(t, agreement.PendingSeller, f.agr.Status())
		assert.Nil(t, f.agr.SellerSignedAt())
		assert.Nil(t, f.agr.BuyerSignedAt())
		assert.False(t, f.agr.IsFullySigned())
		require.NoError(t, f.agr.Validate())
	})

	t.Run("rejects identical parties", func(t *testing.T) {
		id := kernel.NewUUID()
		total, _ := kernel.NewMoneyFromString("100")

		_, err := agreement.NewAgreement(kernel.NewUUID(), kernel.NewUUID(), id, id, total)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var agr agreement.Agreement
		require.ErrorIs(t, agr.Validate(), agreement.ErrAgreementIsNotConstructed)
	})
}

func TestAgreement_SignAsSeller(t *testing.T) {
	t.Run("fixes the thirty seventy split", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")

		require.NoError(t, f.agr.SignAsSeller(f.seller, true, testNow))

		assert.Equal(t, agreement.PendingBuyer, f.agr.Status())
		assert.Equal(t, "450.00", f.agr.AdvanceAmount().String())
		assert.Equal(t, "1050.00", f.agr.FinalAmount().String())
		require.NotNil(t, f.agr.SellerSignedAt())
		assert.Equal(t, testNow, *f.agr.SellerSignedAt())
		assert.True(t, f.agr.SellerTermsAccepted())
	})

	t.Run("shares sum exactly to the total on odd amounts", func(t *testing.T) {
		f := newAgreementFixture(t, "99.99")

		require.NoError(t, f.agr.SignAsSeller(f.seller, true, testNow))

		sum := f.agr.AdvanceAmount().Add(f.agr.FinalAmount())
		assert.Equal(t, "99.99", sum.String())
	})

	t.Run("requires accepted terms", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")

		require.ErrorIs(t, f.agr.SignAsSeller(f.seller, false, testNow), errs.ErrValueIsInvalid)
		assert.Equal(t, agreement.PendingSeller, f.agr.Status())
	})

	t.Run("rejects a non-owner seller", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")
		stranger, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleSeller)

		require.ErrorIs(t, f.agr.SignAsSeller(stranger, true, testNow), errs.ErrNotAuthorized)
	})

	t.Run("double signature is a conflict", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")
		require.NoError(t, f.agr.SignAsSeller(f.seller, true, testNow))

		err := f.agr.SignAsSeller(f.seller, true, testNow.Add(time.Minute))
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, testNow, *f.agr.SellerSignedAt())
	})
}

func TestAgreement_SignAsBuyer(t *testing.T) {
	t.Run("completes after both signatures", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")
		require.NoError(t, f.agr.SignAsSeller(f.seller, true, testNow))

		require.NoError(t, f.agr.SignAsBuyer(f.buyer, true, testNow.Add(time.Hour)))

		assert.Equal(t, agreement.Completed, f.agr.Status())
		assert.True(t, f.agr.IsFullySigned())
		require.NotNil(t, f.agr.BuyerSignedAt())
		assert.True(t, f.agr.BuyerTermsAccepted())
	})

	t.Run("cannot countersign before the seller", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")

		err := f.agr.SignAsBuyer(f.buyer, true, testNow)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, agreement.PendingSeller, f.agr.Status())
	})

	t.Run("rejects a non-party buyer", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")
		require.NoError(t, f.agr.SignAsSeller(f.seller, true, testNow))
		stranger, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleBuyer)

		require.ErrorIs(t, f.agr.SignAsBuyer(stranger, true, testNow), errs.ErrNotAuthorized)
	})
}

func TestAgreement_Cancel(t *testing.T) {
	t.Run("either party may cancel an open agreement", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")

		require.NoError(t, f.agr.Cancel(f.buyer))
		assert.Equal(t, agreement.Cancelled, f.agr.Status())
	})

	t.Run("strangers may not cancel", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")
		stranger, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleBuyer)

		require.ErrorIs(t, f.agr.Cancel(stranger), errs.ErrNotAuthorized)
	})

	t.Run("cancelling a closed agreement is a conflict", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")
		require.NoError(t, f.agr.Cancel(f.seller))

		require.ErrorIs(t, f.agr.Cancel(f.buyer), errs.ErrConflict)
	})
}

func TestRestoreAgreement(t *testing.T) {
	t.Run("round-trips a seller-signed agreement", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")
		require.NoError(t, f.agr.SignAsSeller(f.seller, true, testNow))

		restored, err := agreement.RestoreAgreement(
			f.agr.ID(), f.agr.OrderID(), f.agr.SellerID(), f.agr.BuyerID(),
			f.agr.OrderTotal(), f.agr.AdvanceAmount(), f.agr.FinalAmount(),
			f.agr.SellerSignedAt(), nil, true, false, agreement.PendingBuyer,
		)
		require.NoError(t, err)

		assert.Equal(t, agreement.PendingBuyer, restored.Status())
		assert.Equal(t, "450.00", restored.AdvanceAmount().String())
		assert.Equal(t, "1050.00", restored.FinalAmount().String())
		assert.True(t, restored.SellerTermsAccepted())
		assert.False(t, restored.BuyerTermsAccepted())
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		f := newAgreementFixture(t, "1500.00")

		_, err := agreement.RestoreAgreement(
			f.agr.ID(), f.agr.OrderID(), f.agr.SellerID(), f.agr.BuyerID(),
			f.agr.OrderTotal(), kernel.Money{}, kernel.Money{},
			nil, nil, false, false, agreement.Unknown,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
