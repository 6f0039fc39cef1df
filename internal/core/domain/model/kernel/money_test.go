package kernel_test

import (
	"testing"

	"agromarket/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	t.Run("parses decimal amounts", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("49.50")

		require.NoError(t, err)
		assert.Equal(t, "49.50", m.String())
	})

	t.Run("rounds to two decimal places at construction", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("10.005")

		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("-1.00")
		require.Error(t, err)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("fifty")
		require.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("price times quantity yields exact total", func(t *testing.T) {
		price, err := kernel.NewMoneyFromString("50")
		require.NoError(t, err)
		qty, err := kernel.NewQuantity(30, kernel.UnitKilogram)
		require.NoError(t, err)

		total := price.MulQuantity(qty)
		assert.Equal(t, "1500.00", total.String())
	})

	t.Run("fraction computes advance without drift", func(t *testing.T) {
		total, err := kernel.NewMoneyFromString("1500")
		require.NoError(t, err)

		advance := total.Fraction(decimal.NewFromFloat(0.30))
		final, err := total.Sub(advance)
		require.NoError(t, err)

		assert.Equal(t, "450.00", advance.String())
		assert.Equal(t, "1050.00", final.String())
		assert.True(t, advance.Add(final).IsEqual(total))
	})

	t.Run("subtraction below zero is rejected", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromString("10")
		b, _ := kernel.NewMoneyFromString("20")

		_, err := a.Sub(b)
		require.Error(t, err)
	})
}

func TestMoneyValidate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var m kernel.Money
		require.ErrorIs(t, m.Validate(), kernel.ErrMoneyIsNotConstructed)
	})

	t.Run("constructed money passes validation", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("0")
		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.True(t, m.IsZero())
	})
}

func TestActor(t *testing.T) {
	t.Run("valid actor", func(t *testing.T) {
		id := kernel.NewUUID()
		actor, err := kernel.NewActor(id, kernel.RoleSeller)

		require.NoError(t, err)
		assert.True(t, actor.Is(id))
		assert.Equal(t, kernel.RoleSeller, actor.Role())
		require.NoError(t, actor.Validate())
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.Role("admin"))
		require.Error(t, err)
	})

	t.Run("zero subject is rejected", func(t *testing.T) {
		var id kernel.UUID
		_, err := kernel.NewActor(id, kernel.RoleBuyer)
		require.Error(t, err)
	})
}
