package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyConstructors(t *testing.T) {
	t.Run("should create money from float", func(t *testing.T) {
		m, err := kernel.MoneyFromFloat(99.99)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "99.99", m.String())
	})

	t.Run("should round to two decimals half away from zero", func(t *testing.T) {
		m, err := kernel.MoneyFromFloat(10.005)

		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.MoneyFromFloat(-0.01)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should accept zero amount", func(t *testing.T) {
		m, err := kernel.MoneyFromFloat(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should parse money from string", func(t *testing.T) {
		m, err := kernel.MoneyFromString("189.98")

		require.NoError(t, err)
		assert.Equal(t, "189.98", m.String())
	})

	t.Run("should fail on malformed string", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten dollars")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative string amount", func(t *testing.T) {
		_, err := kernel.MoneyFromString("-5.00")

		require.Error(t, err)
	})

	t.Run("should create money from decimal", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(12.345))

		require.NoError(t, err)
		assert.Equal(t, "12.35", m.String())
	})

	t.Run("zero money is constructed and valid", func(t *testing.T) {
		m := kernel.ZeroMoney()

		require.NoError(t, m.Validate())
		assert.True(t, m.IsZero())
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("should fail validation for zero value", func(t *testing.T) {
		var m kernel.Money

		err := m.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	price, _ := kernel.MoneyFromFloat(99.99)
	discount, _ := kernel.MoneyFromFloat(10)

	t.Run("should multiply by quantity with rounding", func(t *testing.T) {
		subtotal := price.MulInt(2)

		assert.Equal(t, "199.98", subtotal.String())
	})

	t.Run("should add amounts", func(t *testing.T) {
		sum := price.Add(discount)

		assert.Equal(t, "109.99", sum.String())
	})

	t.Run("should subtract amounts", func(t *testing.T) {
		total := price.MulInt(2).Sub(discount)

		assert.Equal(t, "189.98", total.String())
	})

	t.Run("subtraction may go negative", func(t *testing.T) {
		result := discount.Sub(price)

		assert.True(t, result.IsNegative())
	})

	t.Run("cumulative rounding matches cent-exact vectors", func(t *testing.T) {
		orderDiscount, _ := kernel.MoneyFromFloat(5)

		total := price.MulInt(2).Sub(discount)
		final := total.Sub(orderDiscount)

		assert.Equal(t, "189.98", total.String())
		assert.Equal(t, "184.98", final.String())
		assert.InDelta(t, 184.98, final.Float64(), 0.0001)
	})
}

func TestMoney_Comparison(t *testing.T) {
	small, _ := kernel.MoneyFromFloat(5)
	large, _ := kernel.MoneyFromFloat(189.98)

	t.Run("greater and less than", func(t *testing.T) {
		assert.True(t, large.GreaterThan(small))
		assert.True(t, small.LessThan(large))
		assert.False(t, small.GreaterThan(large))
	})

	t.Run("equality is numeric", func(t *testing.T) {
		other, _ := kernel.MoneyFromFloat(189.98)

		assert.True(t, large.IsEqual(other))
		assert.False(t, large.IsEqual(small))
	})
}
