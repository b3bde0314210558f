package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, v float64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromFloat(v)
	require.NoError(t, err)
	return m
}

func TestNewItem(t *testing.T) {
	itemID := kernel.NewUUID()
	productID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	t.Run("should create valid item", func(t *testing.T) {
		item, err := order.NewItem(itemID, productID, warehouseID, 2, mustMoney(t, 99.99), mustMoney(t, 10))

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ID().IsEqual(itemID))
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.True(t, item.WarehouseID().IsEqual(warehouseID))
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, "99.99", item.PriceAtPurchase().String())
		assert.Equal(t, "10.00", item.DiscountAmount().String())
	})

	t.Run("should fail with invalid item id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := order.NewItem(invalidID, productID, warehouseID, 1, mustMoney(t, 1), kernel.ZeroMoney())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		_, err := order.NewItem(itemID, productID, warehouseID, 0, mustMoney(t, 1), kernel.ZeroMoney())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should fail with negative quantity", func(t *testing.T) {
		_, err := order.NewItem(itemID, productID, warehouseID, -3, mustMoney(t, 1), kernel.ZeroMoney())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "-3 is not greater than 0")
	})

	t.Run("should fail with unconstructed price", func(t *testing.T) {
		var price kernel.Money

		_, err := order.NewItem(itemID, productID, warehouseID, 1, price, kernel.ZeroMoney())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with unconstructed discount", func(t *testing.T) {
		var discount kernel.Money

		_, err := order.NewItem(itemID, productID, warehouseID, 1, mustMoney(t, 1), discount)

		require.Error(t, err)
	})

	t.Run("should accept zero price", func(t *testing.T) {
		item, err := order.NewItem(itemID, productID, warehouseID, 1, kernel.ZeroMoney(), kernel.ZeroMoney())

		require.NoError(t, err)
		assert.True(t, item.PriceAtPurchase().IsZero())
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID
		var price kernel.Money

		_, err := order.NewItem(invalidID, productID, warehouseID, 0, price, kernel.ZeroMoney())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
		assert.Contains(t, err.Error(), "money must be created")
	})
}

func TestItem_Validate(t *testing.T) {
	t.Run("should fail validation for zero value item", func(t *testing.T) {
		var item order.Item

		err := item.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrItemIsNotConstructed, err)
	})
}

func TestItem_Subtotal(t *testing.T) {
	itemID := kernel.NewUUID()
	productID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	t.Run("multiplies price by quantity", func(t *testing.T) {
		item, _ := order.NewItem(itemID, productID, warehouseID, 2, mustMoney(t, 99.99), mustMoney(t, 10))

		assert.Equal(t, "199.98", item.Subtotal().String())
	})

	t.Run("line discount does not scale with quantity", func(t *testing.T) {
		item, _ := order.NewItem(itemID, productID, warehouseID, 5, mustMoney(t, 10), mustMoney(t, 3))

		assert.Equal(t, "50.00", item.Subtotal().String())
		assert.Equal(t, "3.00", item.DiscountAmount().String())
	})
}

func TestItem_IsEqual(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()
	productID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	item1, _ := order.NewItem(id1, productID, warehouseID, 1, mustMoney(t, 1), kernel.ZeroMoney())
	item2, _ := order.NewItem(id1, productID, warehouseID, 9, mustMoney(t, 50), kernel.ZeroMoney())
	item3, _ := order.NewItem(id2, productID, warehouseID, 1, mustMoney(t, 1), kernel.ZeroMoney())

	assert.True(t, item1.IsEqual(item2))
	assert.False(t, item1.IsEqual(item3))
}
