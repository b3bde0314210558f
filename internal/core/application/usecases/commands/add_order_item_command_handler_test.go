package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddOrderItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t)
	productID := kernel.NewUUID()
	cmd, err := commands.NewAddOrderItemCommand(aggregate.ID(), productID, 1, kernel.ZeroMoney())
	require.NoError(t, err)

	catalog := new(MockProductCatalog)
	catalog.On("GetProduct", ctx, productID).Return(catalogProduct(t, productID, 25), nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddOrderItemCommandHandler(factory, catalog)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Len(t, aggregate.Items(), 2)
	assert.Equal(t, "214.98", aggregate.TotalAmount().String())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestAddOrderItemCommandHandler_Handle_OrderNotModifiable(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t)
	require.NoError(t, aggregate.UpdateStatus(order.Confirmed))

	productID := kernel.NewUUID()
	cmd, err := commands.NewAddOrderItemCommand(aggregate.ID(), productID, 1, kernel.ZeroMoney())
	require.NoError(t, err)

	catalog := new(MockProductCatalog)
	catalog.On("GetProduct", ctx, productID).Return(catalogProduct(t, productID, 25), nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddOrderItemCommandHandler(factory, catalog)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot modify items in current status")
	assert.Len(t, aggregate.Items(), 1)
}

func TestNewAddOrderItemCommand_InvalidQuantity(t *testing.T) {
	_, err := commands.NewAddOrderItemCommand(kernel.NewUUID(), kernel.NewUUID(), 0, kernel.ZeroMoney())
	require.Error(t, err)
}
