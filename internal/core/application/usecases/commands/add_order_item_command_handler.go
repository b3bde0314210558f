package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// AddOrderItemCommandHandler handles appending a product line to an order.
// The catalog resolves the current price and warehouse, the aggregate
// enforces the Pending-only rule and the discount ceiling.
type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ProductCatalog
}

// NewAddOrderItemCommandHandler creates a handler for line additions.
func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory, catalog ports.ProductCatalog) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the line addition command.
func (h *AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := h.catalog.GetProduct(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	item, err := order.NewItem(
		kernel.NewUUID(),
		p.ID(),
		p.WarehouseID(),
		cmd.Quantity(),
		p.Price(),
		cmd.DiscountAmount(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AddItem(item); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
