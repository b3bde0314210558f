package commands

import (
	"context"
)

// UpdateOrderDiscountCommandHandler handles order-level discount changes.
type UpdateOrderDiscountCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderDiscountCommandHandler creates a handler for discount changes.
func NewUpdateOrderDiscountCommandHandler(uowFactory OrderUoWFactory) UpdateOrderDiscountCommandHandler {
	return UpdateOrderDiscountCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the discount change command.
func (h *UpdateOrderDiscountCommandHandler) Handle(ctx context.Context, cmd UpdateOrderDiscountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if err = aggregate.UpdateDiscountAmount(cmd.DiscountAmount()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
