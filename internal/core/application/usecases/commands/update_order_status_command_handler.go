package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles order lifecycle transitions.
// The aggregate enforces the transition table; the handler persists the
// change and, after the transaction commits, notifies the payment and
// shipment workflows about statuses they react to.
//
// Notification failures are logged and swallowed: the status change is
// already committed and external workflows reconcile through their own
// retries.
type UpdateOrderStatusCommandHandler struct {
	uowFactory       OrderUoWFactory
	paymentNotifier  ports.PaymentNotifier
	shipmentNotifier ports.ShipmentNotifier
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	paymentNotifier ports.PaymentNotifier,
	shipmentNotifier ports.ShipmentNotifier,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:       uowFactory,
		paymentNotifier:  paymentNotifier,
		shipmentNotifier: shipmentNotifier,
	}
}

// Handle processes the status transition command.
// Loads the order, applies the transition through the aggregate, and
// persists the result. An invalid transition surfaces as the aggregate's
// error and nothing is persisted.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if err = aggregate.UpdateStatus(cmd.Status()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, cmd)
	return nil
}

func (h *UpdateOrderStatusCommandHandler) notify(ctx context.Context, cmd UpdateOrderStatusCommand) {
	var err error
	switch cmd.Status() {
	case order.Confirmed:
		err = h.paymentNotifier.NotifyConfirmed(ctx, cmd.OrderID())
	case order.Cancelled:
		err = h.paymentNotifier.NotifyCancelled(ctx, cmd.OrderID())
	case order.Shipped:
		err = h.shipmentNotifier.NotifyShipped(ctx, cmd.OrderID())
	default:
		return
	}

	if err != nil {
		slog.Error("order status notification failed",
			"orderId", cmd.OrderID().String(),
			"status", cmd.Status().String(),
			"error", err)
	}
}
