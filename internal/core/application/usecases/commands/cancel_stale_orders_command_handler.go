package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// CancelStaleOrdersCommandHandler cancels orders abandoned in Pending status.
// All stale orders found in one sweep are cancelled inside a single
// transaction; payment holds are released after the commit.
type CancelStaleOrdersCommandHandler struct {
	uowFactory      OrderUoWFactory
	paymentNotifier ports.PaymentNotifier
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale sweep.
func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	paymentNotifier ports.PaymentNotifier,
) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory:      uowFactory,
		paymentNotifier: paymentNotifier,
	}
}

// Handle processes the stale order sweep.
// Orders whose order date lies before now minus the TTL are transitioned to
// Cancelled through the aggregate, so the transition table still applies.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cutoff := time.Now().Add(-cmd.TTL())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	staleOrders, err := orderRepo.GetAllPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if len(staleOrders) == 0 {
		return uow.Commit(ctx)
	}

	cancelled := make([]kernel.UUID, 0, len(staleOrders))
	for _, aggregate := range staleOrders {
		if err = aggregate.UpdateStatus(order.Cancelled); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		cancelled = append(cancelled, aggregate.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, orderID := range cancelled {
		if err = h.paymentNotifier.NotifyCancelled(ctx, orderID); err != nil {
			slog.Error("stale order cancellation notification failed",
				"orderId", orderID.String(),
				"error", err)
		}
	}

	slog.Info("stale orders cancelled", "count", len(cancelled))
	return nil
}
