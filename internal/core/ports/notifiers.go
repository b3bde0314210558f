package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// PaymentNotifier informs the payment workflow about order lifecycle events
// it must react to. Implementations are external gateways; failures are
// logged but never roll back the committed status change.
type PaymentNotifier interface {
	// NotifyConfirmed signals that the order was confirmed and payment
	// capture may proceed.
	NotifyConfirmed(ctx context.Context, orderID kernel.UUID) error

	// NotifyCancelled signals that the order was cancelled and any payment
	// hold should be released.
	NotifyCancelled(ctx context.Context, orderID kernel.UUID) error
}

// ShipmentNotifier informs the fulfillment workflow about orders that are
// ready to leave the warehouse.
type ShipmentNotifier interface {
	// NotifyShipped signals that the order transitioned to Shipped.
	NotifyShipped(ctx context.Context, orderID kernel.UUID) error
}
