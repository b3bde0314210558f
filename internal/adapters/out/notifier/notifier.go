// Package notifier holds outbound gateways toward the payment and shipment
// workflows. The current implementations only log the events; swapping in a
// real transport means replacing these structs behind the same ports.
package notifier

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
)

// SlogPaymentNotifier implements ports.PaymentNotifier by logging events.
type SlogPaymentNotifier struct {
	logger *slog.Logger
}

// NewSlogPaymentNotifier creates a logging payment notifier.
func NewSlogPaymentNotifier(logger *slog.Logger) *SlogPaymentNotifier {
	return &SlogPaymentNotifier{logger: logger.With("component", "payment_notifier")}
}

// NotifyConfirmed signals that payment capture may proceed for the order.
func (n *SlogPaymentNotifier) NotifyConfirmed(ctx context.Context, orderID kernel.UUID) error {
	n.logger.InfoContext(ctx, "order confirmed, payment capture may proceed", "orderId", orderID.String())
	return nil
}

// NotifyCancelled signals that any payment hold for the order should be released.
func (n *SlogPaymentNotifier) NotifyCancelled(ctx context.Context, orderID kernel.UUID) error {
	n.logger.InfoContext(ctx, "order cancelled, releasing payment hold", "orderId", orderID.String())
	return nil
}

// SlogShipmentNotifier implements ports.ShipmentNotifier by logging events.
type SlogShipmentNotifier struct {
	logger *slog.Logger
}

// NewSlogShipmentNotifier creates a logging shipment notifier.
func NewSlogShipmentNotifier(logger *slog.Logger) *SlogShipmentNotifier {
	return &SlogShipmentNotifier{logger: logger.With("component", "shipment_notifier")}
}

// NotifyShipped signals that the order left the warehouse.
func (n *SlogShipmentNotifier) NotifyShipped(ctx context.Context, orderID kernel.UUID) error {
	n.logger.InfoContext(ctx, "order shipped", "orderId", orderID.String())
	return nil
}
