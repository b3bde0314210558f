package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ComposeOrderCommandHandler handles the business logic for placing orders.
// Verifies the ordering user, resolves every requested product against the
// catalog, snapshots prices and fulfilling warehouses into the order lines,
// and persists the new order in Pending status.
//
// Example:
//
//	handler := NewComposeOrderCommandHandler(uowFactory, userReader, catalog)
//	cmd, _ := NewComposeOrderCommand(orderID, userID, lines, discount)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// Order is now Pending and awaiting confirmation
type ComposeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	userReader ports.UserReader
	catalog    ports.ProductCatalog
}

// NewComposeOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence, a UserReader
// to verify the ordering user, and a ProductCatalog to resolve prices.
func NewComposeOrderCommandHandler(
	uowFactory OrderUoWFactory,
	userReader ports.UserReader,
	catalog ports.ProductCatalog,
) ComposeOrderCommandHandler {
	return ComposeOrderCommandHandler{
		uowFactory: uowFactory,
		userReader: userReader,
		catalog:    catalog,
	}
}

// Handle processes the order placement command.
// Product resolution happens before the transaction opens; the catalog is a
// read model and does not participate in the order transaction.
func (h *ComposeOrderCommandHandler) Handle(ctx context.Context, cmd ComposeOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.userReader.Exists(ctx, cmd.UserID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("userId", cmd.UserID().String())
	}

	items, err := h.resolveLines(ctx, cmd.Lines())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.UserID(), items, cmd.DiscountAmount())
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

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveLines turns line requests into order items, copying the catalog
// price and warehouse into each item.
func (h *ComposeOrderCommandHandler) resolveLines(ctx context.Context, lines []OrderLine) ([]order.Item, error) {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		p, err := h.catalog.GetProduct(ctx, line.ProductID())
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(
			kernel.NewUUID(),
			p.ID(),
			p.WarehouseID(),
			line.Quantity(),
			p.Price(),
			line.DiscountAmount(),
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}
	return items, nil
}
