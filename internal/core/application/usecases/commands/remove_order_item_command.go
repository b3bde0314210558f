package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrRemoveOrderItemCommandIsNotConstructed = errors.New(
	"RemoveOrderItemCommand must be created via NewRemoveOrderItemCommand constructor",
)

// RemoveOrderItemCommand represents a request to remove a line from a
// Pending order. The aggregate rejects removal of the last remaining line.
type RemoveOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveOrderItemCommand creates a command to remove a line from an order.
func NewRemoveOrderItemCommand(orderID kernel.UUID, itemID kernel.UUID) (RemoveOrderItemCommand, error) {
	removeCommand := RemoveOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		removeCommand.setOrderID(orderID),
		removeCommand.setItemID(itemID),
	); err != nil {
		return RemoveOrderItemCommand{}, err
	}

	return removeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to shrink.
func (c RemoveOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the identifier of the line to remove.
func (c RemoveOrderItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *RemoveOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RemoveOrderItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}
