package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrUpdateItemQuantityCommandIsNotConstructed = errors.New(
	"UpdateItemQuantityCommand must be created via NewUpdateItemQuantityCommand constructor",
)

// UpdateItemQuantityCommand represents a request to change the unit count of
// one line in a Pending order.
type UpdateItemQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewUpdateItemQuantityCommand creates a command to change a line quantity.
func NewUpdateItemQuantityCommand(orderID kernel.UUID, itemID kernel.UUID, quantity int) (UpdateItemQuantityCommand, error) {
	quantityCommand := UpdateItemQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		quantityCommand.setOrderID(orderID),
		quantityCommand.setItemID(itemID),
		quantityCommand.setQuantity(quantity),
	); err != nil {
		return UpdateItemQuantityCommand{}, err
	}

	return quantityCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemQuantityCommandIsNotConstructed)
}

// OrderID returns the identifier of the order holding the line.
func (c UpdateItemQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the identifier of the line to update.
func (c UpdateItemQuantityCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the new unit count.
func (c UpdateItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateItemQuantityCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateItemQuantityCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *UpdateItemQuantityCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}
