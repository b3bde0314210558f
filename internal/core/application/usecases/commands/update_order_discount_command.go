package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrUpdateOrderDiscountCommandIsNotConstructed = errors.New(
	"UpdateOrderDiscountCommand must be created via NewUpdateOrderDiscountCommand constructor",
)

// UpdateOrderDiscountCommand represents a request to replace the order-level
// discount. The aggregate checks the new amount against the current total.
type UpdateOrderDiscountCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	discountAmount kernel.Money

	guard guard.ConstructorGuard
}

// NewUpdateOrderDiscountCommand creates a command to replace the discount.
func NewUpdateOrderDiscountCommand(orderID kernel.UUID, discountAmount kernel.Money) (UpdateOrderDiscountCommand, error) {
	discountCommand := UpdateOrderDiscountCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		discountCommand.setOrderID(orderID),
		discountCommand.setDiscountAmount(discountAmount),
	); err != nil {
		return UpdateOrderDiscountCommand{}, err
	}

	return discountCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderDiscountCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDiscountCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderDiscountCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DiscountAmount returns the new order-level discount.
func (c UpdateOrderDiscountCommand) DiscountAmount() kernel.Money {
	return c.discountAmount
}

func (c *UpdateOrderDiscountCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderDiscountCommand) setDiscountAmount(discount kernel.Money) error {
	if err := discount.Validate(); err != nil {
		return err
	}
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount", fmt.Errorf("%s is negative", discount))
	}

	c.discountAmount = discount
	return nil
}
