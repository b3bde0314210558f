package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand represents a request to append a product line to an
// existing Pending order. The unit price is not part of the request; the
// handler snapshots it from the catalog at execution time.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	productID      kernel.UUID
	quantity       int
	discountAmount kernel.Money

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand creates a command to add a line to an order.
func NewAddOrderItemCommand(
	orderID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	discountAmount kernel.Money,
) (AddOrderItemCommand, error) {
	addCommand := AddOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addCommand.setOrderID(orderID),
		addCommand.setProductID(productID),
		addCommand.setQuantity(quantity),
		addCommand.setDiscountAmount(discountAmount),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return addCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to extend.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the identifier of the product to add.
func (c AddOrderItemCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the requested unit count.
func (c AddOrderItemCommand) Quantity() int {
	return c.quantity
}

// DiscountAmount returns the fixed line discount.
func (c AddOrderItemCommand) DiscountAmount() kernel.Money {
	return c.discountAmount
}

func (c *AddOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddOrderItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AddOrderItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}

func (c *AddOrderItemCommand) setDiscountAmount(discount kernel.Money) error {
	if err := discount.Validate(); err != nil {
		return err
	}
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount", fmt.Errorf("%s is negative", discount))
	}

	c.discountAmount = discount
	return nil
}
