package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrComposeOrderCommandIsNotConstructed = errors.New(
		"ComposeOrderCommand must be created via NewComposeOrderCommand constructor",
	)
	ErrOrderLineIsNotConstructed = errors.New(
		"OrderLine must be created via NewOrderLine constructor",
	)
	ErrLinesAreRequired = errs.NewValueIsRequiredError("lines")
)

// OrderLine is one requested product within a ComposeOrderCommand: which
// product, how many units, and an optional fixed line discount. Prices are
// not part of the request; the handler snapshots them from the catalog.
type OrderLine struct { //nolint:recvcheck //using for validation
	productID      kernel.UUID
	quantity       int
	discountAmount kernel.Money

	guard guard.ConstructorGuard
}

// NewOrderLine creates a validated line request.
// Quantity must be positive and the discount non-negative; pass
// kernel.ZeroMoney() when the line carries no discount.
func NewOrderLine(productID kernel.UUID, quantity int, discountAmount kernel.Money) (OrderLine, error) {
	line := OrderLine{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setProductID(productID),
		line.setQuantity(quantity),
		line.setDiscountAmount(discountAmount),
	); err != nil {
		return OrderLine{}, err
	}

	return line, nil
}

// Validate ensures the line was created through the constructor.
func (l OrderLine) Validate() error {
	return l.guard.Validate(ErrOrderLineIsNotConstructed)
}

// ProductID returns the requested product identifier.
func (l OrderLine) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the requested unit count.
func (l OrderLine) Quantity() int {
	return l.quantity
}

// DiscountAmount returns the fixed line discount.
func (l OrderLine) DiscountAmount() kernel.Money {
	return l.discountAmount
}

func (l *OrderLine) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	l.productID = productID
	return nil
}

func (l *OrderLine) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	l.quantity = quantity
	return nil
}

func (l *OrderLine) setDiscountAmount(discount kernel.Money) error {
	if err := discount.Validate(); err != nil {
		return err
	}
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount", fmt.Errorf("%s is negative", discount))
	}

	l.discountAmount = discount
	return nil
}

// ComposeOrderCommand represents a request to place a new order for a user.
// Encapsulates the requested product lines and the order-level discount.
// Each product may appear at most once; callers express larger amounts
// through the line quantity.
//
// Example:
//
//	line, _ := NewOrderLine(productID, 2, kernel.ZeroMoney())
//	cmd, err := NewComposeOrderCommand(kernel.NewUUID(), userID, []OrderLine{line}, kernel.ZeroMoney())
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	handler := NewComposeOrderCommandHandler(uowFactory, userReader, catalog)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type ComposeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	userID         kernel.UUID
	lines          []OrderLine
	discountAmount kernel.Money

	guard guard.ConstructorGuard
}

// NewComposeOrderCommand creates a command to place a new order.
// Validates identifiers, requires at least one line, rejects duplicate
// product ids, and requires a constructed non-negative discount.
func NewComposeOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	lines []OrderLine,
	discountAmount kernel.Money,
) (ComposeOrderCommand, error) {
	composeCommand := ComposeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		composeCommand.setOrderID(orderID),
		composeCommand.setUserID(userID),
		composeCommand.setLines(lines),
		composeCommand.setDiscountAmount(discountAmount),
	); err != nil {
		return ComposeOrderCommand{}, err
	}

	return composeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrComposeOrderCommandIsNotConstructed if validation fails.
func (c ComposeOrderCommand) Validate() error {
	return c.guard.Validate(ErrComposeOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c ComposeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the ordering user.
func (c ComposeOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// Lines returns a copy of the requested product lines.
func (c ComposeOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// DiscountAmount returns the order-level discount.
func (c ComposeOrderCommand) DiscountAmount() kernel.Money {
	return c.discountAmount
}

func (c *ComposeOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ComposeOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *ComposeOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	copied := make([]OrderLine, len(lines))
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		if _, ok := seen[line.ProductID()]; ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"productId",
				fmt.Errorf("duplicate product id %s", line.ProductID()),
			)
		}
		seen[line.ProductID()] = struct{}{}
		copied[i] = line
	}

	c.lines = copied
	return nil
}

func (c *ComposeOrderCommand) setDiscountAmount(discount kernel.Money) error {
	if err := discount.Validate(); err != nil {
		return err
	}
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount", fmt.Errorf("%s is negative", discount))
	}

	c.discountAmount = discount
	return nil
}
