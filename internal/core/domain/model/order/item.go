package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line entry owned exclusively by an Order. It snapshots one
// product's unit price at order time together with the ordered quantity,
// the fulfilling warehouse, and a fixed line-level discount.
//
// Item follows these invariants:
//   - Must have valid item, product, and warehouse identifiers
//   - Quantity must be positive (greater than 0)
//   - Price at purchase and discount amount must be non-negative
//   - Can only be created through the NewItem constructor
//
// The line discount is a fixed currency amount subtracted once per line;
// it is not scaled by quantity. There is no per-line cap on the discount:
// discounts are validated only in aggregate against the order total.
//
// Item is a value type: assignment copies it, which the Order aggregate
// relies on for defensive copying of its item collection.
type Item struct { //nolint:recvcheck //using for validation
	// id uniquely identifies the item within its order
	id kernel.UUID

	// productID references the purchased product
	productID kernel.UUID

	// warehouseID references the fulfillment source
	warehouseID kernel.UUID

	// quantity is the ordered unit count (must be positive)
	quantity int

	// priceAtPurchase is the unit price snapshot taken at order time
	priceAtPurchase kernel.Money

	// discountAmount is the fixed line-level discount
	discountAmount kernel.Money

	// guard ensures the item was created via NewItem
	guard guard.ConstructorGuard
}

// NewItem creates a new order line with validation. This is the only way to
// create a valid Item.
//
// Parameters:
//   - id: Unique identifier for the line within its order
//   - productID: Identifier of the purchased product
//   - warehouseID: Identifier of the fulfilling warehouse
//   - quantity: Ordered unit count (must be positive)
//   - priceAtPurchase: Unit price snapshot (must be non-negative)
//   - discountAmount: Fixed line discount (must be non-negative)
//
// Returns:
//   - Item: The created line if all validations pass
//   - error: Validation error if any parameter is invalid (aggregated for multiple issues)
func NewItem(
	id kernel.UUID,
	productID kernel.UUID,
	warehouseID kernel.UUID,
	quantity int,
	priceAtPurchase kernel.Money,
	discountAmount kernel.Money,
) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setWarehouseID(warehouseID),
		item.setQuantity(quantity),
		item.setPriceAtPurchase(priceAtPurchase),
		item.setDiscountAmount(discountAmount),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
// Returns ErrItemIsNotConstructed for zero-value instances.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// IsEqual compares two items by their unique identifiers.
func (i Item) IsEqual(other Item) bool {
	return i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier within its order.
func (i Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the identifier of the purchased product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// WarehouseID returns the identifier of the fulfilling warehouse.
func (i Item) WarehouseID() kernel.UUID {
	return i.warehouseID
}

// Quantity returns the ordered unit count.
func (i Item) Quantity() int {
	return i.quantity
}

// PriceAtPurchase returns the unit price snapshot taken at order time.
func (i Item) PriceAtPurchase() kernel.Money {
	return i.priceAtPurchase
}

// DiscountAmount returns the fixed line-level discount.
func (i Item) DiscountAmount() kernel.Money {
	return i.discountAmount
}

// Subtotal returns priceAtPurchase multiplied by quantity,
// rounded to two decimal places. The line discount is not applied here;
// it is aggregated separately by the owning order.
func (i Item) Subtotal() kernel.Money {
	return i.priceAtPurchase.MulInt(i.quantity)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	i.warehouseID = warehouseID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPriceAtPurchase(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("priceAtPurchase", fmt.Errorf("%s is negative", price))
	}
	i.priceAtPurchase = price
	return nil
}

func (i *Item) setDiscountAmount(discount kernel.Money) error {
	if err := discount.Validate(); err != nil {
		return err
	}
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount", fmt.Errorf("%s is negative", discount))
	}
	i.discountAmount = discount
	return nil
}
