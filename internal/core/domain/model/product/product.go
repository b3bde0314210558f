// Package product holds the catalog read model used when composing orders.
package product

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the NewProduct factory method.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a read-only snapshot of a catalog entry. The order composer
// resolves each requested product to one of these and copies its price and
// warehouse into the order line, so later catalog changes never affect
// already placed orders.
type Product struct { //nolint:recvcheck //using for validation
	id          kernel.UUID
	warehouseID kernel.UUID
	price       kernel.Money
	guard       guard.ConstructorGuard
}

// NewProduct creates a catalog snapshot with validation.
//
// Parameters:
//   - id: Identifier of the catalog entry
//   - warehouseID: Warehouse currently fulfilling the product
//   - price: Current unit price (non-negative)
//
// Returns:
//   - Product: The created snapshot if all validations pass
//   - error: Validation error if any parameter is invalid
func NewProduct(id kernel.UUID, warehouseID kernel.UUID, price kernel.Money) (Product, error) {
	p := Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setWarehouseID(warehouseID),
		p.setPrice(price),
	); err != nil {
		return Product{}, err
	}

	return p, nil
}

// Validate ensures the Product was properly constructed through NewProduct.
func (p Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// IsEqual compares two products by their unique identifiers.
func (p Product) IsEqual(other Product) bool {
	return p.id.IsEqual(other.id)
}

// ID returns the catalog entry identifier.
func (p Product) ID() kernel.UUID {
	return p.id
}

// WarehouseID returns the warehouse currently fulfilling the product.
func (p Product) WarehouseID() kernel.UUID {
	return p.warehouseID
}

// Price returns the current unit price.
func (p Product) Price() kernel.Money {
	return p.price
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	p.warehouseID = warehouseID
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}
