package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/product"
)

// ProductCatalog resolves product identifiers to catalog snapshots at order
// composition time. The composer copies the snapshot's price and warehouse
// into the order line.
type ProductCatalog interface {
	// GetProduct returns the catalog snapshot for the given product id.
	// Returns an object-not-found error for unknown products.
	GetProduct(ctx context.Context, productID kernel.UUID) (product.Product, error)
}

// UserReader verifies user existence before an order is composed on their
// behalf.
type UserReader interface {
	// Exists reports whether a user with the given id is registered.
	Exists(ctx context.Context, userID kernel.UUID) (bool, error)
}
