// Package ports defines repository and gateway interfaces for the order domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// together with their item collections.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The aggregate version is checked against storage: a mismatch means a
	// concurrent writer won and the update fails with a version error.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all its items in insertion order.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByUser retrieves every order owned by the given user,
	// most recent first.
	GetAllByUser(ctx context.Context, userID kernel.UUID) ([]*order.Order, error)

	// GetAllPendingCreatedBefore retrieves orders still in Pending status
	// whose order date is strictly before the cutoff. Used by the stale
	// order cancellation job.
	GetAllPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
