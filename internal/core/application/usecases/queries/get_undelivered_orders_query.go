package queries

import (
	"errors"

	"ordering/internal/pkg/guard"
)

var ErrGetUndeliveredOrdersQueryIsNotConstructed = errors.New(
	"GetUndeliveredOrdersQuery must be created via NewGetUndeliveredOrdersQuery constructor",
)

// GetUndeliveredOrdersQuery retrieves all orders still moving through the
// lifecycle: everything except Delivered and Cancelled. Used by operations
// dashboards to monitor open workload.
//
// Example:
//
//	query := NewGetUndeliveredOrdersQuery()
//	handler := NewGetUndeliveredOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open orders: %w", err)
//	}
//	fmt.Printf("Found %d open orders\n", len(orders))
type GetUndeliveredOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUndeliveredOrdersQuery creates a query to retrieve open orders.
// This is a parameterless query that fetches all non-terminal orders.
func NewGetUndeliveredOrdersQuery() GetUndeliveredOrdersQuery {
	return GetUndeliveredOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUndeliveredOrdersQueryIsNotConstructed if validation fails.
func (q GetUndeliveredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUndeliveredOrdersQueryIsNotConstructed)
}
