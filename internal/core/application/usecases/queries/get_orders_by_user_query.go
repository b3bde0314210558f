// Package queries contains read-only operations over the order store.
// Query handlers bypass the domain aggregate and read projection rows
// directly, following the CQRS split used across the application layer.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrdersByUserQueryIsNotConstructed = errors.New(
	"GetOrdersByUserQuery must be created via NewGetOrdersByUserQuery constructor",
)

// GetOrdersByUserQuery retrieves every order placed by one user.
//
// Example:
//
//	query, err := NewGetOrdersByUserQuery(userID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrdersByUserQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get user orders: %w", err)
//	}
type GetOrdersByUserQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersByUserQuery creates a query for one user's order history.
func NewGetOrdersByUserQuery(userID kernel.UUID) (GetOrdersByUserQuery, error) {
	query := GetOrdersByUserQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setUserID(userID); err != nil {
		return GetOrdersByUserQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersByUserQueryIsNotConstructed if validation fails.
func (q GetOrdersByUserQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByUserQueryIsNotConstructed)
}

// UserID returns the identifier of the user whose orders are requested.
func (q GetOrdersByUserQuery) UserID() kernel.UUID {
	return q.userID
}

func (q *GetOrdersByUserQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

// OrderSummaryResponse is the read model row returned by order queries.
// Amounts are reported as decimals with two-decimal precision; FinalAmount
// is the charged amount after both discount layers.
type OrderSummaryResponse struct {
	ID             kernel.UUID
	UserID         kernel.UUID
	OrderDate      time.Time
	Status         string
	ItemCount      int
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}
