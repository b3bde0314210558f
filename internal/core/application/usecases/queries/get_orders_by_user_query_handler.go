package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersByUserQueryHandler retrieves a user's order history from the database.
// Totals are computed in SQL over the item rows rather than by rehydrating
// aggregates; the arithmetic mirrors the domain computation because all
// stored amounts already carry two decimals.
type GetOrdersByUserQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByUserQueryHandler creates a handler for user order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersByUserQueryHandler(db *gorm.DB) GetOrdersByUserQueryHandler {
	return GetOrdersByUserQueryHandler{db: db}
}

// Handle executes the query and returns the user's orders, most recent first.
func (h GetOrdersByUserQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByUserQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.user_id,
			o.order_date,
			o.status,
			COUNT(i.id) AS item_count,
			o.discount_amount,
			COALESCE(SUM(i.price_at_purchase * i.quantity - i.discount_amount), 0) - o.discount_amount AS final_amount
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = ?
		GROUP BY o.id, o.user_id, o.order_date, o.status, o.discount_amount
		ORDER BY o.order_date DESC
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
