package queries

import (
	"context"
	"database/sql"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUndeliveredOrdersQueryHandler retrieves open orders from the database.
// Filters out terminal orders to provide active workload visibility.
type GetUndeliveredOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUndeliveredOrdersQueryHandler creates a handler for open order queries.
// Requires a GORM database connection for query execution.
func NewGetUndeliveredOrdersQueryHandler(db *gorm.DB) GetUndeliveredOrdersQueryHandler {
	return GetUndeliveredOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all undelivered orders.
// Returns orders in any non-terminal status, oldest first, so the longest
// open orders surface at the top of operations dashboards.
func (h GetUndeliveredOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUndeliveredOrdersQuery,
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
		WHERE o.status NOT IN (?, ?)
		GROUP BY o.id, o.user_id, o.order_date, o.status, o.discount_amount
		ORDER BY o.order_date ASC
	`, order.Delivered, order.Cancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}

// scanOrderSummaries maps joined order rows into read model responses.
func scanOrderSummaries(rows *sql.Rows) ([]OrderSummaryResponse, error) {
	orders := make([]OrderSummaryResponse, 0)

	for rows.Next() {
		var (
			id             uuid.UUID
			userID         uuid.UUID
			resp           OrderSummaryResponse
			status         int
			discountAmount decimal.Decimal
			finalAmount    decimal.Decimal
		)

		err := rows.Scan(
			&id,
			&userID,
			&resp.OrderDate,
			&status,
			&resp.ItemCount,
			&discountAmount,
			&finalAmount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		ownerID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.UserID = ownerID

		resp.Status = order.Status(status).String()
		resp.DiscountAmount = discountAmount
		resp.FinalAmount = finalAmount
		orders = append(orders, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
