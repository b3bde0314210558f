// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"sort"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by user and status.
type OrderDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;index"`
	OrderDate      time.Time       `gorm:"index"`
	Status         int             `gorm:"index"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	Version        int
	Items          []OrderItemDTO  `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line. Position records the
// insertion order of the line within its order, so reconstruction preserves
// the collection order the aggregate guarantees.
type OrderItemDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid"`
	Quantity        int
	PriceAtPurchase decimal.Decimal `gorm:"type:numeric(14,2)"`
	DiscountAmount  decimal.Decimal `gorm:"type:numeric(14,2)"`
	Position        int
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Item rows carry their slice index as position.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			ID:              item.ID().Bytes(),
			OrderID:         aggregate.ID().Bytes(),
			ProductID:       item.ProductID().Bytes(),
			WarehouseID:     item.WarehouseID().Bytes(),
			Quantity:        item.Quantity(),
			PriceAtPurchase: item.PriceAtPurchase().Decimal(),
			DiscountAmount:  item.DiscountAmount().Decimal(),
			Position:        i,
		})
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		UserID:         aggregate.UserID().Bytes(),
		OrderDate:      aggregate.OrderDate(),
		Status:         int(aggregate.Status()),
		DiscountAmount: aggregate.DiscountAmount().Decimal(),
		Version:        aggregate.Version(),
		Items:          itemDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items and version using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	discount, err := kernel.NewMoney(dto.DiscountAmount)
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Items, func(i, j int) bool {
		return dto.Items[i].Position < dto.Items[j].Position
	})

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, userID, dto.OrderDate,
		order.Status(dto.Status), items, discount, dto.Version,
	)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return order.Item{}, err
	}

	price, err := kernel.NewMoney(dto.PriceAtPurchase)
	if err != nil {
		return order.Item{}, err
	}

	discount, err := kernel.NewMoney(dto.DiscountAmount)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(id, productID, warehouseID, dto.Quantity, price, discount)
}
