// Package catalogrepo provides the read-side adapter over the product catalog.
// Order composition resolves product prices and fulfilling warehouses here;
// the catalog is maintained by a separate system and this adapter never
// writes to it.
package catalogrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductDTO represents one catalog row.
type ProductDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID       `gorm:"type:uuid"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for catalog entries.
func (ProductDTO) TableName() string {
	return "products"
}

// GormProductCatalog implements ports.ProductCatalog using GORM.
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a new GORM product catalog reader.
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// GetProduct returns the catalog snapshot for the given product id.
func (c *GormProductCatalog) GetProduct(ctx context.Context, productID kernel.UUID) (product.Product, error) {
	if err := productID.Validate(); err != nil {
		return product.Product{}, err
	}

	var dto ProductDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product.Product{}, errs.NewObjectNotFoundError("productId", productID.String())
		}
		return product.Product{}, err
	}

	return toDomain(dto)
}

func toDomain(dto ProductDTO) (product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return product.Product{}, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return product.Product{}, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return product.Product{}, err
	}

	return product.NewProduct(id, warehouseID, price)
}
