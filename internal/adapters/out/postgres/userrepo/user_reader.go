// Package userrepo provides the read-side adapter over the user store.
// Order composition only needs existence checks; user management itself
// belongs to a separate system.
package userrepo

import (
	"context"

	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO represents one user row.
type UserDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// TableName specifies the database table name for users.
func (UserDTO) TableName() string {
	return "users"
}

// GormUserReader implements ports.UserReader using GORM.
type GormUserReader struct {
	db *gorm.DB
}

// NewGormUserReader creates a new GORM user reader.
func NewGormUserReader(db *gorm.DB) *GormUserReader {
	return &GormUserReader{db: db}
}

// Exists reports whether a user with the given id is registered.
func (r *GormUserReader) Exists(ctx context.Context, userID kernel.UUID) (bool, error) {
	if err := userID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", userID.Bytes()).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
