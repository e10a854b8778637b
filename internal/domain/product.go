package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product is a tenant-scoped catalog item
type Product struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	TenantID    uuid.UUID `json:"tenant_id" bson:"tenantId"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	IsActive    bool      `json:"is_active" bson:"isActive"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updatedAt"`
}

// ProductCreate represents product creation data
type ProductCreate struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// ProductUpdate represents a partial product update
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// ProductRepository defines the interface for product storage
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, category string, activeOnly bool) ([]Product, error)
	ListOutOfStock(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id uuid.UUID, update *ProductUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
