package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SaleItem is one line of a sale
type SaleItem struct {
	ProductID   uuid.UUID `json:"product_id" bson:"productId"`
	ProductName string    `json:"product_name" bson:"productName"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	UnitPrice   float64   `json:"unit_price" bson:"unitPrice"`
	TotalPrice  float64   `json:"total_price" bson:"totalPrice"`
}

// Sale is a tenant-scoped sales record
type Sale struct {
	ID          uuid.UUID  `json:"id" bson:"_id"`
	TenantID    uuid.UUID  `json:"tenant_id" bson:"tenantId"`
	Items       []SaleItem `json:"items" bson:"items"`
	TotalAmount float64    `json:"total_amount" bson:"totalAmount"`
	Customer    string     `json:"customer,omitempty" bson:"customer,omitempty"`
	Date        time.Time  `json:"date" bson:"date"`
	CreatedAt   time.Time  `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updatedAt"`
}

// SaleItemCreate is one line of a sale creation request
type SaleItemCreate struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	ProductName string    `json:"product_name" validate:"required,max=255"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64   `json:"unit_price" validate:"gte=0"`
}

// SaleCreate represents sale creation data
type SaleCreate struct {
	Items    []SaleItemCreate `json:"items" validate:"required,min=1,dive"`
	Customer string           `json:"customer,omitempty" validate:"omitempty,max=255"`
	Date     *time.Time       `json:"date,omitempty"`
}

// SaleRepository defines the interface for sale storage
type SaleRepository interface {
	Create(ctx context.Context, sale *Sale) error
	Get(ctx context.Context, id uuid.UUID) (*Sale, error)
	ListByPeriod(ctx context.Context, start, end time.Time) ([]Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
