package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant is the isolation boundary: one customer business (or household).
// Created once at registration, never merged or split. Every tenant-scoped
// entity carries exactly one tenant id, immutable after creation.
type Tenant struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
	Sector      string    `json:"sector,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TenantRepository defines the interface for tenant storage
type TenantRepository interface {
	Create(ctx context.Context, tenant *Tenant) error
	Get(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*Tenant, error)
	Update(ctx context.Context, tenant *Tenant) error
}
