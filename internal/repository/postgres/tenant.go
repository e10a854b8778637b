package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/branda-app/branda/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TenantRepository handles tenant data access
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create creates a new tenant
func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, owner_user_id, sector, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.OwnerUserID,
		tenant.Sector,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

// Get retrieves a tenant by ID
func (r *TenantRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, name, owner_user_id, sector, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

// GetByOwner retrieves a tenant by its owner
func (r *TenantRepository) GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, name, owner_user_id, sector, created_at, updated_at
		FROM tenants
		WHERE owner_user_id = $1
	`
	return r.scanOne(ctx, query, ownerUserID)
}

// Update updates tenant metadata. Identity fields never change.
func (r *TenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, sector = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, tenant.ID, tenant.Name, tenant.Sector)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *TenantRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.Pool.QueryRow(ctx, query, arg).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.OwnerUserID,
		&tenant.Sector,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &tenant, nil
}
