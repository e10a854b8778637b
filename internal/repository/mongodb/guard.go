package mongodb

import (
	"context"

	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/tenant"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// tenantField is the document field every scoped collection carries.
const tenantField = "tenantId"

// scopedFilter extends filter with the active tenant clause. When the
// context carries no tenant and scoping is not explicitly skipped, the
// query is rejected before it reaches the database.
func scopedFilter(ctx context.Context, filter bson.M) (bson.M, error) {
	if tenant.FilterSkipped(ctx) {
		return filter, nil
	}

	tenantID, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, domain.NewValidationError("no tenant in context")
	}

	if filter == nil {
		filter = bson.M{}
	}
	filter[tenantField] = tenantID
	return filter, nil
}

// guardInsert resolves the tenant id an insert must carry. A document
// tenant id that disagrees with the context tenant is a cross-tenant
// write attempt and is rejected hard.
func guardInsert(ctx context.Context, docTenantID uuid.UUID) (uuid.UUID, error) {
	if tenant.FilterSkipped(ctx) {
		if docTenantID == uuid.Nil {
			return uuid.Nil, domain.NewValidationError("insert without tenant id")
		}
		return docTenantID, nil
	}

	ctxTenantID, ok := tenant.FromContext(ctx)
	if !ok {
		if docTenantID == uuid.Nil {
			return uuid.Nil, domain.NewValidationError("insert without tenant id")
		}
		return uuid.Nil, domain.NewValidationError("no tenant in context")
	}

	if docTenantID != uuid.Nil && docTenantID != ctxTenantID {
		return uuid.Nil, domain.NewAuthorizationError("insert tenant %s does not match context tenant %s", docTenantID, ctxTenantID)
	}
	return ctxTenantID, nil
}

// guardUpdate rejects update documents that would reassign an entity to
// another tenant. The tenant id is immutable after creation.
func guardUpdate(update bson.M) error {
	for _, op := range []string{"$set", "$setOnInsert"} {
		if fields, ok := update[op].(bson.M); ok {
			if _, found := fields[tenantField]; found {
				return domain.NewAuthorizationError("tenant id cannot be changed")
			}
		}
	}
	if _, found := update[tenantField]; found {
		return domain.NewAuthorizationError("tenant id cannot be changed")
	}
	return nil
}
