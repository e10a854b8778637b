// Package tenant propagates the active tenant through context.Context so the
// data layer can scope every query without threading tenant IDs through call
// signatures.
package tenant

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	tenantKey ctxKey = iota
	skipFilterKey
)

// With returns a child context carrying the given tenant ID. Nested calls
// shadow the outer tenant for the inner scope only.
func With(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantKey, tenantID)
}

// FromContext returns the active tenant ID, or false when none is set.
func FromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(tenantKey).(uuid.UUID)
	return id, ok
}

// RunWith executes fn with the tenant bound to a derived context. The
// caller's context is never mutated.
func RunWith(ctx context.Context, tenantID uuid.UUID, fn func(ctx context.Context) error) error {
	return fn(With(ctx, tenantID))
}

// SkipFilter marks a derived context so data access bypasses automatic
// tenant scoping. Intended for administrative and cross-tenant maintenance
// paths only.
func SkipFilter(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipFilterKey, true)
}

// FilterSkipped reports whether tenant scoping is disabled for this context.
func FilterSkipped(ctx context.Context) bool {
	skip, ok := ctx.Value(skipFilterKey).(bool)
	return ok && skip
}
