package mongodb

import (
	"context"
	"testing"

	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/tenant"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestScopedFilter_AddsTenantClause(t *testing.T) {
	tenantID := uuid.New()
	ctx := tenant.With(context.Background(), tenantID)

	filter, err := scopedFilter(ctx, bson.M{"isActive": true})
	require.NoError(t, err)
	assert.Equal(t, tenantID, filter[tenantField])
	assert.Equal(t, true, filter["isActive"])
}

func TestScopedFilter_NilFilter(t *testing.T) {
	tenantID := uuid.New()
	ctx := tenant.With(context.Background(), tenantID)

	filter, err := scopedFilter(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, bson.M{tenantField: tenantID}, filter)
}

func TestScopedFilter_NoTenantRejected(t *testing.T) {
	_, err := scopedFilter(context.Background(), bson.M{})
	require.Error(t, err)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestScopedFilter_SkipBypassesScoping(t *testing.T) {
	ctx := tenant.SkipFilter(context.Background())

	filter, err := scopedFilter(ctx, bson.M{"isActive": true})
	require.NoError(t, err)
	_, scoped := filter[tenantField]
	assert.False(t, scoped)
}

func TestGuardInsert_StampsContextTenant(t *testing.T) {
	tenantID := uuid.New()
	ctx := tenant.With(context.Background(), tenantID)

	got, err := guardInsert(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, tenantID, got)
}

func TestGuardInsert_MatchingTenantAccepted(t *testing.T) {
	tenantID := uuid.New()
	ctx := tenant.With(context.Background(), tenantID)

	got, err := guardInsert(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, tenantID, got)
}

func TestGuardInsert_CrossTenantRejected(t *testing.T) {
	ctx := tenant.With(context.Background(), uuid.New())

	_, err := guardInsert(ctx, uuid.New())
	require.Error(t, err)

	var aerr *domain.AuthorizationError
	assert.ErrorAs(t, err, &aerr)
}

func TestGuardInsert_NoTenantAnywhere(t *testing.T) {
	_, err := guardInsert(context.Background(), uuid.Nil)
	require.Error(t, err)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGuardInsert_SkipRequiresExplicitTenant(t *testing.T) {
	ctx := tenant.SkipFilter(context.Background())

	_, err := guardInsert(ctx, uuid.Nil)
	require.Error(t, err)

	explicit := uuid.New()
	got, err := guardInsert(ctx, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
}

func TestGuardUpdate_RejectsTenantChange(t *testing.T) {
	cases := []struct {
		name   string
		update bson.M
	}{
		{"set", bson.M{"$set": bson.M{tenantField: uuid.New()}}},
		{"set_on_insert", bson.M{"$setOnInsert": bson.M{tenantField: uuid.New()}}},
		{"replacement", bson.M{tenantField: uuid.New()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := guardUpdate(tc.update)
			require.Error(t, err)

			var aerr *domain.AuthorizationError
			assert.ErrorAs(t, err, &aerr)
		})
	}
}

func TestGuardUpdate_AllowsRegularFields(t *testing.T) {
	err := guardUpdate(bson.M{"$set": bson.M{"name": "Croissant", "price": 1.5}})
	assert.NoError(t, err)
}
