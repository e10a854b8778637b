package tenant

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_Empty(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestWith_SetsTenant(t *testing.T) {
	id := uuid.New()
	ctx := With(context.Background(), id)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestWith_NestedShadowsOuter(t *testing.T) {
	outer := uuid.New()
	inner := uuid.New()

	outerCtx := With(context.Background(), outer)
	innerCtx := With(outerCtx, inner)

	got, ok := FromContext(innerCtx)
	require.True(t, ok)
	assert.Equal(t, inner, got)

	// the outer context is untouched
	got, ok = FromContext(outerCtx)
	require.True(t, ok)
	assert.Equal(t, outer, got)
}

func TestRunWith_DoesNotMutateCaller(t *testing.T) {
	id := uuid.New()
	base := context.Background()

	err := RunWith(base, id, func(ctx context.Context) error {
		got, ok := FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, id, got)
		return nil
	})
	require.NoError(t, err)

	_, ok := FromContext(base)
	assert.False(t, ok)
}

func TestWith_ConcurrentScopesAreIndependent(t *testing.T) {
	base := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.New()
			ctx := With(base, id)
			got, ok := FromContext(ctx)
			assert.True(t, ok)
			assert.Equal(t, id, got)
		}()
	}
	wg.Wait()
}

func TestSkipFilter(t *testing.T) {
	ctx := With(context.Background(), uuid.New())
	assert.False(t, FilterSkipped(ctx))

	skipped := SkipFilter(ctx)
	assert.True(t, FilterSkipped(skipped))

	// the tenant is still visible in the skipped scope
	_, ok := FromContext(skipped)
	assert.True(t, ok)

	// and the parent scope remains filtered
	assert.False(t, FilterSkipped(ctx))
}
