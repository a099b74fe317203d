package namespace_test

import (
	"context"
	"log/slog"
	"testing"

	"finbook/pkg/domain"
	"finbook/pkg/service/namespace"
	"finbook/pkg/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*namespace.Service, *testutils.MemStore) {
	t.Helper()
	store := testutils.NewMemStore()
	return namespace.NewService(testutils.NewUow(store), slog.Default()), store
}

func TestCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates and trims the name", func(t *testing.T) {
		t.Parallel()
		svc, _ := newFixture(t)
		userID := uuid.New()

		got, err := svc.Create(ctx, userID, "  personal  ")
		require.NoError(t, err)
		assert.Equal(t, "personal", got.Name)
		assert.Equal(t, userID, got.UserID)
	})

	t.Run("rejects a duplicate name for the same user", func(t *testing.T) {
		t.Parallel()
		svc, _ := newFixture(t)
		userID := uuid.New()

		_, err := svc.Create(ctx, userID, "personal")
		require.NoError(t, err)
		_, err = svc.Create(ctx, userID, "personal")
		require.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("different users may reuse a name", func(t *testing.T) {
		t.Parallel()
		svc, _ := newFixture(t)

		_, err := svc.Create(ctx, uuid.New(), "personal")
		require.NoError(t, err)
		_, err = svc.Create(ctx, uuid.New(), "personal")
		require.NoError(t, err)
	})

	t.Run("rejects empty and oversized names", func(t *testing.T) {
		t.Parallel()
		svc, _ := newFixture(t)
		userID := uuid.New()

		_, err := svc.Create(ctx, userID, "   ")
		require.ErrorIs(t, err, domain.ErrValidation)

		long := make([]byte, 51)
		for i := range long {
			long[i] = 'a'
		}
		_, err = svc.Create(ctx, userID, string(long))
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("delete cascades to the namespace accounts", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		nsID := store.SeedNamespace(userID, "personal")
		acctID := store.SeedAccount(userID, nsID, "checking", "USD", 0)

		require.NoError(t, svc.Delete(ctx, userID, nsID))
		assert.NotContains(t, store.Namespaces, nsID)
		assert.NotContains(t, store.Accounts, acctID)
	})

	t.Run("a foreign namespace reads as not found", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		nsID := store.SeedNamespace(uuid.New(), "personal")

		err := svc.Delete(ctx, uuid.New(), nsID)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, store.Namespaces, nsID)
	})
}

func TestList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, store := newFixture(t)
	userID := uuid.New()
	store.SeedNamespace(userID, "business")
	store.SeedNamespace(userID, "personal")
	store.SeedNamespace(uuid.New(), "other")

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "business", list[0].Name)
	assert.Equal(t, "personal", list[1].Name)
}
