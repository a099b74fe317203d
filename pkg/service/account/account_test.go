package account_test

import (
	"context"
	"log/slog"
	"testing"

	"finbook/pkg/domain"
	"finbook/pkg/service/account"
	"finbook/pkg/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*account.Service, *testutils.MemStore) {
	t.Helper()
	store := testutils.NewMemStore()
	return account.NewService(testutils.NewUow(store), slog.Default()), store
}

func TestCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates a zero-balance account in the namespace", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		nsID := store.SeedNamespace(userID, "personal")

		got, err := svc.Create(ctx, userID, nsID, "checking", "EUR")
		require.NoError(t, err)
		assert.Equal(t, "checking", got.Name)
		assert.Equal(t, "EUR", got.Currency)
		assert.Equal(t, int64(0), got.BalanceMinor)
		assert.Equal(t, int64(0), store.Accounts[got.ID].BalanceMinor)
	})

	t.Run("rejects duplicate names in the same namespace", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		nsID := store.SeedNamespace(userID, "personal")

		_, err := svc.Create(ctx, userID, nsID, "checking", "USD")
		require.NoError(t, err)
		_, err = svc.Create(ctx, userID, nsID, "checking", "USD")
		require.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("allows the same name in a different namespace", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		nsA := store.SeedNamespace(userID, "personal")
		nsB := store.SeedNamespace(userID, "business")

		_, err := svc.Create(ctx, userID, nsA, "checking", "USD")
		require.NoError(t, err)
		_, err = svc.Create(ctx, userID, nsB, "checking", "USD")
		require.NoError(t, err)
	})

	t.Run("rejects unsupported currency and missing namespace", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		nsID := store.SeedNamespace(userID, "personal")

		_, err := svc.Create(ctx, userID, nsID, "checking", "GBP")
		require.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.Create(ctx, userID, uuid.New(), "checking", "USD")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rejects a foreign namespace", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		nsID := store.SeedNamespace(uuid.New(), "personal")

		_, err := svc.Create(ctx, uuid.New(), nsID, "checking", "USD")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRename(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("renames and keeps balance and currency", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		nsID := store.SeedNamespace(userID, "personal")
		acctID := store.SeedAccount(userID, nsID, "checking", "USD", 1234)

		got, err := svc.Rename(ctx, userID, acctID, "daily driver")
		require.NoError(t, err)
		assert.Equal(t, "daily driver", got.Name)
		assert.Equal(t, int64(1234), got.BalanceMinor)
		assert.Equal(t, "USD", got.Currency)
	})

	t.Run("rejects a rename onto an existing name", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		nsID := store.SeedNamespace(userID, "personal")
		store.SeedAccount(userID, nsID, "savings", "USD", 0)
		acctID := store.SeedAccount(userID, nsID, "checking", "USD", 0)

		_, err := svc.Rename(ctx, userID, acctID, "savings")
		require.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, "checking", store.Accounts[acctID].Name)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		nsID := store.SeedNamespace(userID, "personal")
		acctID := store.SeedAccount(userID, nsID, "checking", "USD", 0)

		_, err := svc.Rename(ctx, userID, acctID, "   ")
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, store := newFixture(t)
	userID := uuid.New()
	nsID := store.SeedNamespace(userID, "personal")
	acctID := store.SeedAccount(userID, nsID, "checking", "USD", 0)

	require.NoError(t, svc.Delete(ctx, userID, acctID))
	_, err := svc.Get(ctx, userID, acctID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, userID, acctID), domain.ErrNotFound)
}

func TestList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, store := newFixture(t)
	userID := uuid.New()
	nsA := store.SeedNamespace(userID, "personal")
	nsB := store.SeedNamespace(userID, "business")
	store.SeedAccount(userID, nsA, "checking", "USD", 0)
	store.SeedAccount(userID, nsA, "savings", "USD", 0)
	store.SeedAccount(userID, nsB, "payroll", "DZD", 0)
	store.SeedAccount(uuid.New(), nsA, "other", "USD", 0)

	all, err := svc.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := svc.ListByNamespace(ctx, userID, nsA)
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	for _, a := range scoped {
		assert.Equal(t, nsA, a.NamespaceID)
	}
}
