package rate_test

import (
	"context"
	"log/slog"
	"testing"

	"finbook/pkg/domain"
	domainrate "finbook/pkg/domain/rate"
	"finbook/pkg/service/rate"
	"finbook/pkg/testutils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) *rate.Service {
	t.Helper()
	store := testutils.NewMemStore()
	return rate.NewService(testutils.NewUow(store), slog.Default())
}

func TestCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores the rate rounded to six digits", func(t *testing.T) {
		t.Parallel()
		svc := newFixture(t)
		userID := uuid.New()

		got, err := svc.Create(ctx, userID, "USD", "EUR", decimal.RequireFromString("0.91999949"))
		require.NoError(t, err)
		assert.True(t, got.Rate.Equal(decimal.RequireFromString("0.919999")), "got %s", got.Rate)
	})

	t.Run("rejects a duplicate ordered pair", func(t *testing.T) {
		t.Parallel()
		svc := newFixture(t)
		userID := uuid.New()

		_, err := svc.Create(ctx, userID, "USD", "EUR", decimal.NewFromFloat(0.92))
		require.NoError(t, err)
		_, err = svc.Create(ctx, userID, "USD", "EUR", decimal.NewFromFloat(0.93))
		require.ErrorIs(t, err, domain.ErrConflict)

		// The reverse direction is a distinct pair.
		_, err = svc.Create(ctx, userID, "EUR", "USD", decimal.NewFromFloat(1.09))
		require.NoError(t, err)
	})

	t.Run("rejects invalid pairs and values", func(t *testing.T) {
		t.Parallel()
		svc := newFixture(t)
		userID := uuid.New()

		_, err := svc.Create(ctx, userID, "USD", "USD", decimal.NewFromInt(1))
		require.ErrorIs(t, err, domainrate.ErrSamePair)

		_, err = svc.Create(ctx, userID, "USD", "GBP", decimal.NewFromInt(1))
		require.ErrorIs(t, err, domainrate.ErrUnsupportedCurrency)

		_, err = svc.Create(ctx, userID, "USD", "EUR", decimal.Zero)
		require.ErrorIs(t, err, domainrate.ErrRateNotPositive)
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newFixture(t)
	userID := uuid.New()
	_, err := svc.Create(ctx, userID, "USD", "DZD", decimal.NewFromFloat(134.5))
	require.NoError(t, err)

	got, err := svc.Update(ctx, userID, "USD", "DZD", decimal.NewFromFloat(135.25))
	require.NoError(t, err)
	assert.True(t, got.Rate.Equal(decimal.NewFromFloat(135.25)))

	_, err = svc.Update(ctx, userID, "EUR", "DZD", decimal.NewFromInt(145))
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, userID, "USD", "DZD", decimal.NewFromInt(-1))
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newFixture(t)
	userID := uuid.New()
	_, err := svc.Create(ctx, userID, "USD", "EUR", decimal.NewFromFloat(0.92))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, "USD", "EUR"))
	_, err = svc.Get(ctx, userID, "USD", "EUR")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, userID, "USD", "EUR"), domain.ErrNotFound)
}

func TestListIsUserScoped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newFixture(t)
	alice := uuid.New()
	bob := uuid.New()
	_, err := svc.Create(ctx, alice, "USD", "EUR", decimal.NewFromFloat(0.92))
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, "USD", "EUR", decimal.NewFromFloat(0.95))
	require.NoError(t, err)

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Rate.Equal(decimal.NewFromFloat(0.92)))
}
