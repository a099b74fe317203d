package posting_test

import (
	"context"
	"log/slog"
	"testing"

	"finbook/pkg/domain"
	domainaccount "finbook/pkg/domain/account"
	"finbook/pkg/domain/ledger"
	"finbook/pkg/dto"
	"finbook/pkg/service/posting"
	"finbook/pkg/testutils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*posting.Service, *testutils.MemStore) {
	t.Helper()
	store := testutils.NewMemStore()
	svc := posting.NewService(testutils.NewUow(store), slog.Default())
	return svc, store
}

func seedAccount(store *testutils.MemStore, userID uuid.UUID, cur string, balanceMinor int64) uuid.UUID {
	return store.SeedAccount(userID, uuid.New(), "acct-"+uuid.NewString()[:8], cur, balanceMinor)
}

func amountOf(v float64) *float64 { return &v }

func TestPostIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("credits the account and appends a ledger row", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		acctID := seedAccount(store, userID, "USD", 0)

		tx, err := svc.PostIn(ctx, dto.PostIn{
			UserID: userID, AccountID: acctID,
			Amount: 25.50, Currency: "USD", Description: "paycheck",
		})
		require.NoError(t, err)
		assert.Equal(t, ledger.TypeIn, tx.Type)
		assert.Equal(t, int64(2550), tx.Amount.Minor())
		require.NotNil(t, tx.DestinationAccountID)
		assert.Equal(t, acctID, *tx.DestinationAccountID)
		assert.Nil(t, tx.SourceAccountID)

		assert.Equal(t, int64(2550), store.Accounts[acctID].BalanceMinor)
		require.Len(t, store.TxRows, 1)
		assert.Equal(t, "paycheck", store.TxRows[0].Description)
	})

	t.Run("rejects a currency that differs from the account", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		acctID := seedAccount(store, userID, "USD", 1000)

		_, err := svc.PostIn(ctx, dto.PostIn{
			UserID: userID, AccountID: acctID, Amount: 5, Currency: "EUR",
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, int64(1000), store.Accounts[acctID].BalanceMinor)
		assert.Empty(t, store.TxRows)
	})

	t.Run("rejects unsupported currency", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		acctID := seedAccount(store, userID, "USD", 0)

		_, err := svc.PostIn(ctx, dto.PostIn{
			UserID: userID, AccountID: acctID, Amount: 5, Currency: "XXX",
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		acctID := seedAccount(store, userID, "USD", 0)

		for _, amount := range []float64{0, -10} {
			_, err := svc.PostIn(ctx, dto.PostIn{
				UserID: userID, AccountID: acctID, Amount: amount, Currency: "USD",
			})
			require.ErrorIs(t, err, domain.ErrValidation)
		}
	})

	t.Run("reports not found for a foreign account", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		acctID := seedAccount(store, uuid.New(), "USD", 0)

		_, err := svc.PostIn(ctx, dto.PostIn{
			UserID: uuid.New(), AccountID: acctID, Amount: 5, Currency: "USD",
		})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPostOut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("withdrawal within balance succeeds, overdraft fails", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		acctID := seedAccount(store, userID, "USD", 10000)

		_, err := svc.PostOut(ctx, dto.PostOut{
			UserID: userID, AccountID: acctID, Amount: 70, Currency: "USD",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3000), store.Accounts[acctID].BalanceMinor)

		_, err = svc.PostOut(ctx, dto.PostOut{
			UserID: userID, AccountID: acctID, Amount: 70, Currency: "USD",
		})
		require.ErrorIs(t, err, domainaccount.ErrInsufficientFunds)
		assert.Equal(t, int64(3000), store.Accounts[acctID].BalanceMinor)
		assert.Len(t, store.TxRows, 1)
	})

	t.Run("withdrawing the exact balance drains it to zero", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		acctID := seedAccount(store, userID, "EUR", 555)

		_, err := svc.PostOut(ctx, dto.PostOut{
			UserID: userID, AccountID: acctID, Amount: 5.55, Currency: "EUR",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), store.Accounts[acctID].BalanceMinor)
	})

	t.Run("concurrent withdrawals admit exactly one winner", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		acctID := seedAccount(store, userID, "USD", 10000)

		results := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				_, err := svc.PostOut(ctx, dto.PostOut{
					UserID: userID, AccountID: acctID, Amount: 100, Currency: "USD",
				})
				results <- err
			}()
		}
		var failed int
		for i := 0; i < 2; i++ {
			if err := <-results; err != nil {
				require.ErrorIs(t, err, domainaccount.ErrInsufficientFunds)
				failed++
			}
		}
		assert.Equal(t, 1, failed)
		assert.Equal(t, int64(0), store.Accounts[acctID].BalanceMinor)
		assert.Len(t, store.TxRows, 1)
	})
}

func TestPostTransfer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("same currency conserves total funds", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		srcID := seedAccount(store, userID, "USD", 10000)
		dstID := seedAccount(store, userID, "USD", 500)

		tx, err := svc.PostTransfer(ctx, dto.PostTransfer{
			UserID:               userID,
			SourceAccountID:      srcID,
			DestinationAccountID: dstID,
			SourceAmount:         40,
			DestinationAmount:    amountOf(40),
			Description:          "rent share",
		})
		require.NoError(t, err)
		assert.Equal(t, ledger.TypeTransfer, tx.Type)
		assert.Nil(t, tx.SourceRate)
		assert.Nil(t, tx.DestinationRate)
		assert.Nil(t, tx.DestinationAmount)

		assert.Equal(t, int64(6000), store.Accounts[srcID].BalanceMinor)
		assert.Equal(t, int64(4500), store.Accounts[dstID].BalanceMinor)
		total := store.Accounts[srcID].BalanceMinor + store.Accounts[dstID].BalanceMinor
		assert.Equal(t, int64(10500), total)
	})

	t.Run("same currency rejects mismatched amounts", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		srcID := seedAccount(store, userID, "USD", 10000)
		dstID := seedAccount(store, userID, "USD", 0)

		_, err := svc.PostTransfer(ctx, dto.PostTransfer{
			UserID:               userID,
			SourceAccountID:      srcID,
			DestinationAccountID: dstID,
			SourceAmount:         40,
			DestinationAmount:    amountOf(39.99),
		})
		require.ErrorIs(t, err, ledger.ErrTransferAmountMismatch)
		assert.Equal(t, int64(10000), store.Accounts[srcID].BalanceMinor)
	})

	t.Run("omitted destination amount mirrors the source for same currency", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		srcID := seedAccount(store, userID, "USD", 10000)
		dstID := seedAccount(store, userID, "USD", 0)

		tx, err := svc.PostTransfer(ctx, dto.PostTransfer{
			UserID:               userID,
			SourceAccountID:      srcID,
			DestinationAccountID: dstID,
			SourceAmount:         25,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2500), tx.Amount.Minor())
		assert.Nil(t, tx.DestinationAmount)
		assert.Equal(t, int64(7500), store.Accounts[srcID].BalanceMinor)
		assert.Equal(t, int64(2500), store.Accounts[dstID].BalanceMinor)
	})

	t.Run("omitted destination amount is rejected across currencies", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		srcID := seedAccount(store, userID, "USD", 10000)
		dstID := seedAccount(store, userID, "EUR", 0)

		_, err := svc.PostTransfer(ctx, dto.PostTransfer{
			UserID:               userID,
			SourceAccountID:      srcID,
			DestinationAccountID: dstID,
			SourceAmount:         25,
		})
		require.ErrorIs(t, err, ledger.ErrDestinationAmountRequired)
		assert.Equal(t, int64(10000), store.Accounts[srcID].BalanceMinor)
		assert.Equal(t, int64(0), store.Accounts[dstID].BalanceMinor)
		assert.Empty(t, store.TxRows)
	})

	t.Run("cross currency snapshots the derived rate pair", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		srcID := seedAccount(store, userID, "USD", 5000)
		dstID := seedAccount(store, userID, "EUR", 0)

		tx, err := svc.PostTransfer(ctx, dto.PostTransfer{
			UserID:               userID,
			SourceAccountID:      srcID,
			DestinationAccountID: dstID,
			SourceAmount:         10.00,
			DestinationAmount:    amountOf(9.20),
		})
		require.NoError(t, err)
		require.NotNil(t, tx.SourceRate)
		require.NotNil(t, tx.DestinationRate)
		assert.True(t, tx.SourceRate.Equal(decimal.RequireFromString("1.086957")),
			"got %s", tx.SourceRate)
		assert.True(t, tx.DestinationRate.Equal(decimal.RequireFromString("0.920000")),
			"got %s", tx.DestinationRate)
		require.NotNil(t, tx.DestinationAmount)
		assert.Equal(t, int64(920), tx.DestinationAmount.Minor())

		assert.Equal(t, int64(4000), store.Accounts[srcID].BalanceMinor)
		assert.Equal(t, int64(920), store.Accounts[dstID].BalanceMinor)
	})

	t.Run("rejects transferring to the same account", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		acctID := seedAccount(store, userID, "USD", 10000)

		_, err := svc.PostTransfer(ctx, dto.PostTransfer{
			UserID:               userID,
			SourceAccountID:      acctID,
			DestinationAccountID: acctID,
			SourceAmount:         10,
			DestinationAmount:    amountOf(10),
		})
		require.ErrorIs(t, err, ledger.ErrSameAccount)
	})

	t.Run("insufficient source funds leaves both balances untouched", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		srcID := seedAccount(store, userID, "USD", 500)
		dstID := seedAccount(store, userID, "USD", 0)

		_, err := svc.PostTransfer(ctx, dto.PostTransfer{
			UserID:               userID,
			SourceAccountID:      srcID,
			DestinationAccountID: dstID,
			SourceAmount:         10,
			DestinationAmount:    amountOf(10),
		})
		require.ErrorIs(t, err, domainaccount.ErrInsufficientFunds)
		assert.Equal(t, int64(500), store.Accounts[srcID].BalanceMinor)
		assert.Equal(t, int64(0), store.Accounts[dstID].BalanceMinor)
	})

	t.Run("ledger failure rolls back both balance writes", func(t *testing.T) {
		t.Parallel()
		svc, store := newFixture(t)
		userID := uuid.New()
		srcID := seedAccount(store, userID, "USD", 10000)
		dstID := seedAccount(store, userID, "USD", 0)
		store.FailTxCreate = true

		_, err := svc.PostTransfer(ctx, dto.PostTransfer{
			UserID:               userID,
			SourceAccountID:      srcID,
			DestinationAccountID: dstID,
			SourceAmount:         40,
			DestinationAmount:    amountOf(40),
		})
		require.Error(t, err)
		assert.Equal(t, int64(10000), store.Accounts[srcID].BalanceMinor)
		assert.Equal(t, int64(0), store.Accounts[dstID].BalanceMinor)
		assert.Empty(t, store.TxRows)
	})
}

func TestListTransactions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seed := func(t *testing.T) (*posting.Service, uuid.UUID, uuid.UUID, uuid.UUID) {
		t.Helper()
		svc, store := newFixture(t)
		userID := uuid.New()
		a := seedAccount(store, userID, "USD", 100000)
		b := seedAccount(store, userID, "USD", 0)

		_, err := svc.PostIn(ctx, dto.PostIn{UserID: userID, AccountID: a, Amount: 10, Currency: "USD"})
		require.NoError(t, err)
		_, err = svc.PostOut(ctx, dto.PostOut{UserID: userID, AccountID: a, Amount: 5, Currency: "USD"})
		require.NoError(t, err)
		_, err = svc.PostTransfer(ctx, dto.PostTransfer{
			UserID: userID, SourceAccountID: a, DestinationAccountID: b,
			SourceAmount: 3, DestinationAmount: amountOf(3),
		})
		require.NoError(t, err)
		return svc, userID, a, b
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()
		svc, userID, _, _ := seed(t)

		list, err := svc.ListTransactions(ctx, userID, dto.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, string(ledger.TypeTransfer), list[0].Type)
		assert.Equal(t, string(ledger.TypeOut), list[1].Type)
		assert.Equal(t, string(ledger.TypeIn), list[2].Type)
	})

	t.Run("filters by type and account", func(t *testing.T) {
		t.Parallel()
		svc, userID, _, b := seed(t)

		outType := string(ledger.TypeOut)
		list, err := svc.ListTransactions(ctx, userID, dto.TransactionFilter{Type: &outType})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, outType, list[0].Type)

		list, err = svc.ListTransactions(ctx, userID, dto.TransactionFilter{AccountID: &b})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, string(ledger.TypeTransfer), list[0].Type)
	})

	t.Run("rejects an unknown type filter", func(t *testing.T) {
		t.Parallel()
		svc, userID, _, _ := seed(t)

		bogus := "REFUND"
		_, err := svc.ListTransactions(ctx, userID, dto.TransactionFilter{Type: &bogus})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("repeated reads return identical snapshots", func(t *testing.T) {
		t.Parallel()
		svc, userID, _, _ := seed(t)

		first, err := svc.ListTransactions(ctx, userID, dto.TransactionFilter{})
		require.NoError(t, err)
		second, err := svc.ListTransactions(ctx, userID, dto.TransactionFilter{})
		require.NoError(t, err)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
		}
	})

	t.Run("scopes rows to the owner", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := seed(t)

		list, err := svc.ListTransactions(ctx, uuid.New(), dto.TransactionFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestGetTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newFixture(t)
	userID := uuid.New()
	acctID := seedAccount(store, userID, "USD", 0)

	tx, err := svc.PostIn(ctx, dto.PostIn{UserID: userID, AccountID: acctID, Amount: 1, Currency: "USD"})
	require.NoError(t, err)

	got, err := svc.GetTransaction(ctx, userID, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)

	_, err = svc.GetTransaction(ctx, uuid.New(), tx.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
