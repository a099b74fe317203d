package account_test

import (
	"testing"

	"finbook/pkg/currency"
	"finbook/pkg/domain"
	"finbook/pkg/domain/account"
	"finbook/pkg/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, balanceMinor int64, code currency.Code) *account.Account {
	t.Helper()
	acc, err := account.New().
		WithUserID(uuid.New()).
		WithNamespaceID(uuid.New()).
		WithName("checking").
		WithCurrency(code).
		WithBalanceMinor(balanceMinor).
		Build()
	require.NoError(t, err)
	return acc
}

func TestBuild(t *testing.T) {
	t.Parallel()
	acc := build(t, 10000, currency.USD)
	assert.NotEqual(t, uuid.Nil, acc.ID)
	assert.Equal(t, currency.USD, acc.Currency())
	assert.Equal(t, int64(10000), acc.Balance.Minor())
}

func TestBuild_Invalid(t *testing.T) {
	t.Parallel()

	t.Run("missing name", func(t *testing.T) {
		_, err := account.New().WithUserID(uuid.New()).WithNamespaceID(uuid.New()).Build()
		assert.ErrorIs(t, err, account.ErrNameRequired)
	})
	t.Run("missing owner", func(t *testing.T) {
		_, err := account.New().WithNamespaceID(uuid.New()).WithName("x").Build()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("unsupported currency", func(t *testing.T) {
		_, err := account.New().
			WithUserID(uuid.New()).WithNamespaceID(uuid.New()).
			WithName("x").WithCurrency("JPY").Build()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestDebit(t *testing.T) {
	t.Parallel()
	acc := build(t, 10000, currency.USD) // 100.00 USD

	t.Run("within balance", func(t *testing.T) {
		newBal, err := acc.Debit(money.Must(30, currency.USD))
		require.NoError(t, err)
		assert.Equal(t, int64(7000), newBal.Minor())
	})
	t.Run("exactly the balance", func(t *testing.T) {
		newBal, err := acc.Debit(money.Must(100, currency.USD))
		require.NoError(t, err)
		assert.Equal(t, int64(0), newBal.Minor())
	})
	t.Run("insufficient funds", func(t *testing.T) {
		_, err := acc.Debit(money.Must(100.01, currency.USD))
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
	})
	t.Run("currency mismatch", func(t *testing.T) {
		_, err := acc.Debit(money.Must(1, currency.EUR))
		assert.ErrorIs(t, err, account.ErrCurrencyMismatch)
	})
}

func TestCredit(t *testing.T) {
	t.Parallel()
	acc := build(t, 0, currency.EUR)

	newBal, err := acc.Credit(money.Must(9.20, currency.EUR))
	require.NoError(t, err)
	assert.Equal(t, int64(920), newBal.Minor())

	_, err = acc.Credit(money.Must(1, currency.USD))
	assert.ErrorIs(t, err, account.ErrCurrencyMismatch)
}

func TestRename(t *testing.T) {
	t.Parallel()
	acc := build(t, 0, currency.USD)

	require.NoError(t, acc.Rename("  savings  "))
	assert.Equal(t, "savings", acc.Name)

	assert.ErrorIs(t, acc.Rename("   "), account.ErrNameRequired)
}
