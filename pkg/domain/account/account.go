// Package account defines the Account aggregate: a currency-denominated
// balance owned by one user inside one namespace.
//
// Invariants:
//   - The currency is fixed at creation and never changes.
//   - The balance can never go negative.
//   - The balance is only mutated by the posting engine inside a committed
//     unit of work; external callers never set it directly.
package account

import (
	"fmt"
	"strings"
	"time"

	"finbook/pkg/currency"
	"finbook/pkg/domain"
	"finbook/pkg/money"

	"github.com/google/uuid"
)

// MaxNameLen bounds account names after trimming.
const MaxNameLen = 255

var (
	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", domain.ErrValidation)

	// ErrCurrencyMismatch is returned when an operation's currency differs
	// from the account currency.
	ErrCurrencyMismatch = fmt.Errorf("%w: currency mismatch", domain.ErrValidation)

	// ErrNameRequired is returned when the account name is empty.
	ErrNameRequired = fmt.Errorf("%w: account name is required", domain.ErrValidation)

	// ErrNameTooLong is returned when the account name exceeds MaxNameLen.
	ErrNameTooLong = fmt.Errorf("%w: account name exceeds %d characters", domain.ErrValidation, MaxNameLen)
)

// Account is the aggregate root for a single ledger account.
type Account struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	NamespaceID uuid.UUID
	Name        string
	Balance     money.Money
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Builder constructs Account instances, validating all invariants in Build.
type Builder struct {
	id           uuid.UUID
	userID       uuid.UUID
	namespaceID  uuid.UUID
	name         string
	code         currency.Code
	balanceMinor int64
	createdAt    time.Time
	updatedAt    time.Time
}

// New creates a Builder with a fresh ID and the default currency.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		code:      currency.DefaultCode,
		createdAt: time.Now(),
	}
}

// WithID sets the ID, for hydrating a persisted account.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owning user. Mandatory.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithNamespaceID sets the namespace the account belongs to. Mandatory.
func (b *Builder) WithNamespaceID(nsID uuid.UUID) *Builder {
	b.namespaceID = nsID
	return b
}

// WithName sets the display name. Mandatory; unique within the namespace,
// enforced at the store.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithCurrency sets the account currency. Defaults to currency.DefaultCode.
func (b *Builder) WithCurrency(code currency.Code) *Builder {
	b.code = code
	return b
}

// WithBalanceMinor sets the balance in minor units. Only for hydration and
// test setup; new accounts always start at zero.
func (b *Builder) WithBalanceMinor(minor int64) *Builder {
	b.balanceMinor = minor
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	name := strings.TrimSpace(b.name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	if b.userID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrValidation)
	}
	if b.namespaceID == uuid.Nil {
		return nil, fmt.Errorf("%w: namespace is required", domain.ErrValidation)
	}
	bal, err := money.NewFromMinor(b.balanceMinor, b.code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return &Account{
		ID:          b.id,
		UserID:      b.userID,
		NamespaceID: b.namespaceID,
		Name:        name,
		Balance:     bal,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.updatedAt,
	}, nil
}

// Currency returns the account currency.
func (a *Account) Currency() currency.Code {
	return a.Balance.Currency()
}

// Credit returns the balance after adding amount. The amount currency must
// match the account currency.
func (a *Account) Credit(amount money.Money) (money.Money, error) {
	if !a.Balance.IsSameCurrency(amount) {
		return money.Money{}, ErrCurrencyMismatch
	}
	return a.Balance.Add(amount)
}

// Debit returns the balance after subtracting amount. Fails when the amount
// currency differs or the balance would go negative (no overdraft).
func (a *Account) Debit(amount money.Money) (money.Money, error) {
	if !a.Balance.IsSameCurrency(amount) {
		return money.Money{}, ErrCurrencyMismatch
	}
	insufficient, err := a.Balance.LessThan(amount)
	if err != nil {
		return money.Money{}, err
	}
	if insufficient {
		return money.Money{}, ErrInsufficientFunds
	}
	return a.Balance.Subtract(amount)
}

// Rename validates and applies a new display name. Currency and balance are
// immutable; the name is the only caller-mutable attribute.
func (a *Account) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	a.Name = name
	return nil
}
