// Package ledger defines the append-only Transaction record and the
// invariants each transaction kind must satisfy before it may be posted.
package ledger

import (
	"fmt"
	"time"

	"finbook/pkg/domain"
	"finbook/pkg/domain/rate"
	"finbook/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the kind of a posted transaction.
type Type string

// Transaction kinds: deposit, withdrawal, and inter-account movement.
const (
	TypeIn       Type = "IN"
	TypeOut      Type = "OUT"
	TypeTransfer Type = "TRANSFER"
)

// IsValid reports whether t is one of the known kinds.
func (t Type) IsValid() bool {
	switch t {
	case TypeIn, TypeOut, TypeTransfer:
		return true
	}
	return false
}

var (
	// ErrAmountNotPositive is returned when a posted amount is zero or
	// negative.
	ErrAmountNotPositive = fmt.Errorf("%w: amount must be positive", domain.ErrValidation)

	// ErrSameAccount is returned when a transfer names the same account on
	// both sides.
	ErrSameAccount = fmt.Errorf("%w: cannot transfer to the same account", domain.ErrValidation)

	// ErrTransferAmountMismatch is returned when a same-currency transfer
	// supplies unequal source and destination amounts.
	ErrTransferAmountMismatch = fmt.Errorf(
		"%w: source and destination amounts must match for same-currency transfers",
		domain.ErrValidation)

	// ErrDestinationAmountRequired is returned when a cross-currency
	// transfer omits the destination amount. There is no implicit rate to
	// fall back on; the rate pair is derived from the two amounts.
	ErrDestinationAmountRequired = fmt.Errorf(
		"%w: destination amount is required for cross-currency transfers",
		domain.ErrValidation)
)

// Transaction is an immutable record of a posted movement. Account
// references are weak: deleting an account later nulls the reference but
// never invalidates the record.
type Transaction struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Type   Type

	// Amount is the posted amount in the source currency (for IN, the
	// destination account's currency).
	Amount money.Money

	// DestinationAmount is set only for cross-currency transfers.
	DestinationAmount *money.Money

	// SourceRate and DestinationRate snapshot the effective rates applied
	// at posting time, independent of later ConversionRate changes.
	SourceRate      *decimal.Decimal
	DestinationRate *decimal.Decimal

	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID

	Description string
	CreatedAt   time.Time
}

// NewIn builds an IN (deposit) transaction: destination account only.
func NewIn(userID, accountID uuid.UUID, amount money.Money, description string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	dest := accountID
	return &Transaction{
		ID:                   uuid.New(),
		UserID:               userID,
		Type:                 TypeIn,
		Amount:               amount,
		DestinationAccountID: &dest,
		Description:          description,
		CreatedAt:            time.Now(),
	}, nil
}

// NewOut builds an OUT (withdrawal) transaction: source account only.
func NewOut(userID, accountID uuid.UUID, amount money.Money, description string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	src := accountID
	return &Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		Type:            TypeOut,
		Amount:          amount,
		SourceAccountID: &src,
		Description:     description,
		CreatedAt:       time.Now(),
	}, nil
}

// NewTransfer builds a TRANSFER transaction between two accounts.
//
// Same-currency transfers require sourceAmount == destinationAmount exactly;
// there is no implicit fee or slippage. Cross-currency transfers derive the
// effective rate pair from the two amounts and snapshot it on the record.
func NewTransfer(
	userID, sourceAccountID, destinationAccountID uuid.UUID,
	sourceAmount, destinationAmount money.Money,
	description string,
) (*Transaction, error) {
	if !sourceAmount.IsPositive() || !destinationAmount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if sourceAccountID == destinationAccountID {
		return nil, ErrSameAccount
	}

	tx := &Transaction{
		ID:                   uuid.New(),
		UserID:               userID,
		Type:                 TypeTransfer,
		Amount:               sourceAmount,
		SourceAccountID:      &sourceAccountID,
		DestinationAccountID: &destinationAccountID,
		Description:          description,
		CreatedAt:            time.Now(),
	}

	if sourceAmount.IsSameCurrency(destinationAmount) {
		if !sourceAmount.Equals(destinationAmount) {
			return nil, ErrTransferAmountMismatch
		}
		return tx, nil
	}

	pair, err := rate.Derive(
		sourceAmount.Minor(), destinationAmount.Minor(),
		sourceAmount.Currency(), destinationAmount.Currency(),
	)
	if err != nil {
		return nil, err
	}
	dst := destinationAmount
	tx.DestinationAmount = &dst
	tx.SourceRate = &pair.Source
	tx.DestinationRate = &pair.Destination
	return tx, nil
}
