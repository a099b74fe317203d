package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionCreate is the input for appending a transaction row. All
// monetary amounts are in minor units.
type TransactionCreate struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	Type                   string
	AmountMinor            int64
	Currency               string
	DestinationAmountMinor *int64
	DestinationCurrency    *string
	SourceRate             *decimal.Decimal
	DestinationRate        *decimal.Decimal
	SourceAccountID        *uuid.UUID
	DestinationAccountID   *uuid.UUID
	Description            string
}

// TransactionRead is the read-optimized transaction projection. Account
// references are nullable: deleting an account leaves historical rows with a
// nil reference.
type TransactionRead struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	Type                   string
	AmountMinor            int64
	Currency               string
	DestinationAmountMinor *int64
	DestinationCurrency    *string
	SourceRate             *decimal.Decimal
	DestinationRate        *decimal.Decimal
	SourceAccountID        *uuid.UUID
	DestinationAccountID   *uuid.UUID
	Description            string
	CreatedAt              time.Time
}

// TransactionFilter narrows a transaction listing. A nil field means no
// filtering on it. AccountID matches rows where the account appears as
// either source or destination.
type TransactionFilter struct {
	Type      *string
	AccountID *uuid.UUID
}

// PostIn is the command for depositing into an account.
type PostIn struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Amount      float64
	Currency    string
	Description string
}

// PostOut is the command for withdrawing from an account.
type PostOut struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Amount      float64
	Currency    string
	Description string
}

// PostTransfer is the command for moving funds between two accounts. For
// cross-currency transfers the caller supplies both amounts and the
// effective rate is derived from the pair. A nil DestinationAmount is
// allowed only when the accounts share a currency, where it means "same as
// the source amount".
type PostTransfer struct {
	UserID               uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	SourceAmount         float64
	DestinationAmount    *float64
	Description          string
}
