// Package transaction defines the persistence contract for the append-only
// transaction ledger.
package transaction

import (
	"context"

	"finbook/pkg/dto"

	"github.com/google/uuid"
)

// Repository is the transaction ledger store. Rows are append-only: there is
// deliberately no update or delete operation.
type Repository interface {
	// Create appends a transaction row.
	Create(ctx context.Context, create dto.TransactionCreate) error

	// Get retrieves a transaction by (owner, id).
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.TransactionRead, error)

	// List returns the user's transactions matching the filter, ordered by
	// created_at descending with descending id as the tie-break. The result
	// is a finite snapshot; re-querying without intervening postings yields
	// identical output.
	List(ctx context.Context, userID uuid.UUID, filter dto.TransactionFilter) ([]*dto.TransactionRead, error)
}
