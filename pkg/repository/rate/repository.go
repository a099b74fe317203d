// Package rate defines the persistence contract for conversion rates.
package rate

import (
	"context"

	"finbook/pkg/dto"

	"github.com/google/uuid"
)

// Repository is the conversion-rate store. The posting engine treats it as
// read-only; only the owning user mutates rates.
type Repository interface {
	// Create inserts a rate. A duplicate (user, from, to) pair yields
	// domain.ErrConflict.
	Create(ctx context.Context, create dto.RateCreate) error

	// Get retrieves the rate for an ordered currency pair.
	Get(ctx context.Context, userID uuid.UUID, from, to string) (*dto.RateRead, error)

	// ListByUser lists the user's rates.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.RateRead, error)

	// Update replaces the rate value of an existing pair.
	Update(ctx context.Context, userID uuid.UUID, from, to string, update dto.RateUpdate) error

	// Delete removes the rate for an ordered currency pair.
	Delete(ctx context.Context, userID uuid.UUID, from, to string) error
}
