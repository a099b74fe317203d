// Package account defines the persistence contract for accounts.
package account

import (
	"context"

	"finbook/pkg/dto"

	"github.com/google/uuid"
)

// Repository is the account store. All lookups are scoped by owner: a
// missing row and a row owned by someone else are both reported as
// domain.ErrNotFound.
type Repository interface {
	// Create inserts a new account. A duplicate (user, namespace, name)
	// yields domain.ErrConflict.
	Create(ctx context.Context, create dto.AccountCreate) error

	// Get retrieves an account by (owner, id).
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error)

	// GetForUpdate retrieves an account by (owner, id) under a row-level
	// write lock. Only meaningful inside a UnitOfWork transaction; the lock
	// is held until that transaction ends.
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error)

	// GetByName retrieves an account by (owner, namespace, name).
	GetByName(ctx context.Context, userID, namespaceID uuid.UUID, name string) (*dto.AccountRead, error)

	// ListByUser lists all accounts owned by the user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error)

	// ListByNamespace lists the user's accounts in one namespace.
	ListByNamespace(ctx context.Context, userID, namespaceID uuid.UUID) ([]*dto.AccountRead, error)

	// Update applies the non-nil fields of update. Renames hitting the
	// (user, namespace, name) constraint yield domain.ErrConflict.
	Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error

	// UpdateBalance sets the balance in minor units. Reserved for the
	// posting engine inside a unit of work holding the row lock.
	UpdateBalance(ctx context.Context, id uuid.UUID, balanceMinor int64) error

	// Delete removes an account by (owner, id). Historical transactions
	// keep a nulled reference.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
