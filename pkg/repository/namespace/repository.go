// Package namespace defines the persistence contract for namespaces.
package namespace

import (
	"context"

	"finbook/pkg/dto"

	"github.com/google/uuid"
)

// Repository is the namespace store.
type Repository interface {
	// Create inserts a new namespace. A duplicate (user, name) yields
	// domain.ErrConflict.
	Create(ctx context.Context, create dto.NamespaceCreate) error

	// Get retrieves a namespace by (owner, id).
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.NamespaceRead, error)

	// GetByName retrieves a namespace by (owner, name).
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*dto.NamespaceRead, error)

	// ListByUser lists the user's namespaces.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.NamespaceRead, error)

	// Delete removes a namespace by (owner, id).
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
