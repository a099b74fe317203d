// Package user defines the persistence contract for users.
package user

import (
	"context"

	"finbook/pkg/dto"

	"github.com/google/uuid"
)

// Repository is the user store.
type Repository interface {
	// Create inserts a new user. Duplicate username or email yields
	// domain.ErrConflict.
	Create(ctx context.Context, create dto.UserCreate) error

	// Get retrieves a user by id.
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	// GetByIdentity retrieves a user by username or email, for login.
	GetByIdentity(ctx context.Context, identity string) (*dto.UserRead, error)
}
