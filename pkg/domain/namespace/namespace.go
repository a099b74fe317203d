// Package namespace defines the user-scoped grouping that accounts live in
// (e.g., "personal", "business").
package namespace

import (
	"fmt"
	"strings"
	"time"

	"finbook/pkg/domain"

	"github.com/google/uuid"
)

// MaxNameLen bounds namespace names after trimming.
const MaxNameLen = 50

var (
	// ErrNameRequired is returned when the name is empty or whitespace.
	ErrNameRequired = fmt.Errorf("%w: namespace name is required", domain.ErrValidation)

	// ErrNameTooLong is returned when the name exceeds MaxNameLen.
	ErrNameTooLong = fmt.Errorf("%w: namespace name exceeds %d characters", domain.ErrValidation, MaxNameLen)
)

// Namespace is a named grouping of accounts owned by a single user. Names are
// unique per user; different users may reuse the same name.
type Namespace struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New validates and builds a Namespace for the given owner. The name is
// trimmed before validation so that what is checked is what gets stored.
func New(userID uuid.UUID, name string) (*Namespace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrValidation)
	}
	return &Namespace{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}
