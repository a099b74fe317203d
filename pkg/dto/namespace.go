package dto

import (
	"time"

	"github.com/google/uuid"
)

// NamespaceCreate is the input for persisting a new namespace.
type NamespaceCreate struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
}

// NamespaceRead is the read-optimized namespace projection.
type NamespaceRead struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
