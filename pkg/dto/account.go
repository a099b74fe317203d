// Package dto holds the data-transfer structs passed between services,
// repositories, and the API layer. Repositories accept Create/Update DTOs
// and return read-optimized DTOs; domain aggregates never cross the
// persistence boundary directly.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountCreate is the input for persisting a new account.
type AccountCreate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	NamespaceID uuid.UUID
	Name        string
	Currency    string
	// BalanceMinor is always zero for new accounts; present for hydration in
	// tests.
	BalanceMinor int64
}

// AccountUpdate carries optional field updates. Balance updates are reserved
// for the posting engine.
type AccountUpdate struct {
	Name         *string
	BalanceMinor *int64
}

// AccountRead is the read-optimized account projection.
type AccountRead struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	NamespaceID  uuid.UUID
	Name         string
	Currency     string
	BalanceMinor int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
