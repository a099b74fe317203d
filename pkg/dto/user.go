package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate is the input for persisting a new user. Password is the bcrypt
// hash, never the plaintext.
type UserCreate struct {
	ID       uuid.UUID
	Username string
	Email    string
	Password string
	Role     string
}

// UserRead is the read-optimized user projection. The password hash is
// included for credential checks in the auth service and must never reach
// API responses.
type UserRead struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
}
