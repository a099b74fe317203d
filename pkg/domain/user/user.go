// Package user defines the account-owning identity and its role.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"finbook/pkg/domain"

	"github.com/google/uuid"
)

// Role is the enumerated access level attached to a user. It is resolved
// once per request from the authenticated identity; authorization code
// switches on it rather than probing for attributes.
type Role string

// Known roles.
const (
	RoleSuperuser Role = "superuser"
	RoleOwner     Role = "owner"
	RoleEmployee  Role = "employee"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperuser, RoleOwner, RoleEmployee:
		return true
	}
	return false
}

var (
	// ErrUsernameRequired is returned when the username is empty.
	ErrUsernameRequired = fmt.Errorf("%w: username is required", domain.ErrValidation)

	// ErrInvalidEmail is returned when the email does not parse.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email address", domain.ErrValidation)

	// ErrInvalidRole is returned for roles outside the enumerated set.
	ErrInvalidRole = fmt.Errorf("%w: invalid role", domain.ErrValidation)

	// ErrUnauthorized is returned for failed credential checks and for
	// requests whose role does not permit the operation. It deliberately
	// does not say which of identity or password was wrong.
	ErrUnauthorized = errors.New("unauthorized")
)

// User is a registered identity owning namespaces, accounts, and rates.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string // bcrypt hash, never the plaintext
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New validates and builds a User. The password is expected to be hashed
// already; hashing lives in the auth service.
func New(username, email, hashedPassword string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: time.Now(),
	}, nil
}
