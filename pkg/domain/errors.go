// Package domain holds the error categories shared by every finbook domain
// package. Specific errors wrap one of these sentinels so callers can branch
// on the category with errors.Is while still logging the precise cause.
package domain

import "errors"

var (
	// ErrValidation is the category for caller-correctable input problems:
	// non-positive amounts, currency mismatches, insufficient funds. Never
	// retried automatically.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced record does not exist or is
	// not owned by the requester. The two cases are deliberately
	// indistinguishable to avoid leaking record existence across users.
	ErrNotFound = errors.New("not found")

	// ErrConflict is the category for uniqueness violations, e.g. a
	// duplicate account name within a namespace.
	ErrConflict = errors.New("conflict")
)
