// Package repository defines the persistence contracts the services depend
// on: per-entity repositories and the UnitOfWork transaction boundary.
package repository

import (
	"context"
	"reflect"

	"finbook/pkg/repository/account"
	"finbook/pkg/repository/namespace"
	"finbook/pkg/repository/project"
	"finbook/pkg/repository/rate"
	"finbook/pkg/repository/transaction"
	"finbook/pkg/repository/user"
)

// UnitOfWork is the transaction boundary for all persistence work.
//
// Do runs fn inside a single store transaction; every repository obtained
// from the UnitOfWork passed to fn shares that transaction's session, so a
// balance read, a balance write, and a transaction insert commit or roll
// back together. If fn returns an error the whole unit rolls back.
//
// The posting engine relies on this: balances are read inside the boundary
// (under row locks), never before it.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. Nested calls reuse the
	// surrounding transaction.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type
	// bound to the current transaction session.
	GetRepository(repoType reflect.Type) (any, error)

	// Typed convenience accessors.
	AccountRepository() (account.Repository, error)
	NamespaceRepository() (namespace.Repository, error)
	RateRepository() (rate.Repository, error)
	TransactionRepository() (transaction.Repository, error)
	UserRepository() (user.Repository, error)
	ProjectRepository() (project.Repository, error)
}
