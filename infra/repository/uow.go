// Package repository implements the UnitOfWork on gorm. Entity repositories
// live in subpackages; their gorm models live in the model subpackage.
package repository

import (
	"context"
	"fmt"
	"reflect"

	repo "finbook/pkg/repository"
	accountrepo "finbook/pkg/repository/account"
	nsrepo "finbook/pkg/repository/namespace"
	projectrepo "finbook/pkg/repository/project"
	raterepo "finbook/pkg/repository/rate"
	txrepo "finbook/pkg/repository/transaction"
	userrepo "finbook/pkg/repository/user"

	"finbook/infra/repository/account"
	"finbook/infra/repository/namespace"
	"finbook/infra/repository/project"
	"finbook/infra/repository/rate"
	"finbook/infra/repository/transaction"
	"finbook/infra/repository/user"

	"gorm.io/gorm"
)

// UoW binds the transaction boundary and repository access together: every
// repository handed out inside Do shares the transaction's session, so the
// posting engine's balance writes and ledger appends are atomic.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a UoW over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*accountrepo.Repository)(nil)).Elem(): func(db *gorm.DB) any { return account.New(db) },
			reflect.TypeOf((*nsrepo.Repository)(nil)).Elem():      func(db *gorm.DB) any { return namespace.New(db) },
			reflect.TypeOf((*raterepo.Repository)(nil)).Elem():    func(db *gorm.DB) any { return rate.New(db) },
			reflect.TypeOf((*txrepo.Repository)(nil)).Elem():      func(db *gorm.DB) any { return transaction.New(db) },
			reflect.TypeOf((*userrepo.Repository)(nil)).Elem():    func(db *gorm.DB) any { return user.New(db) },
			reflect.TypeOf((*projectrepo.Repository)(nil)).Elem(): func(db *gorm.DB) any { return project.New(db) },
		},
	}
}

// Do runs fn inside a database transaction. gorm reuses the surrounding
// transaction for nested calls, so services can compose units freely.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	return u.session().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

// GetRepository returns a repository of the requested interface type bound
// to the current session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// AccountRepository returns the account repository bound to the session.
func (u *UoW) AccountRepository() (accountrepo.Repository, error) {
	return getTyped[accountrepo.Repository](u)
}

// NamespaceRepository returns the namespace repository bound to the session.
func (u *UoW) NamespaceRepository() (nsrepo.Repository, error) {
	return getTyped[nsrepo.Repository](u)
}

// RateRepository returns the conversion-rate repository bound to the session.
func (u *UoW) RateRepository() (raterepo.Repository, error) {
	return getTyped[raterepo.Repository](u)
}

// TransactionRepository returns the ledger repository bound to the session.
func (u *UoW) TransactionRepository() (txrepo.Repository, error) {
	return getTyped[txrepo.Repository](u)
}

// UserRepository returns the user repository bound to the session.
func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return getTyped[userrepo.Repository](u)
}

// ProjectRepository returns the project repository bound to the session.
func (u *UoW) ProjectRepository() (projectrepo.Repository, error) {
	return getTyped[projectrepo.Repository](u)
}

func getTyped[T any](u *UoW) (T, error) {
	var zero T
	raw, err := u.GetRepository(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("registered repository has wrong type %T", raw)
	}
	return typed, nil
}
