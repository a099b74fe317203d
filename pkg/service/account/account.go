// Package account implements account management: creation, lookup, rename,
// and deletion. Balance mutation is the posting engine's job; this service
// never touches balances.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"finbook/pkg/currency"
	"finbook/pkg/domain"
	"finbook/pkg/domain/account"
	"finbook/pkg/dto"
	"finbook/pkg/repository"

	"github.com/google/uuid"
)

// Service manages account records.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates the account service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create validates and persists a new account with a zero balance. The
// namespace must exist and belong to the user; duplicate names within the
// namespace surface as domain.ErrConflict from the store.
func (s *Service) Create(ctx context.Context, userID, namespaceID uuid.UUID, name, currencyCode string) (read *dto.AccountRead, err error) {
	log := s.logger.With(
		"context", "CreateAccount", "userID", userID, "namespaceID", namespaceID)

	code := currency.Code(currencyCode)
	if !currency.IsSupported(code) {
		return nil, fmt.Errorf("%w: unsupported currency %q", domain.ErrValidation, currencyCode)
	}
	acct, err := account.New().
		WithUserID(userID).
		WithNamespaceID(namespaceID).
		WithName(name).
		WithCurrency(code).
		Build()
	if err != nil {
		log.Warn("account rejected", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		nsRepo, err := uow.NamespaceRepository()
		if err != nil {
			return err
		}
		if _, err := nsRepo.Get(ctx, userID, namespaceID); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, dto.AccountCreate{
			ID:          acct.ID,
			UserID:      acct.UserID,
			NamespaceID: acct.NamespaceID,
			Name:        acct.Name,
			Currency:    acct.Currency().String(),
		})
	})
	if err != nil {
		log.Error("account create failed", "error", err)
		return nil, err
	}
	log.Info("account created", "accountID", acct.ID, "currency", acct.Currency())
	return &dto.AccountRead{
		ID:          acct.ID,
		UserID:      acct.UserID,
		NamespaceID: acct.NamespaceID,
		Name:        acct.Name,
		Currency:    acct.Currency().String(),
		CreatedAt:   acct.CreatedAt,
	}, nil
}

// Get retrieves one of the user's accounts.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (read *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return read, nil
}

// ListByUser lists all accounts the user owns, across namespaces.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) (list []*dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		list, err = repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByNamespace lists the user's accounts in one namespace.
func (s *Service) ListByNamespace(ctx context.Context, userID, namespaceID uuid.UUID) (list []*dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		list, err = repo.ListByNamespace(ctx, userID, namespaceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Rename changes the account's display name. The name is the only mutable
// attribute; currency and balance never change through this path.
func (s *Service) Rename(ctx context.Context, userID, id uuid.UUID, name string) (read *dto.AccountRead, err error) {
	log := s.logger.With("context", "RenameAccount", "accountID", id)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		acct, err := account.New().
			WithID(current.ID).
			WithUserID(current.UserID).
			WithNamespaceID(current.NamespaceID).
			WithName(current.Name).
			WithCurrency(currency.Code(current.Currency)).
			WithBalanceMinor(current.BalanceMinor).
			Build()
		if err != nil {
			return err
		}
		if err := acct.Rename(name); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, dto.AccountUpdate{Name: &acct.Name}); err != nil {
			return err
		}
		current.Name = acct.Name
		read = current
		return nil
	})
	if err != nil {
		log.Error("account rename failed", "error", err)
		return nil, err
	}
	log.Info("account renamed", "name", read.Name)
	return read, nil
}

// Delete removes an account. Historical transactions survive with a nulled
// account reference.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, userID, id); err != nil {
			return err
		}
		return repo.Delete(ctx, userID, id)
	})
	if err != nil {
		s.logger.Error("account delete failed", "accountID", id, "error", err)
		return err
	}
	s.logger.Info("account deleted", "accountID", id)
	return nil
}
