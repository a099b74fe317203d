// Package namespace implements namespace management.
package namespace

import (
	"context"
	"log/slog"

	"finbook/pkg/domain/namespace"
	"finbook/pkg/dto"
	"finbook/pkg/repository"

	"github.com/google/uuid"
)

// Service manages a user's namespaces.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates the namespace service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create validates and persists a namespace. Duplicate (user, name)
// surfaces as domain.ErrConflict from the store.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, name string) (read *dto.NamespaceRead, err error) {
	log := s.logger.With("context", "CreateNamespace", "userID", userID)

	ns, err := namespace.New(userID, name)
	if err != nil {
		log.Warn("namespace rejected", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.NamespaceRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, dto.NamespaceCreate{
			ID:     ns.ID,
			UserID: ns.UserID,
			Name:   ns.Name,
		})
	})
	if err != nil {
		log.Error("namespace create failed", "error", err)
		return nil, err
	}
	log.Info("namespace created", "namespaceID", ns.ID, "name", ns.Name)
	return &dto.NamespaceRead{
		ID:        ns.ID,
		UserID:    ns.UserID,
		Name:      ns.Name,
		CreatedAt: ns.CreatedAt,
	}, nil
}

// Get retrieves one of the user's namespaces.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (read *dto.NamespaceRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.NamespaceRepository()
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

// List lists the user's namespaces.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (list []*dto.NamespaceRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.NamespaceRepository()
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

// Delete removes a namespace and, through the store's cascade, the accounts
// inside it. Historical transactions keep nulled account references.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.NamespaceRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, userID, id); err != nil {
			return err
		}
		return repo.Delete(ctx, userID, id)
	})
	if err != nil {
		s.logger.Error("namespace delete failed", "namespaceID", id, "error", err)
		return err
	}
	s.logger.Info("namespace deleted", "namespaceID", id)
	return nil
}
