// Package user implements registration and user lookups.
package user

import (
	"context"
	"log/slog"

	"finbook/pkg/domain/user"
	"finbook/pkg/dto"
	"finbook/pkg/repository"
	"finbook/pkg/service/auth"

	"github.com/google/uuid"
)

// Service manages user records.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates the user service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register validates, hashes the password, and persists a new user.
// Duplicate username or email surfaces as domain.ErrConflict from the store.
func (s *Service) Register(ctx context.Context, username, email, password string, role user.Role) (read *dto.UserRead, err error) {
	log := s.logger.With("context", "Register", "username", username)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := user.New(username, email, hash, role)
	if err != nil {
		log.Warn("registration rejected", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, dto.UserCreate{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			Role:     string(u.Role),
		})
	})
	if err != nil {
		log.Error("registration failed", "error", err)
		return nil, err
	}
	log.Info("user registered", "userID", u.ID, "role", u.Role)
	return &dto.UserRead{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}, nil
}

// Get retrieves a user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (read *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return read, nil
}
