// Package rate implements conversion-rate management. Stored rates are the
// user's own bookkeeping; the posting engine derives transfer rates from the
// amount pair and never reads this store.
package rate

import (
	"context"
	"log/slog"

	"finbook/pkg/currency"
	"finbook/pkg/domain/rate"
	"finbook/pkg/dto"
	"finbook/pkg/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service manages a user's conversion rates.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates the rate service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create validates and persists a rate for an ordered currency pair.
// Duplicate pairs surface as domain.ErrConflict from the store.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, from, to string, value decimal.Decimal) (read *dto.RateRead, err error) {
	log := s.logger.With("context", "CreateRate", "userID", userID, "from", from, "to", to)

	r, err := rate.New(userID, currency.Code(from), currency.Code(to), value)
	if err != nil {
		log.Warn("rate rejected", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.RateRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, dto.RateCreate{
			ID:     r.ID,
			UserID: r.UserID,
			From:   r.From.String(),
			To:     r.To.String(),
			Rate:   r.Rate,
		})
	})
	if err != nil {
		log.Error("rate create failed", "error", err)
		return nil, err
	}
	log.Info("rate created", "rate", r.Rate)
	return &dto.RateRead{
		ID:        r.ID,
		UserID:    r.UserID,
		From:      r.From.String(),
		To:        r.To.String(),
		Rate:      r.Rate,
		CreatedAt: r.CreatedAt,
	}, nil
}

// Get retrieves the user's rate for an ordered pair.
func (s *Service) Get(ctx context.Context, userID uuid.UUID, from, to string) (read *dto.RateRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.RateRepository()
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	return read, nil
}

// List lists the user's rates.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (list []*dto.RateRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.RateRepository()
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

// Update replaces the rate value of an existing pair. The replacement is
// validated exactly like a new rate.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, from, to string, value decimal.Decimal) (read *dto.RateRead, err error) {
	log := s.logger.With("context", "UpdateRate", "userID", userID, "from", from, "to", to)

	if _, err := rate.New(userID, currency.Code(from), currency.Code(to), value); err != nil {
		log.Warn("rate rejected", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.RateRepository()
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, userID, from, to, dto.RateUpdate{Rate: value.Round(rate.Scale)}); err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, from, to)
		return err
	})
	if err != nil {
		log.Error("rate update failed", "error", err)
		return nil, err
	}
	log.Info("rate updated", "rate", read.Rate)
	return read, nil
}

// Delete removes the rate for an ordered pair. Past transfers are
// unaffected; their rates were snapshotted at posting time.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, from, to string) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.RateRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, userID, from, to); err != nil {
			return err
		}
		return repo.Delete(ctx, userID, from, to)
	})
	if err != nil {
		s.logger.Error("rate delete failed", "from", from, "to", to, "error", err)
		return err
	}
	return nil
}
