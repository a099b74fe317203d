// Package project implements project bookkeeping for business owners:
// budgets, expenses, salary payments, and the spending summary. Role checks
// live here; repositories stay policy-free.
package project

import (
	"context"
	"log/slog"
	"time"

	"finbook/pkg/domain"
	"finbook/pkg/domain/project"
	"finbook/pkg/domain/user"
	"finbook/pkg/dto"
	"finbook/pkg/repository"
	projectrepo "finbook/pkg/repository/project"

	"github.com/google/uuid"
)

// Caller is the authenticated identity a project operation runs as.
type Caller struct {
	UserID uuid.UUID
	Role   user.Role
}

func (c Caller) canManageProjects() bool {
	return c.Role == user.RoleOwner || c.Role == user.RoleSuperuser
}

// Service manages projects and the records booked against them.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates the project service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateProject creates a project owned by the caller. Employees cannot
// create projects.
func (s *Service) CreateProject(ctx context.Context, caller Caller, name string) (read *dto.ProjectRead, err error) {
	log := s.logger.With("context", "CreateProject", "userID", caller.UserID)

	if !caller.canManageProjects() {
		return nil, user.ErrUnauthorized
	}
	p, err := project.New(caller.UserID, name)
	if err != nil {
		log.Warn("project rejected", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ProjectRepository()
		if err != nil {
			return err
		}
		return repo.CreateProject(ctx, dto.ProjectCreate{
			ID:      p.ID,
			OwnerID: p.OwnerID,
			Name:    p.Name,
		})
	})
	if err != nil {
		log.Error("project create failed", "error", err)
		return nil, err
	}
	log.Info("project created", "projectID", p.ID)
	return &dto.ProjectRead{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}, nil
}

// ListProjects lists the caller's projects. Superusers see every project.
func (s *Service) ListProjects(ctx context.Context, caller Caller) (list []*dto.ProjectRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ProjectRepository()
		if err != nil {
			return err
		}
		if caller.Role == user.RoleSuperuser {
			list, err = repo.ListProjects(ctx, nil)
		} else {
			owner := caller.UserID
			list, err = repo.ListProjects(ctx, &owner)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// SetBudget creates or replaces the project's single budget.
func (s *Service) SetBudget(ctx context.Context, caller Caller, projectID uuid.UUID, totalMinor int64) error {
	log := s.logger.With("context", "SetBudget", "projectID", projectID)

	if !caller.canManageProjects() {
		return user.ErrUnauthorized
	}
	b, err := project.NewBudget(projectID, totalMinor)
	if err != nil {
		log.Warn("budget rejected", "error", err)
		return err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ProjectRepository()
		if err != nil {
			return err
		}
		if err := s.authorizeProject(ctx, repo, caller, projectID); err != nil {
			return err
		}
		return repo.UpsertBudget(ctx, dto.BudgetCreate{
			ID:         b.ID,
			ProjectID:  b.ProjectID,
			TotalMinor: b.TotalMinor,
		})
	})
	if err != nil {
		log.Error("budget set failed", "error", err)
		return err
	}
	log.Info("budget set", "totalMinor", totalMinor)
	return nil
}

// AddExpense records an expense against the project.
func (s *Service) AddExpense(ctx context.Context, caller Caller, projectID uuid.UUID, title string, amountMinor int64, date time.Time) error {
	log := s.logger.With("context", "AddExpense", "projectID", projectID)

	if !caller.canManageProjects() {
		return user.ErrUnauthorized
	}
	e, err := project.NewExpense(projectID, title, amountMinor, date)
	if err != nil {
		log.Warn("expense rejected", "error", err)
		return err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ProjectRepository()
		if err != nil {
			return err
		}
		if err := s.authorizeProject(ctx, repo, caller, projectID); err != nil {
			return err
		}
		return repo.CreateExpense(ctx, dto.ExpenseCreate{
			ID:          e.ID,
			ProjectID:   e.ProjectID,
			Title:       e.Title,
			AmountMinor: e.AmountMinor,
			Date:        e.Date,
		})
	})
	if err != nil {
		log.Error("expense add failed", "error", err)
		return err
	}
	return nil
}

// PaySalary records a salary payment to an employee, optionally attributed
// to one of the caller's projects.
func (s *Service) PaySalary(ctx context.Context, caller Caller, employeeID uuid.UUID, projectID *uuid.UUID, amountMinor int64, date time.Time) error {
	log := s.logger.With("context", "PaySalary", "employeeID", employeeID)

	if !caller.canManageProjects() {
		return user.ErrUnauthorized
	}
	p, err := project.NewSalaryPayment(employeeID, projectID, amountMinor, date)
	if err != nil {
		log.Warn("salary payment rejected", "error", err)
		return err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ProjectRepository()
		if err != nil {
			return err
		}
		if projectID != nil {
			if err := s.authorizeProject(ctx, repo, caller, *projectID); err != nil {
				return err
			}
		}
		userRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := userRepo.Get(ctx, employeeID); err != nil {
			return err
		}
		return repo.CreateSalaryPayment(ctx, dto.SalaryPaymentCreate{
			ID:          p.ID,
			EmployeeID:  p.EmployeeID,
			ProjectID:   p.ProjectID,
			AmountMinor: p.AmountMinor,
			Date:        p.Date,
		})
	})
	if err != nil {
		log.Error("salary payment failed", "error", err)
		return err
	}
	log.Info("salary paid", "amountMinor", amountMinor)
	return nil
}

// Summary reports budget against recorded spending. Overspend shows up as a
// negative remainder.
func (s *Service) Summary(ctx context.Context, caller Caller, projectID uuid.UUID) (summary *dto.ProjectSummary, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ProjectRepository()
		if err != nil {
			return err
		}
		if err := s.authorizeProject(ctx, repo, caller, projectID); err != nil {
			return err
		}
		summary, err = repo.Summary(ctx, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ListMySalaries lists the caller's own salary payments. Any role may view
// its own payment history.
func (s *Service) ListMySalaries(ctx context.Context, caller Caller) (list []*dto.SalaryPaymentCreate, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ProjectRepository()
		if err != nil {
			return err
		}
		list, err = repo.ListSalariesByEmployee(ctx, caller.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// authorizeProject confirms the project exists and the caller may act on it.
// Superusers may act on any project.
func (s *Service) authorizeProject(ctx context.Context, repo projectrepo.Repository, caller Caller, projectID uuid.UUID) error {
	if caller.Role == user.RoleSuperuser {
		all, err := repo.ListProjects(ctx, nil)
		if err != nil {
			return err
		}
		for _, p := range all {
			if p.ID == projectID {
				return nil
			}
		}
		return domain.ErrNotFound
	}
	_, err := repo.GetProject(ctx, caller.UserID, projectID)
	return err
}
