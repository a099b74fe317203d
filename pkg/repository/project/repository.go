// Package project defines the persistence contract for project bookkeeping.
package project

import (
	"context"

	"finbook/pkg/dto"

	"github.com/google/uuid"
)

// Repository is the store for projects and their budgets, expenses, and
// salary payments.
type Repository interface {
	// CreateProject inserts a project.
	CreateProject(ctx context.Context, create dto.ProjectCreate) error

	// GetProject retrieves a project by (owner, id).
	GetProject(ctx context.Context, ownerID, id uuid.UUID) (*dto.ProjectRead, error)

	// ListProjects lists projects. A nil ownerID lists all projects
	// (superuser scope).
	ListProjects(ctx context.Context, ownerID *uuid.UUID) ([]*dto.ProjectRead, error)

	// UpsertBudget creates or replaces the single budget of a project.
	UpsertBudget(ctx context.Context, create dto.BudgetCreate) error

	// CreateExpense records an expense against a project.
	CreateExpense(ctx context.Context, create dto.ExpenseCreate) error

	// CreateSalaryPayment records a salary payment.
	CreateSalaryPayment(ctx context.Context, create dto.SalaryPaymentCreate) error

	// Summary aggregates budget, expenses, and salaries for a project.
	Summary(ctx context.Context, projectID uuid.UUID) (*dto.ProjectSummary, error)

	// ListSalariesByEmployee lists an employee's own salary payments.
	ListSalariesByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*dto.SalaryPaymentCreate, error)
}
