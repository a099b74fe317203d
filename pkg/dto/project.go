package dto

import (
	"time"

	"github.com/google/uuid"
)

// ProjectCreate is the input for persisting a new project.
type ProjectCreate struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
}

// ProjectRead is the read-optimized project projection.
type ProjectRead struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
}

// BudgetCreate is the input for persisting a project budget.
type BudgetCreate struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	TotalMinor int64
}

// ExpenseCreate is the input for persisting an expense.
type ExpenseCreate struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	AmountMinor int64
	Date        time.Time
}

// SalaryPaymentCreate is the input for persisting a salary payment.
type SalaryPaymentCreate struct {
	ID          uuid.UUID
	EmployeeID  uuid.UUID
	ProjectID   *uuid.UUID
	AmountMinor int64
	Date        time.Time
}

// ProjectSummary aggregates a project's bookkeeping: budget, recorded
// spending, and what is left. RemainingMinor can be negative.
type ProjectSummary struct {
	ProjectID      uuid.UUID
	BudgetMinor    int64
	ExpensesMinor  int64
	SalariesMinor  int64
	RemainingMinor int64
}
