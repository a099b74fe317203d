// Package project defines the bookkeeping records tracked against a business
// owner's projects: budgets, expenses, and salary payments. These are plain
// records with no conservation invariant; they never touch account balances.
package project

import (
	"fmt"
	"strings"
	"time"

	"finbook/pkg/domain"

	"github.com/google/uuid"
)

var (
	// ErrNameRequired is returned when the project name is empty.
	ErrNameRequired = fmt.Errorf("%w: project name is required", domain.ErrValidation)

	// ErrAmountNotPositive is returned when a budget, expense, or salary
	// amount is zero or negative.
	ErrAmountNotPositive = fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
)

// Project is a unit of work a business owner tracks spending against.
type Project struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
}

// New validates and builds a Project.
func New(ownerID uuid.UUID, name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return &Project{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}

// Budget is the single spending envelope of a project, in minor units.
type Budget struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	TotalMinor int64
	CreatedAt  time.Time
}

// NewBudget validates and builds a Budget.
func NewBudget(projectID uuid.UUID, totalMinor int64) (*Budget, error) {
	if totalMinor <= 0 {
		return nil, ErrAmountNotPositive
	}
	return &Budget{
		ID:         uuid.New(),
		ProjectID:  projectID,
		TotalMinor: totalMinor,
		CreatedAt:  time.Now(),
	}, nil
}

// Expense is a titled cost recorded against a project.
type Expense struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	AmountMinor int64
	Date        time.Time
}

// NewExpense validates and builds an Expense.
func NewExpense(projectID uuid.UUID, title string, amountMinor int64, date time.Time) (*Expense, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: expense title is required", domain.ErrValidation)
	}
	if amountMinor <= 0 {
		return nil, ErrAmountNotPositive
	}
	return &Expense{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       title,
		AmountMinor: amountMinor,
		Date:        date,
	}, nil
}

// SalaryPayment records a payment to an employee, optionally attributed to a
// project.
type SalaryPayment struct {
	ID          uuid.UUID
	EmployeeID  uuid.UUID
	ProjectID   *uuid.UUID
	AmountMinor int64
	Date        time.Time
}

// NewSalaryPayment validates and builds a SalaryPayment.
func NewSalaryPayment(employeeID uuid.UUID, projectID *uuid.UUID, amountMinor int64, date time.Time) (*SalaryPayment, error) {
	if amountMinor <= 0 {
		return nil, ErrAmountNotPositive
	}
	return &SalaryPayment{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		ProjectID:   projectID,
		AmountMinor: amountMinor,
		Date:        date,
	}, nil
}

// Remaining computes the budget left after expenses and salaries. It can go
// negative; overspend is reported, not prevented.
func Remaining(b *Budget, expenses []*Expense, salaries []*SalaryPayment) int64 {
	left := b.TotalMinor
	for _, e := range expenses {
		left -= e.AmountMinor
	}
	for _, s := range salaries {
		left -= s.AmountMinor
	}
	return left
}
