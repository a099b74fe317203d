package project

import "time"

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// SetBudgetRequest replaces the project's budget. Amounts are in minor
// units.
type SetBudgetRequest struct {
	TotalMinor int64 `json:"total_minor" validate:"required,gt=0"`
}

// AddExpenseRequest books an expense against the project.
type AddExpenseRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	AmountMinor int64     `json:"amount_minor" validate:"required,gt=0"`
	Date        time.Time `json:"date"`
}

// PaySalaryRequest books a salary payment to an employee, optionally tied to
// a project.
type PaySalaryRequest struct {
	EmployeeID  string    `json:"employee_id" validate:"required,uuid"`
	ProjectID   string    `json:"project_id" validate:"omitempty,uuid"`
	AmountMinor int64     `json:"amount_minor" validate:"required,gt=0"`
	Date        time.Time `json:"date"`
}
