// Package project exposes project bookkeeping endpoints: projects, budgets,
// expenses, salary payments, and the spending summary.
package project

import (
	"time"

	"finbook/pkg/config"
	"finbook/pkg/middleware"
	projectsvc "finbook/pkg/service/project"
	"finbook/webapi/common"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers project endpoints. All routes require a bearer token;
// the service enforces the role policy (owners and superusers manage
// projects, employees only read their own salary history).
//
//   - POST /projects             : Create a project.
//   - GET  /projects             : List projects (superusers see all).
//   - PUT  /projects/:id/budget  : Set or replace the project's budget.
//   - POST /projects/:id/expenses: Book an expense.
//   - GET  /projects/:id/summary : Budget vs. expenses and salaries.
//   - POST /salaries             : Pay a salary to an employee.
//   - GET  /salaries/me          : The caller's received salary payments.
func Routes(app *fiber.App, svc *projectsvc.Service, cfg *config.App) {
	app.Post("/projects", middleware.JwtProtected(cfg.Auth.Jwt), Create(svc))
	app.Get("/projects", middleware.JwtProtected(cfg.Auth.Jwt), List(svc))
	app.Put("/projects/:id/budget", middleware.JwtProtected(cfg.Auth.Jwt), SetBudget(svc))
	app.Post("/projects/:id/expenses", middleware.JwtProtected(cfg.Auth.Jwt), AddExpense(svc))
	app.Get("/projects/:id/summary", middleware.JwtProtected(cfg.Auth.Jwt), Summary(svc))
	app.Post("/salaries", middleware.JwtProtected(cfg.Auth.Jwt), PaySalary(svc))
	app.Get("/salaries/me", middleware.JwtProtected(cfg.Auth.Jwt), ListMySalaries(svc))
}

func caller(c *fiber.Ctx) (projectsvc.Caller, error) {
	identity, err := common.CurrentIdentity(c)
	if err != nil {
		return projectsvc.Caller{}, err
	}
	return projectsvc.Caller{UserID: identity.UserID, Role: identity.Role}, nil
}

// Create creates a project owned by the caller.
func Create(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		who, err := caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateProjectRequest](c)
		if input == nil {
			return err
		}
		p, err := svc.CreateProject(c.Context(), who, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create project", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Project created", p)
	}
}

// List returns the caller's projects; superusers see every project.
func List(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		who, err := caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := svc.ListProjects(c.Context(), who)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list projects", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Projects", list)
	}
}

// SetBudget sets or replaces the project budget; a project has at most one.
func SetBudget(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		who, err := caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		projectID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid project ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[SetBudgetRequest](c)
		if input == nil {
			return err
		}
		if err := svc.SetBudget(c.Context(), who, projectID, input.TotalMinor); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to set budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget set", nil)
	}
}

// AddExpense books an expense against the project. An omitted date defaults
// to now.
func AddExpense(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		who, err := caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		projectID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid project ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[AddExpenseRequest](c)
		if input == nil {
			return err
		}
		date := input.Date
		if date.IsZero() {
			date = time.Now()
		}
		if err := svc.AddExpense(c.Context(), who, projectID, input.Title, input.AmountMinor, date); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Expense added", nil)
	}
}

// Summary returns the budget against booked expenses and salaries. The
// remainder may be negative when the project overspends.
func Summary(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		who, err := caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		projectID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid project ID", err, fiber.StatusBadRequest)
		}
		summary, err := svc.Summary(c.Context(), who, projectID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Summary", summary)
	}
}

// PaySalary books a salary payment to an existing employee.
func PaySalary(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		who, err := caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[PaySalaryRequest](c)
		if input == nil {
			return err
		}
		var projectID *uuid.UUID
		if input.ProjectID != "" {
			id := uuid.MustParse(input.ProjectID)
			projectID = &id
		}
		date := input.Date
		if date.IsZero() {
			date = time.Now()
		}
		employeeID := uuid.MustParse(input.EmployeeID)
		if err := svc.PaySalary(c.Context(), who, employeeID, projectID, input.AmountMinor, date); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to pay salary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Salary paid", nil)
	}
}

// ListMySalaries returns the salary payments received by the caller.
func ListMySalaries(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		who, err := caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := svc.ListMySalaries(c.Context(), who)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list salaries", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Salaries", list)
	}
}
