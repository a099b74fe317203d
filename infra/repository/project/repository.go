// Package project is the gorm implementation of the project repository.
package project

import (
	"context"
	"errors"

	"finbook/infra"
	"finbook/infra/repository/model"
	"finbook/pkg/dto"
	repo "finbook/pkg/repository/project"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates the project repository over the given session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) CreateProject(ctx context.Context, create dto.ProjectCreate) error {
	p := model.Project{
		ID:      create.ID,
		OwnerID: create.OwnerID,
		Name:    create.Name,
	}
	return infra.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&p).Error
	})
}

func (r *repository) GetProject(ctx context.Context, ownerID, id uuid.UUID) (*dto.ProjectRead, error) {
	var p model.Project
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			First(&p, "id = ? AND owner_id = ?", id, ownerID).Error
	})
	if err != nil {
		return nil, err
	}
	return mapProjectToDTO(&p), nil
}

func (r *repository) ListProjects(ctx context.Context, ownerID *uuid.UUID) ([]*dto.ProjectRead, error) {
	q := r.db.WithContext(ctx)
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	var projects []model.Project
	err := infra.WrapError(func() error {
		return q.Order("name ASC").Find(&projects).Error
	})
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ProjectRead, 0, len(projects))
	for i := range projects {
		result = append(result, mapProjectToDTO(&projects[i]))
	}
	return result, nil
}

// UpsertBudget inserts the budget or replaces the total of the existing row;
// a project has at most one budget.
func (r *repository) UpsertBudget(ctx context.Context, create dto.BudgetCreate) error {
	b := model.Budget{
		ID:        create.ID,
		ProjectID: create.ProjectID,
		Total:     create.TotalMinor,
	}
	return infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "project_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"total"}),
			}).
			Create(&b).Error
	})
}

func (r *repository) CreateExpense(ctx context.Context, create dto.ExpenseCreate) error {
	e := model.Expense{
		ID:        create.ID,
		ProjectID: create.ProjectID,
		Title:     create.Title,
		Amount:    create.AmountMinor,
		Date:      create.Date,
	}
	return infra.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&e).Error
	})
}

func (r *repository) CreateSalaryPayment(ctx context.Context, create dto.SalaryPaymentCreate) error {
	p := model.SalaryPayment{
		ID:         create.ID,
		EmployeeID: create.EmployeeID,
		ProjectID:  create.ProjectID,
		Amount:     create.AmountMinor,
		Date:       create.Date,
	}
	return infra.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&p).Error
	})
}

func (r *repository) Summary(ctx context.Context, projectID uuid.UUID) (*dto.ProjectSummary, error) {
	summary := &dto.ProjectSummary{ProjectID: projectID}

	err := infra.WrapError(func() error {
		var budget model.Budget
		err := r.db.WithContext(ctx).
			First(&budget, "project_id = ?", projectID).Error
		switch {
		case err == nil:
			summary.BudgetMinor = budget.Total
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := r.db.WithContext(ctx).
			Model(&model.Expense{}).
			Where("project_id = ?", projectID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&summary.ExpensesMinor).Error; err != nil {
			return err
		}

		return r.db.WithContext(ctx).
			Model(&model.SalaryPayment{}).
			Where("project_id = ?", projectID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&summary.SalariesMinor).Error
	})
	if err != nil {
		return nil, err
	}
	summary.RemainingMinor = summary.BudgetMinor - summary.ExpensesMinor - summary.SalariesMinor
	return summary, nil
}

func (r *repository) ListSalariesByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*dto.SalaryPaymentCreate, error) {
	var rows []model.SalaryPayment
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("employee_id = ?", employeeID).
			Order("date DESC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	result := make([]*dto.SalaryPaymentCreate, 0, len(rows))
	for i := range rows {
		result = append(result, &dto.SalaryPaymentCreate{
			ID:          rows[i].ID,
			EmployeeID:  rows[i].EmployeeID,
			ProjectID:   rows[i].ProjectID,
			AmountMinor: rows[i].Amount,
			Date:        rows[i].Date,
		})
	}
	return result, nil
}

func mapProjectToDTO(p *model.Project) *dto.ProjectRead {
	return &dto.ProjectRead{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}
