// Package initializer builds the application's infrastructure dependencies
// from configuration: logger, database, and unit of work.
package initializer

import (
	"fmt"
	"log/slog"

	"finbook/infra"
	infrarepo "finbook/infra/repository"
	"finbook/infra/repository/model"
	"finbook/pkg/config"

	"gorm.io/gorm"
)

// InitializeDependencies wires config into the runtime dependencies the app
// is built from.
func InitializeDependencies(cfg *config.App) (*config.Deps, error) {
	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &config.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: logger,
		Config: cfg,
	}, nil
}

// Migrate applies the schema for all persistence models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Namespace{},
		&model.Account{},
		&model.Transaction{},
		&model.ConversionRate{},
		&model.Project{},
		&model.Budget{},
		&model.Expense{},
		&model.SalaryPayment{},
	)
}
