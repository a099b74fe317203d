package config

import (
	"log/slog"

	"finbook/pkg/repository"
)

// Deps holds the infrastructure dependencies the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
	Config *App
}
