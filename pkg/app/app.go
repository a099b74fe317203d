// Package app assembles the services from their shared dependencies.
package app

import (
	"finbook/pkg/config"
	"finbook/pkg/service/account"
	"finbook/pkg/service/auth"
	"finbook/pkg/service/namespace"
	"finbook/pkg/service/posting"
	"finbook/pkg/service/project"
	"finbook/pkg/service/rate"
	"finbook/pkg/service/user"
)

// App bundles the configured services behind a single handle for the API and
// the CLI.
type App struct {
	Deps   *config.Deps
	Config *config.App

	AuthService      *auth.Service
	UserService      *user.Service
	NamespaceService *namespace.Service
	AccountService   *account.Service
	RateService      *rate.Service
	PostingService   *posting.Service
	ProjectService   *project.Service
}

// New builds the application services from deps and config.
func New(deps *config.Deps, cfg *config.App) *App {
	return &App{
		Deps:             deps,
		Config:           cfg,
		AuthService:      auth.New(deps.Uow, cfg.Auth.Jwt, deps.Logger),
		UserService:      user.NewService(deps.Uow, deps.Logger),
		NamespaceService: namespace.NewService(deps.Uow, deps.Logger),
		AccountService:   account.NewService(deps.Uow, deps.Logger),
		RateService:      rate.NewService(deps.Uow, deps.Logger),
		PostingService:   posting.NewService(deps.Uow, deps.Logger),
		ProjectService:   project.NewService(deps.Uow, deps.Logger),
	}
}
