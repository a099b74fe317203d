// Package namespace exposes namespace management endpoints.
package namespace

import (
	"finbook/pkg/config"
	"finbook/pkg/middleware"
	accountsvc "finbook/pkg/service/account"
	namespacesvc "finbook/pkg/service/namespace"
	"finbook/webapi/common"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateNamespaceRequest is the request body for creating a namespace.
type CreateNamespaceRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// Routes registers namespace endpoints. All routes require a bearer token.
//
//   - POST   /namespaces              : Create a namespace.
//   - GET    /namespaces              : List the caller's namespaces.
//   - GET    /namespaces/:id          : Retrieve one namespace.
//   - DELETE /namespaces/:id          : Delete a namespace and its accounts.
//   - GET    /namespaces/:id/accounts : List accounts in the namespace.
func Routes(app *fiber.App, nsSvc *namespacesvc.Service, accountSvc *accountsvc.Service, cfg *config.App) {
	app.Post("/namespaces", middleware.JwtProtected(cfg.Auth.Jwt), Create(nsSvc))
	app.Get("/namespaces", middleware.JwtProtected(cfg.Auth.Jwt), List(nsSvc))
	app.Get("/namespaces/:id", middleware.JwtProtected(cfg.Auth.Jwt), Get(nsSvc))
	app.Delete("/namespaces/:id", middleware.JwtProtected(cfg.Auth.Jwt), Delete(nsSvc))
	app.Get("/namespaces/:id/accounts", middleware.JwtProtected(cfg.Auth.Jwt), ListAccounts(accountSvc))
}

// Create handles namespace creation for the authenticated user.
func Create(svc *namespacesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateNamespaceRequest](c)
		if input == nil {
			return err
		}
		ns, err := svc.Create(c.Context(), identity.UserID, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create namespace", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Namespace created", ns)
	}
}

// List returns the caller's namespaces sorted by name.
func List(svc *namespacesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := svc.List(c.Context(), identity.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list namespaces", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Namespaces", list)
	}
}

// Get returns one namespace owned by the caller.
func Get(svc *namespacesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid namespace ID", err, fiber.StatusBadRequest)
		}
		ns, err := svc.Get(c.Context(), identity.UserID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get namespace", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Namespace", ns)
	}
}

// Delete removes a namespace; accounts inside it go with it.
func Delete(svc *namespacesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid namespace ID", err, fiber.StatusBadRequest)
		}
		if err := svc.Delete(c.Context(), identity.UserID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete namespace", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Namespace deleted", nil)
	}
}

// ListAccounts returns the accounts grouped under the namespace.
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid namespace ID", err, fiber.StatusBadRequest)
		}
		list, err := svc.ListByNamespace(c.Context(), identity.UserID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", list)
	}
}
