// Package account exposes account management and posting endpoints.
package account

import (
	"finbook/pkg/config"
	"finbook/pkg/dto"
	"finbook/pkg/middleware"
	accountsvc "finbook/pkg/service/account"
	postingsvc "finbook/pkg/service/posting"
	"finbook/webapi/common"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers account endpoints. All routes require a bearer token.
//
//   - POST   /accounts               : Create an account in a namespace.
//   - GET    /accounts               : List all of the caller's accounts.
//   - GET    /accounts/:id           : Retrieve one account with its balance.
//   - PATCH  /accounts/:id           : Rename an account.
//   - DELETE /accounts/:id           : Delete an account; history is kept.
//   - POST   /accounts/:id/in        : Deposit into the account.
//   - POST   /accounts/:id/out       : Withdraw from the account.
//   - POST   /accounts/:id/transfer  : Transfer to another account.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, postingSvc *postingsvc.Service, cfg *config.App) {
	app.Post("/accounts", middleware.JwtProtected(cfg.Auth.Jwt), Create(accountSvc))
	app.Get("/accounts", middleware.JwtProtected(cfg.Auth.Jwt), List(accountSvc))
	app.Get("/accounts/:id", middleware.JwtProtected(cfg.Auth.Jwt), Get(accountSvc))
	app.Patch("/accounts/:id", middleware.JwtProtected(cfg.Auth.Jwt), Rename(accountSvc))
	app.Delete("/accounts/:id", middleware.JwtProtected(cfg.Auth.Jwt), Delete(accountSvc))
	app.Post("/accounts/:id/in", middleware.JwtProtected(cfg.Auth.Jwt), PostIn(postingSvc))
	app.Post("/accounts/:id/out", middleware.JwtProtected(cfg.Auth.Jwt), PostOut(postingSvc))
	app.Post("/accounts/:id/transfer", middleware.JwtProtected(cfg.Auth.Jwt), PostTransfer(postingSvc))
}

// Create opens a zero-balance account in one of the caller's namespaces.
func Create(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		namespaceID := uuid.MustParse(input.NamespaceID)
		a, err := svc.Create(c.Context(), identity.UserID, namespaceID, input.Name, input.Currency)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", a)
	}
}

// List returns every account the caller owns, across namespaces.
func List(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := svc.ListByUser(c.Context(), identity.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", list)
	}
}

// Get returns one account with its current balance.
func Get(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		a, err := svc.Get(c.Context(), identity.UserID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account", a)
	}
}

// Rename changes the account's name within its namespace.
func Rename(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[RenameAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Rename(c.Context(), identity.UserID, id, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to rename account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account renamed", a)
	}
}

// Delete removes an account. Posted transactions survive with the account
// reference nulled.
func Delete(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		if err := svc.Delete(c.Context(), identity.UserID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", nil)
	}
}

// PostIn deposits the given amount into the account.
func PostIn(svc *postingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[PostingRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.PostIn(c.Context(), dto.PostIn{
			UserID:      identity.UserID,
			AccountID:   id,
			Amount:      input.Amount,
			Currency:    input.Currency,
			Description: input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit posted", postingsvc.ReadFromTransaction(tx))
	}
}

// PostOut withdraws the given amount from the account.
func PostOut(svc *postingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[PostingRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.PostOut(c.Context(), dto.PostOut{
			UserID:      identity.UserID,
			AccountID:   id,
			Amount:      input.Amount,
			Currency:    input.Currency,
			Description: input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdrawal posted", postingsvc.ReadFromTransaction(tx))
	}
}

// PostTransfer moves funds from the account in the URL to the destination in
// the body.
func PostTransfer(svc *postingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.PostTransfer(c.Context(), dto.PostTransfer{
			UserID:               identity.UserID,
			SourceAccountID:      id,
			DestinationAccountID: uuid.MustParse(input.DestinationAccountID),
			SourceAmount:         input.SourceAmount,
			DestinationAmount:    input.DestinationAmount,
			Description:          input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer posted", postingsvc.ReadFromTransaction(tx))
	}
}
