// Package transaction exposes read endpoints over the transaction history.
package transaction

import (
	"strings"

	"finbook/pkg/config"
	"finbook/pkg/dto"
	"finbook/pkg/middleware"
	postingsvc "finbook/pkg/service/posting"
	"finbook/webapi/common"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers transaction history endpoints. All routes require a
// bearer token.
//
//   - GET /transactions     : List the caller's transactions, newest first.
//     Optional query params: type (IN|OUT|TRANSFER), account_id.
//   - GET /transactions/:id : Retrieve one transaction.
func Routes(app *fiber.App, svc *postingsvc.Service, cfg *config.App) {
	app.Get("/transactions", middleware.JwtProtected(cfg.Auth.Jwt), List(svc))
	app.Get("/transactions/:id", middleware.JwtProtected(cfg.Auth.Jwt), Get(svc))
}

// List returns the caller's transaction history, optionally narrowed by
// type or by account (matching either side of a transfer).
func List(svc *postingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		var filter dto.TransactionFilter
		if t := c.Query("type"); t != "" {
			upper := strings.ToUpper(t)
			filter.Type = &upper
		}
		if raw := c.Query("account_id"); raw != "" {
			accountID, err := uuid.Parse(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
			}
			filter.AccountID = &accountID
		}
		list, err := svc.ListTransactions(c.Context(), identity.UserID, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", list)
	}
}

// Get returns one transaction owned by the caller.
func Get(svc *postingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, fiber.StatusBadRequest)
		}
		tx, err := svc.GetTransaction(c.Context(), identity.UserID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction", tx)
	}
}
