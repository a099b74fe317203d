// Package rate exposes endpoints for user-defined conversion rates.
package rate

import (
	"strings"

	"finbook/pkg/config"
	"finbook/pkg/middleware"
	ratesvc "finbook/pkg/service/rate"
	"finbook/webapi/common"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CreateRateRequest is the request body for defining a conversion rate.
type CreateRateRequest struct {
	From string          `json:"from" validate:"required,len=3"`
	To   string          `json:"to" validate:"required,len=3"`
	Rate decimal.Decimal `json:"rate" validate:"required"`
}

// UpdateRateRequest replaces the value of an existing pair.
type UpdateRateRequest struct {
	Rate decimal.Decimal `json:"rate" validate:"required"`
}

// Routes registers conversion-rate endpoints. All routes require a bearer
// token. A rate is addressed by its ordered currency pair.
//
//   - POST   /rates           : Define a rate for a pair.
//   - GET    /rates           : List the caller's rates.
//   - GET    /rates/:from/:to : Retrieve the rate for a pair.
//   - PUT    /rates/:from/:to : Replace the rate value.
//   - DELETE /rates/:from/:to : Remove the rate.
func Routes(app *fiber.App, svc *ratesvc.Service, cfg *config.App) {
	app.Post("/rates", middleware.JwtProtected(cfg.Auth.Jwt), Create(svc))
	app.Get("/rates", middleware.JwtProtected(cfg.Auth.Jwt), List(svc))
	app.Get("/rates/:from/:to", middleware.JwtProtected(cfg.Auth.Jwt), Get(svc))
	app.Put("/rates/:from/:to", middleware.JwtProtected(cfg.Auth.Jwt), Update(svc))
	app.Delete("/rates/:from/:to", middleware.JwtProtected(cfg.Auth.Jwt), Delete(svc))
}

func pairParams(c *fiber.Ctx) (from, to string) {
	return strings.ToUpper(c.Params("from")), strings.ToUpper(c.Params("to"))
}

// Create defines a conversion rate for the caller. The reverse pair is a
// separate rate.
func Create(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateRateRequest](c)
		if input == nil {
			return err
		}
		r, err := svc.Create(c.Context(), identity.UserID, input.From, input.To, input.Rate)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Rate created", r)
	}
}

// List returns all of the caller's rates.
func List(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := svc.List(c.Context(), identity.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates", list)
	}
}

// Get returns the rate defined for the ordered pair.
func Get(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		from, to := pairParams(c)
		r, err := svc.Get(c.Context(), identity.UserID, from, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate", r)
	}
}

// Update replaces the rate value. Already-posted transactions keep the rates
// snapshotted at posting time.
func Update(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[UpdateRateRequest](c)
		if input == nil {
			return err
		}
		from, to := pairParams(c)
		r, err := svc.Update(c.Context(), identity.UserID, from, to, input.Rate)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate updated", r)
	}
}

// Delete removes the rate for the ordered pair.
func Delete(svc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := common.CurrentIdentity(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		from, to := pairParams(c)
		if err := svc.Delete(c.Context(), identity.UserID, from, to); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate deleted", nil)
	}
}
