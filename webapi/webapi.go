// Package webapi provides the HTTP surface of the application. It is
// organized into sub-packages per domain:
// - auth: registration and login
// - namespace: namespace management
// - account: account management and postings
// - rate: user-defined conversion rates
// - transaction: transaction history
// - project: projects, budgets, expenses, and salaries
package webapi

import (
	"errors"
	"strings"

	"finbook/pkg/app"
	accountweb "finbook/webapi/account"
	authweb "finbook/webapi/auth"
	"finbook/webapi/common"
	namespaceweb "finbook/webapi/namespace"
	projectweb "finbook/webapi/project"
	rateweb "finbook/webapi/rate"
	transactionweb "finbook/webapi/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp initializes Fiber with middleware and all routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return common.ErrorResponseJSON(c, e.Code, e.Message, nil)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Rate limiting keyed by client IP. Uses X-Forwarded-For when behind a
	// proxy, falling back to X-Real-IP, then the direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Finbook API is running! 🚀")
	})

	authweb.Routes(fiberApp, a.AuthService, a.UserService)
	namespaceweb.Routes(fiberApp, a.NamespaceService, a.AccountService, a.Config)
	accountweb.Routes(fiberApp, a.AccountService, a.PostingService, a.Config)
	rateweb.Routes(fiberApp, a.RateService, a.Config)
	transactionweb.Routes(fiberApp, a.PostingService, a.Config)
	projectweb.Routes(fiberApp, a.ProjectService, a.Config)
	return fiberApp
}
