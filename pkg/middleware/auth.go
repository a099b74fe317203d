// Package middleware holds shared Fiber middleware.
package middleware

import (
	"finbook/pkg/config"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JwtProtected guards a route with bearer-token authentication. The verified
// token is stored in c.Locals("user") for handlers to read.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnauthorized
	if err.Error() == "Missing or malformed JWT" {
		status = fiber.StatusBadRequest
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(fiber.Map{
		"title":  "Unauthorized",
		"status": status,
		"detail": err.Error(),
	})
}
