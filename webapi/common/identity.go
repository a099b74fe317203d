package common

import (
	"finbook/pkg/domain/user"
	"finbook/pkg/service/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CurrentIdentity extracts the authenticated caller from the verified token
// placed in locals by the JWT middleware.
func CurrentIdentity(c *fiber.Ctx) (auth.Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return auth.Identity{}, user.ErrUnauthorized
	}
	return auth.IdentityFromToken(token)
}
