// Package auth exposes registration and login endpoints.
package auth

import (
	"finbook/pkg/domain/user"
	authsvc "finbook/pkg/service/auth"
	usersvc "finbook/pkg/service/user"
	"finbook/webapi/common"

	"github.com/gofiber/fiber/v2"
)

// Routes registers the authentication endpoints.
//
//   - POST /auth/register : Create a user account.
//   - POST /auth/login    : Authenticate and receive a JWT.
func Routes(app *fiber.App, authSvc *authsvc.Service, userSvc *usersvc.Service) {
	app.Post("/auth/register", Register(userSvc))
	app.Post("/auth/login", Login(authSvc))
}

// Register handles user creation. The password is hashed before it is
// stored; the response never echoes it back.
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		role := user.RoleOwner
		if input.Role != "" {
			role = user.Role(input.Role)
		}
		u, err := userSvc.Register(c.Context(), input.Username, input.Email, input.Password, role)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to register", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", fiber.Map{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
			"role":     u.Role,
		})
	}
}

// Login authenticates a user by username or email and returns a JWT token.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid identity or password", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
