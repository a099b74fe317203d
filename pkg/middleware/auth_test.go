package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"finbook/pkg/config"

	"github.com/gofiber/fiber/v2"
)

func TestJwtProtected_MissingToken(t *testing.T) {
	app := fiber.New()
	app.Use(JwtProtected(&config.Jwt{Secret: "test-secret"}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode == fiber.StatusOK {
		t.Error("expected request without a token to be rejected, got 200")
	}
}

func TestJwtError_Malformed(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("Missing or malformed JWT"))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected %d, got %d", fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestJwtError_Invalid(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("any other error"))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected %d, got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}
