package common_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"finbook/pkg/domain"
	"finbook/pkg/domain/account"
	"finbook/pkg/domain/user"
	"finbook/webapi/common"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrNotFound, fiber.StatusNotFound},
		{"conflict", domain.ErrConflict, fiber.StatusConflict},
		{"validation", domain.ErrValidation, fiber.StatusBadRequest},
		{"unauthorized", user.ErrUnauthorized, fiber.StatusUnauthorized},
		{"insufficient funds beats validation", account.ErrInsufficientFunds, fiber.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, common.ErrorToStatusCode(tc.err))
		})
	}
}

func TestProblemDetailsJSON(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return common.ProblemDetailsJSON(c, "Failed to get account", domain.ErrNotFound)
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return common.ProblemDetailsJSON(c, "Internal Server Error", errors.New("db on fire"))
	})

	t.Run("domain error carries status and detail", func(t *testing.T) {
		t.Parallel()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))

		var pd common.ProblemDetails
		decode(t, resp, &pd)
		assert.Equal(t, "Failed to get account", pd.Title)
		assert.Equal(t, fiber.StatusNotFound, pd.Status)
		assert.Equal(t, "/missing", pd.Instance)
		assert.NotEmpty(t, pd.Detail)
	})

	t.Run("internal errors hide the detail", func(t *testing.T) {
		t.Parallel()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		var pd common.ProblemDetails
		decode(t, resp, &pd)
		assert.NotContains(t, pd.Detail, "db on fire")
	})
}

func TestBindAndValidate(t *testing.T) {
	t.Parallel()
	type input struct {
		Name string `json:"name" validate:"required"`
	}
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		in, err := common.BindAndValidate[input](c)
		if in == nil {
			return err
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "ok", in)
	})

	t.Run("rejects a missing required field", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, into))
}
