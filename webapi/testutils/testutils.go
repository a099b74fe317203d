// Package testutils provides helpers for exercising the HTTP layer against
// the in-memory store.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apppkg "finbook/pkg/app"
	"finbook/pkg/config"
	"finbook/pkg/domain/user"
	"finbook/pkg/dto"
	"finbook/pkg/testutils"
	"finbook/webapi"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// TestConfig returns a config suitable for handler tests: a fixed JWT
// secret and a rate limit high enough to stay out of the way.
func TestConfig() *config.App {
	return &config.App{
		Env:    "test",
		Server: &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:    &config.Log{Format: "text"},
		DB:     &config.DB{},
		Auth: &config.Auth{
			Strategy: "jwt",
			Jwt:      &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
	}
}

// NewTestApp builds the full Fiber app over an in-memory store.
func NewTestApp(t *testing.T) (*fiber.App, *apppkg.App, *testutils.MemStore) {
	t.Helper()
	store := testutils.NewMemStore()
	cfg := TestConfig()
	deps := &config.Deps{
		Uow:    testutils.NewUow(store),
		Logger: slog.New(slog.DiscardHandler),
		Config: cfg,
	}
	a := apppkg.New(deps, cfg)
	return webapi.SetupApp(a), a, store
}

// RegisterAndLogin creates a user through the service layer and returns its
// id together with a valid bearer token.
func RegisterAndLogin(t *testing.T, a *apppkg.App, username, role string) (*dto.UserRead, string) {
	t.Helper()
	u, err := a.UserService.Register(
		t.Context(), username, username+"@example.com", "sup3r-secret", user.Role(role))
	require.NoError(t, err)
	token, err := a.AuthService.GenerateToken(u)
	require.NoError(t, err)
	return u, token
}

// MakeRequest performs a request against the app, marshaling body to JSON
// when it is non-nil and attaching the bearer token when present.
func MakeRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeBody unmarshals a JSON response body into a generic map.
func DecodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}
