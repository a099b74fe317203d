package transaction_test

import (
	"testing"

	webtest "finbook/webapi/testutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionHistory(t *testing.T) {
	t.Parallel()
	app, a, store := webtest.NewTestApp(t)
	user, token := webtest.RegisterAndLogin(t, a, "tara", "owner")
	nsID := store.SeedNamespace(user.ID, "personal")
	checking := store.SeedAccount(user.ID, nsID, "checking", "USD", 0)
	savings := store.SeedAccount(user.ID, nsID, "savings", "USD", 0)

	post := func(path string, body fiber.Map) {
		resp := webtest.MakeRequest(t, app, fiber.MethodPost, path, token, body)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	post("/accounts/"+checking.String()+"/in", fiber.Map{"amount": 100.0, "currency": "USD"})
	post("/accounts/"+checking.String()+"/out", fiber.Map{"amount": 30.0, "currency": "USD"})
	post("/accounts/"+checking.String()+"/transfer", fiber.Map{
		"destination_account_id": savings.String(),
		"source_amount":          20.0,
	})

	t.Run("lists newest first", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodGet, "/transactions", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		list := webtest.DecodeBody(t, resp)["data"].([]any)
		require.Len(t, list, 3)
		assert.Equal(t, "TRANSFER", list[0].(map[string]any)["Type"])
		assert.Equal(t, "IN", list[2].(map[string]any)["Type"])
	})

	t.Run("filters by type", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodGet, "/transactions?type=out", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		list := webtest.DecodeBody(t, resp)["data"].([]any)
		require.Len(t, list, 1)
		assert.Equal(t, "OUT", list[0].(map[string]any)["Type"])
	})

	t.Run("unknown type is a validation error", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodGet, "/transactions?type=REFUND", token, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("filters by account on either side", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodGet, "/transactions?account_id="+savings.String(), token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		list := webtest.DecodeBody(t, resp)["data"].([]any)
		require.Len(t, list, 1)
		assert.Equal(t, "TRANSFER", list[0].(map[string]any)["Type"])
	})

	t.Run("get by id", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodGet, "/transactions", token, nil)
		list := webtest.DecodeBody(t, resp)["data"].([]any)
		id := list[0].(map[string]any)["ID"].(string)

		resp = webtest.MakeRequest(t, app, fiber.MethodGet, "/transactions/"+id, token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		_, otherToken := webtest.RegisterAndLogin(t, a, "uma", "owner")
		resp := webtest.MakeRequest(t, app, fiber.MethodGet, "/transactions", otherToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Empty(t, webtest.DecodeBody(t, resp)["data"])
	})
}
