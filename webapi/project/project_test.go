package project_test

import (
	"testing"

	webtest "finbook/webapi/testutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectBookkeeping(t *testing.T) {
	t.Parallel()
	app, a, _ := webtest.NewTestApp(t)
	_, ownerToken := webtest.RegisterAndLogin(t, a, "boss", "owner")
	employee, employeeToken := webtest.RegisterAndLogin(t, a, "worker", "employee")

	var projectID string
	t.Run("owner creates a project", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodPost, "/projects", ownerToken, fiber.Map{
			"name": "Website relaunch",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		projectID = webtest.DecodeBody(t, resp)["data"].(map[string]any)["ID"].(string)
	})

	t.Run("employee cannot create projects", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodPost, "/projects", employeeToken, fiber.Map{
			"name": "Shadow project",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("budget, expense, salary, summary", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodPut, "/projects/"+projectID+"/budget", ownerToken, fiber.Map{
			"total_minor": 100000,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = webtest.MakeRequest(t, app, fiber.MethodPost, "/projects/"+projectID+"/expenses", ownerToken, fiber.Map{
			"title":        "Hosting",
			"amount_minor": 20000,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp = webtest.MakeRequest(t, app, fiber.MethodPost, "/salaries", ownerToken, fiber.Map{
			"employee_id":  employee.ID.String(),
			"project_id":   projectID,
			"amount_minor": 50000,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp = webtest.MakeRequest(t, app, fiber.MethodGet, "/projects/"+projectID+"/summary", ownerToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := webtest.DecodeBody(t, resp)["data"].(map[string]any)
		assert.Equal(t, float64(100000), data["BudgetMinor"])
		assert.Equal(t, float64(20000), data["ExpensesMinor"])
		assert.Equal(t, float64(50000), data["SalariesMinor"])
		assert.Equal(t, float64(30000), data["RemainingMinor"])
	})

	t.Run("replacing the budget recomputes the summary", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodPut, "/projects/"+projectID+"/budget", ownerToken, fiber.Map{
			"total_minor": 60000,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = webtest.MakeRequest(t, app, fiber.MethodGet, "/projects/"+projectID+"/summary", ownerToken, nil)
		data := webtest.DecodeBody(t, resp)["data"].(map[string]any)
		assert.Equal(t, float64(-10000), data["RemainingMinor"])
	})

	t.Run("employee sees their salary history", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodGet, "/salaries/me", employeeToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		list := webtest.DecodeBody(t, resp)["data"].([]any)
		require.Len(t, list, 1)
		assert.Equal(t, float64(50000), list[0].(map[string]any)["AmountMinor"])
	})

	t.Run("salary to an unknown employee is not found", func(t *testing.T) {
		resp := webtest.MakeRequest(t, app, fiber.MethodPost, "/salaries", ownerToken, fiber.Map{
			"employee_id":  "00000000-0000-0000-0000-000000000001",
			"amount_minor": 1000,
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("foreign project is not found", func(t *testing.T) {
		_, otherToken := webtest.RegisterAndLogin(t, a, "rival", "owner")
		resp := webtest.MakeRequest(t, app, fiber.MethodGet, "/projects/"+projectID+"/summary", otherToken, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("superuser lists every project", func(t *testing.T) {
		_, superToken := webtest.RegisterAndLogin(t, a, "admin", "superuser")
		resp := webtest.MakeRequest(t, app, fiber.MethodGet, "/projects", superToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, webtest.DecodeBody(t, resp)["data"].([]any), 1)
	})
}
