package userController_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap/database"
	userRoutes "skillswap/routers/userRoutes"
)

func newUserApp(t *testing.T) (*fiber.App, *database.Store) {
	t.Helper()
	store := database.NewStore(database.NewFileStore(t.TempDir()))
	app := fiber.New()
	userRoutes.SetupUserRoutes(app, store)
	return app, store
}

func postUser(t *testing.T, app *fiber.App, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateUserIsIdempotentByEmail(t *testing.T) {
	app, store := newUserApp(t)

	resp := postUser(t, app, fiber.Map{"email": "u@x.com", "name": "U"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var created struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.True(t, created.Acknowledged)
	assert.NotEmpty(t, created.InsertedID)

	// second create for the same email: acknowledged as existing, no insert
	resp = postUser(t, app, fiber.Map{"email": "u@x.com", "name": "U again"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "already exists")

	user, err := store.Users().FindByEmail(context.Background(), "u@x.com")
	require.NoError(t, err)
	assert.Equal(t, "U", user.Name, "original record must be untouched")
}

func TestCreateUserRejectsInvalidEmail(t *testing.T) {
	app, _ := newUserApp(t)

	resp := postUser(t, app, fiber.Map{"email": "not-an-email"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postUser(t, app, fiber.Map{"name": "no email"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
