package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/private", JWTProtected(cfg), func(c *fiber.Ctx) error {
		id, err := CallerID(c)
		if err != nil {
			return err
		}
		return c.SendString(id.String())
	})
	app.Get("/public", OptionalJWT(cfg), func(c *fiber.Ctx) error {
		if id := OptionalCallerID(c); id != nil {
			return c.SendString(id.String())
		}
		return c.SendString("anonymous")
	})
	return app
}

func call(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestJWT(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret", JWTAccessExpiry: time.Minute, JWTVerifyExpiry: time.Minute}
	tokens := services.NewTokenService(cfg)
	app := testApp(cfg)

	user := &models.User{ID: uuid.New(), Email: "a@example.com"}
	access, err := tokens.IssueAccess(user)
	require.NoError(t, err)
	verification, err := tokens.IssueVerification(user.ID)
	require.NoError(t, err)

	status, body := call(t, app, "/private", access)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, user.ID.String(), body)

	status, _ = call(t, app, "/private", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = call(t, app, "/private", verification)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body = call(t, app, "/public", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	status, body = call(t, app, "/public", access)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, user.ID.String(), body)

	status, _ = call(t, app, "/public", "not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
