package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/lib"
)

func init() {
	lib.Logger = zap.NewNop()
	lib.Cfg = &lib.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", ProtectRoute, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestProtectRouteRejectsMissingToken(t *testing.T) {
	app := protectedApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectRouteRejectsBadHeaderFormat(t *testing.T) {
	app := protectedApp()

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectRouteRejectsInvalidToken(t *testing.T) {
	app := protectedApp()

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
