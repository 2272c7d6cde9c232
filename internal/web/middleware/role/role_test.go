package role_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandalign/brandalign/internal/governance"
	"github.com/brandalign/brandalign/internal/web/middleware/role"
	"github.com/brandalign/brandalign/internal/web/session"
)

func newApp() *fiber.App {
	session.Init(nil)

	app := fiber.New()
	app.Use(session.Middleware(time.Hour))
	app.Post("/role", role.Switch)
	app.Get("/admin", role.RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendString("admin")
	})

	return app
}

func TestRequireAdminForbidden(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSwitchToAdmin(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest(http.MethodPost, "/role", strings.NewReader("role=admin"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/analytics", resp.Header.Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, ck := range resp.Cookies() {
		req.AddCookie(ck)
	}

	resp, err = app.Test(req)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestParse(t *testing.T) {
	r, ok := role.Parse(" general_user ")
	assert.True(t, ok)
	assert.Equal(t, governance.RoleGeneralUser, r)

	_, ok = role.Parse("root")
	assert.False(t, ok)
}
