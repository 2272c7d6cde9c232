package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandalign/brandalign/internal/governance"
	"github.com/brandalign/brandalign/internal/web/session"
)

func TestMiddlewarePersistsData(t *testing.T) {
	session.Init(nil)

	app := fiber.New()
	app.Use(session.Middleware(time.Hour))
	app.Get("/admin", func(c *fiber.Ctx) error {
		data := session.From(c)
		data.Role = governance.RoleAdmin
		data.Draft.TextInput = "hello"

		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		data := session.From(c)

		return c.SendString(string(data.Role) + ":" + data.Draft.TextInput)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == session.CookieName {
			cookie = ck
		}
	}

	require.NotNil(t, cookie)
	assert.Len(t, cookie.Value, 64)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)

	resp, err = app.Test(req)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "ADMIN:hello", string(body[:n]))
}

func TestMiddlewareReplacesUnknownID(t *testing.T) {
	session.Init(nil)

	app := fiber.New()
	app.Use(session.Middleware(time.Hour))
	app.Get("/admin", func(c *fiber.Ctx) error {
		session.From(c).Role = governance.RoleAdmin

		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "chosen-by-client"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var issued string
	for _, ck := range resp.Cookies() {
		if ck.Name == session.CookieName {
			issued = ck.Value
		}
	}

	assert.Len(t, issued, 64)
	assert.NotEqual(t, "chosen-by-client", issued)

	stored, err := session.Store.Storage.Get("chosen-by-client")
	require.NoError(t, err)
	assert.Empty(t, stored)

	data := session.NewData()
	require.NoError(t, data.Read(issued))
	assert.Equal(t, governance.RoleAdmin, data.Role)
}

func TestFromWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		data := session.From(c)
		assert.Equal(t, governance.RoleGeneralUser, data.Role)
		assert.Equal(t, governance.DefaultRegion, data.Draft.Region)
		assert.False(t, data.IsAdmin())

		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
}

func TestPopFlash(t *testing.T) {
	data := session.NewData()
	data.Flash = "saved"

	assert.Equal(t, "saved", data.PopFlash())
	assert.Empty(t, data.PopFlash())
}

func TestWriteDropsPayload(t *testing.T) {
	session.Init(nil)

	data := session.NewData()
	data.Draft.Filename = "banner.png"
	data.Draft.FileBase64 = "iVBORw0KGgo="
	require.NoError(t, data.Write("id-1", time.Minute))

	read := session.NewData()
	require.NoError(t, read.Read("id-1"))
	assert.Equal(t, "banner.png", read.Draft.Filename)
	assert.Empty(t, read.Draft.FileBase64)
	assert.Equal(t, "iVBORw0KGgo=", data.Draft.FileBase64)
}
