package user

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandalign/brandalign/internal/config"
	controller "github.com/brandalign/brandalign/internal/db/controller/user"
	"github.com/brandalign/brandalign/internal/db/models"
	"github.com/brandalign/brandalign/internal/governance"
	"github.com/brandalign/brandalign/internal/web/middleware/role"
	"github.com/brandalign/brandalign/internal/web/session"
	"github.com/brandalign/brandalign/internal/web/webtest"
)

func TestListAndToggle(t *testing.T) {
	db := webtest.SetupDB(t)
	require.NoError(t, controller.Seed(db))

	service := &Service{cfg: &config.Config{}, db: db}
	engine := &webtest.Engine{}

	app := webtest.NewApp(engine)
	app.Get(Path, role.RequireAdmin, service.List)
	app.Post(Path+"/:id/toggle", role.RequireAdmin, service.Toggle)

	client := webtest.NewClient(t, app)

	resp := client.Get(Path)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	data := session.NewData()
	data.Role = governance.RoleAdmin
	client.SetSession(data)

	resp = client.Get(Path)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	users, ok := engine.Get("Users").([]models.User)
	require.True(t, ok)
	require.Len(t, users, 5)
	assert.Equal(t, 4, engine.Get("ActiveCount"))

	client.Get(Path + "?search=sarah")
	users, _ = engine.Get("Users").([]models.User)
	require.Len(t, users, 1)
	assert.False(t, users[0].Active)

	resp = client.PostForm(Path+"/"+itoa(users[0].ID)+"/toggle", url.Values{})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, client.Session().Flash, "activated")

	client.Get(Path)
	assert.Equal(t, 5, engine.Get("ActiveCount"))

	resp = client.PostForm(Path+"/999/toggle", url.Values{})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
