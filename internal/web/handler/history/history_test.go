package history

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/config"
	controller "github.com/brandalign/brandalign/internal/db/controller/history"
	"github.com/brandalign/brandalign/internal/web/webtest"
)

func setup(t *testing.T) (*gorm.DB, *webtest.Engine, *webtest.Client) {
	t.Helper()

	db := webtest.SetupDB(t)
	require.NoError(t, controller.Seed(db))

	service := &Service{cfg: &config.Config{}, db: db}
	engine := &webtest.Engine{}

	app := webtest.NewApp(engine)
	app.Get(Path, service.List)
	app.Post(Path+"/:id/delete", service.Delete)

	return db, engine, webtest.NewClient(t, app)
}

func TestList(t *testing.T) {
	_, engine, client := setup(t)

	resp := client.Get(Path)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	page, ok := engine.Get("Page").(controller.Page)
	require.True(t, ok)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, "Q3_Marketing_Strategy.pptx", page.Items[0].Filename)
	assert.Equal(t, false, engine.Get("HasNextPage"))
}

func TestListSearch(t *testing.T) {
	_, engine, client := setup(t)

	client.Get(Path + "?q=SALES")

	page, ok := engine.Get("Page").(controller.Page)
	require.True(t, ok)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Sales_Pitch_V2.docx", page.Items[0].Filename)
	assert.Equal(t, "SALES", engine.Get("Search"))
}

func TestDelete(t *testing.T) {
	db, _, client := setup(t)

	all, err := controller.All(db)
	require.NoError(t, err)

	resp := client.PostForm(Path+"/"+itoa(all[0].ID)+"/delete", url.Values{})
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "History entry deleted", client.Session().Flash)

	resp = client.PostForm(Path+"/"+itoa(all[0].ID)+"/delete", url.Values{})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = client.PostForm(Path+"/abc/delete", url.Values{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
