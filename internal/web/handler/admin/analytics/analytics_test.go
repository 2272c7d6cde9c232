package analytics

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db/controller/history"
	"github.com/brandalign/brandalign/internal/governance"
	"github.com/brandalign/brandalign/internal/web/middleware/role"
	"github.com/brandalign/brandalign/internal/web/session"
	"github.com/brandalign/brandalign/internal/web/webtest"
)

func TestGet(t *testing.T) {
	db := webtest.SetupDB(t)
	require.NoError(t, history.Seed(db))

	now := time.Date(2023, 10, 24, 18, 0, 0, 0, time.UTC)
	service := &Service{cfg: &config.Config{}, db: db, now: func() time.Time { return now }}
	engine := &webtest.Engine{}

	app := webtest.NewApp(engine)
	app.Get(Path, role.RequireAdmin, service.Get)

	client := webtest.NewClient(t, app)

	data := session.NewData()
	data.Role = governance.RoleAdmin
	client.SetSession(data)

	resp := client.Get(Path)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	a, ok := engine.Get("Analytics").(governance.Analytics)
	require.True(t, ok)
	assert.Equal(t, 2, a.TotalScans)
	assert.InDelta(t, 85.0, a.AverageScore, 0.001)
	assert.Zero(t, a.CriticalRate)
	assert.Equal(t, 15, a.TotalIssues)
	assert.Equal(t, "2023-10-24", a.Trend[6].Label)
	assert.Equal(t, 1, a.Trend[6].Count)
	assert.Equal(t, 1, a.Trend[5].Count)

	recent, ok := engine.Get("Recent").([]governance.HistoryItem)
	require.True(t, ok)
	assert.Len(t, recent, 2)
}
