// Package analytics provides the governance dashboard of the admin area.
package analytics

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db/controller/history"
	"github.com/brandalign/brandalign/internal/governance"
	"github.com/brandalign/brandalign/internal/web/handler"
	"github.com/brandalign/brandalign/internal/web/middleware/role"
	"github.com/brandalign/brandalign/internal/web/navigation"
)

const (
	// Path is the path of the analytics dashboard.
	Path = handler.RootPath + "admin/analytics"

	// TemplateName is the name of the analytics template.
	TemplateName = "admin/analytics"

	recentItems = 5
)

// Service is the analytics handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
	now func() time.Time
}

// Handler is the analytics handler.
var Handler = Service{}

// Init initializes the analytics handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.now = time.Now

	app.Get(Path, role.RequireAdmin, s.Get)

	return nil
}

// Get renders the dashboard.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.For(navigation.PageAnalytics)

	items, err := history.All(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load history for analytics")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load analytics")
	}

	recent := items
	if len(recent) > recentItems {
		recent = recent[:recentItems]
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Analytics":  governance.Aggregate(items, s.now()),
		"Recent":     recent,
	}, handler.BaseLayout)
}
