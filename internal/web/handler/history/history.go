// Package history provides the list of past analyses.
package history

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/config"
	controller "github.com/brandalign/brandalign/internal/db/controller/history"
	"github.com/brandalign/brandalign/internal/web/handler"
	"github.com/brandalign/brandalign/internal/web/navigation"
	"github.com/brandalign/brandalign/internal/web/session"
)

const (
	// Path is the path of the history page.
	Path = handler.RootPath + "history"

	// TemplateName is the name of the history template.
	TemplateName = "history/history"
)

// Service is the history handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the history handler.
var Handler = Service{}

// Init initializes the history handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, s.List)
	app.Post(Path+"/:id/delete", s.Delete)

	return nil
}

// List shows the history, newest first, with search and pagination.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.For(navigation.PageHistory)

	q := controller.Query{}
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid query")
	}

	page, err := controller.List(s.db, q)
	if err != nil {
		log.Error().Err(err).Msg("failed to list history")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load history")
	}

	pages := page.Pages()

	return c.Render(TemplateName, fiber.Map{
		"Navigation":  nav,
		"Page":        page,
		"Search":      q.Search,
		"TotalPages":  pages,
		"HasPrevPage": page.Page > 1,
		"HasNextPage": page.Page < pages,
		"PrevPage":    page.Page - 1,
		"NextPage":    page.Page + 1,
		"Flash":       session.From(c).PopFlash(),
	}, handler.BaseLayout)
}

// Delete removes an entry.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid id")
	}

	if err = controller.Delete(s.db, id); err != nil {
		if errors.Is(err, controller.ErrHistoryNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("History entry not found")
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to delete history entry")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to delete history entry")
	}

	log.Info().Uint64("id", id).Msg("history entry deleted")
	session.From(c).Flash = "History entry deleted"

	return c.Redirect(Path)
}
