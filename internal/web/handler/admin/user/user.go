// Package user provides the workspace member list of the admin area.
package user

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/config"
	controller "github.com/brandalign/brandalign/internal/db/controller/user"
	"github.com/brandalign/brandalign/internal/web/handler"
	"github.com/brandalign/brandalign/internal/web/middleware/role"
	"github.com/brandalign/brandalign/internal/web/navigation"
	"github.com/brandalign/brandalign/internal/web/session"
)

const (
	// Path is the base path for user management.
	Path = handler.RootPath + "admin/user"

	// TemplateList is the template for listing users.
	TemplateList = "admin/user/list"
)

// Service lists users and toggles their status.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, role.RequireAdmin, s.List)
	app.Post(Path+"/:id/toggle", role.RequireAdmin, s.Toggle)

	return nil
}

// List shows users with search.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.For(navigation.PageUser)

	search := c.Query("search", "")

	users, err := controller.List(s.db, search)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load users")
	}

	active := 0

	for _, u := range users {
		if u.Active {
			active++
		}
	}

	return c.Render(TemplateList, fiber.Map{
		"Navigation":  nav,
		"Users":       users,
		"SearchQuery": search,
		"ActiveCount": active,
		"Flash":       session.From(c).PopFlash(),
	}, handler.BaseLayout)
}

// Toggle activates or deactivates a user.
func (s *Service) Toggle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid user id")
	}

	u, err := controller.ToggleActive(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("User not found")
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("failed to toggle user")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to update user")
	}

	log.Info().Uint64("user_id", id).Bool("active", u.Active).Msg("user status changed")

	status := "deactivated"
	if u.Active {
		status = "activated"
	}

	session.From(c).Flash = u.Name + " " + status

	return c.Redirect(Path)
}
