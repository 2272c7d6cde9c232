// Package provider provides the model provider settings page of the admin area.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/config"
	controller "github.com/brandalign/brandalign/internal/db/controller/provider"
	"github.com/brandalign/brandalign/internal/genai"
	"github.com/brandalign/brandalign/internal/web/handler"
	"github.com/brandalign/brandalign/internal/web/middleware/role"
	"github.com/brandalign/brandalign/internal/web/navigation"
)

const (
	// Path is the path to the model provider settings page.
	Path = handler.RootPath + "admin/provider"

	// TemplateName is the name of the provider settings template.
	TemplateName = "admin/provider"
)

// Service is the model provider settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate

	// open re-initializes the model engine after the settings changed.
	open func(ctx context.Context) error
}

// Handler is the model provider settings handler.
var Handler = Service{}

// Init initializes the model provider settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()
	s.open = func(ctx context.Context) error {
		if err := genai.Open(ctx, db, &cfg.Model); err != nil {
			return err
		}

		return genai.Engine.Test(ctx)
	}

	app.Route(Path, func(router fiber.Router) {
		router.Use(role.RequireAdmin)
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

func navigationContext() *navigation.Context {
	return navigation.For(navigation.PageProvider)
}

// view hides the api key from the template.
func view(settings *controller.Settings) fiber.Map {
	return fiber.Map{
		"Provider":     settings.Provider,
		"Model":        settings.Model,
		"BaseURL":      settings.BaseURL,
		"MaskedAPIKey": settings.MaskedAPIKey(),
		"HasAPIKey":    settings.APIKey != "",
	}
}

func render(c *fiber.Ctx, status int, settings *controller.Settings, extra fiber.Map) error {
	binding := fiber.Map{
		"Navigation": navigationContext(),
		"Settings":   view(settings),
		"Providers":  []string{config.ProviderGemini, config.ProviderOpenAI},
	}

	for k, v := range extra {
		binding[k] = v
	}

	return c.Status(status).Render(TemplateName, binding, handler.BaseLayout)
}

// Get handles the provider settings page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	settings := &controller.Settings{}
	if err := settings.LoadOrDefault(s.db, &s.cfg.Model); err != nil {
		log.Error().Err(err).Msg("failed to load model provider settings")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	return render(c, fiber.StatusOK, settings, nil)
}

// Post handles the provider settings form submission.
// An empty api key keeps the stored one.
func (s *Service) Post(c *fiber.Ctx) error {
	settings := &controller.Settings{}
	if err := c.BodyParser(settings); err != nil {
		log.Error().Err(err).Msg("failed to parse model provider settings form")
		return render(c, fiber.StatusBadRequest, settings, fiber.Map{"Error": "Invalid form data"})
	}

	if settings.APIKey == "" {
		current := &controller.Settings{}
		if err := current.LoadOrDefault(s.db, &s.cfg.Model); err != nil {
			log.Error().Err(err).Msg("failed to load model provider settings")
			return render(c, fiber.StatusInternalServerError, settings, fiber.Map{"Error": "Failed to load settings"})
		}

		settings.APIKey = current.APIKey
	}

	if err := s.validator.Struct(settings); err != nil {
		log.Debug().Err(err).Msg("validation failed for model provider settings")
		return render(c, fiber.StatusBadRequest, settings, fiber.Map{"Error": handler.ValidationMessages(err)})
	}

	if err := settings.Save(s.db); err != nil {
		log.Error().Err(err).Msg("failed to save model provider settings")
		return render(c, fiber.StatusInternalServerError, settings, fiber.Map{"Error": "Failed to save settings"})
	}

	log.Info().
		Str("provider", settings.Provider).
		Str("model", settings.Model).
		Msg("model provider settings saved")

	if err := s.open(c.UserContext()); err != nil {
		log.Error().Err(err).Msg("model provider test failed after settings update")

		return render(c, fiber.StatusBadGateway, settings, fiber.Map{
			"Error": fmt.Sprintf("Settings saved, but the provider did not answer (%s)", err),
		})
	}

	return render(c, fiber.StatusOK, settings, fiber.Map{"Success": "Settings saved successfully"})
}
