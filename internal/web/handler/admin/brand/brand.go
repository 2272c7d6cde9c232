// Package brand provides the brand guideline editor of the admin area.
package brand

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/analysis"
	"github.com/brandalign/brandalign/internal/config"
	controller "github.com/brandalign/brandalign/internal/db/controller/brand"
	"github.com/brandalign/brandalign/internal/genai"
	"github.com/brandalign/brandalign/internal/governance"
	"github.com/brandalign/brandalign/internal/upload"
	"github.com/brandalign/brandalign/internal/web/handler"
	"github.com/brandalign/brandalign/internal/web/middleware/role"
	"github.com/brandalign/brandalign/internal/web/navigation"
)

const (
	// Path is the path of the brand guideline editor.
	Path = handler.RootPath + "admin/brand"

	// ExtractPath fills the editor from an uploaded guideline document.
	ExtractPath = Path + "/extract"

	// TemplateName is the name of the brand settings template.
	TemplateName = "admin/brand"

	msgExtractFailed  = "Could not extract brand settings from the document."
	msgExtractNoText  = "Upload a text document or paste the guideline text."
	msgSaveFailed     = "Failed to save settings"
	msgSaveSuccessful = "Brand settings saved"
)

// Service is the brand settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	analysis  *analysis.Service
}

// Handler is the brand settings handler.
var Handler = Service{}

// Init initializes the brand settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()
	s.analysis = analysis.New(&genai.Engine, cfg.Model.Temperature)

	app.Route(Path, func(router fiber.Router) {
		router.Use(role.RequireAdmin)
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
		router.Post("/extract", s.Extract)
	})

	return nil
}

func navigationContext() *navigation.Context {
	return navigation.For(navigation.PageBrand)
}

func render(c *fiber.Ctx, status int, settings *governance.BrandSettings, extra fiber.Map) error {
	binding := fiber.Map{
		"Navigation": navigationContext(),
		"Settings":   settings,
	}

	for k, v := range extra {
		binding[k] = v
	}

	return c.Status(status).Render(TemplateName, binding, handler.BaseLayout)
}

// Get renders the editor with the current guidelines.
func (s *Service) Get(c *fiber.Ctx) error {
	settings, err := controller.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load brand settings")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	return render(c, fiber.StatusOK, &settings, nil)
}

// Post saves the guidelines as a new version.
func (s *Service) Post(c *fiber.Ctx) error {
	settings := &governance.BrandSettings{}
	if err := c.BodyParser(settings); err != nil {
		log.Error().Err(err).Msg("failed to parse brand settings form")
		return render(c, fiber.StatusBadRequest, settings, fiber.Map{"Error": "Invalid form data"})
	}

	if err := s.validator.Struct(settings); err != nil {
		log.Debug().Err(err).Msg("validation failed for brand settings")
		return render(c, fiber.StatusBadRequest, settings, fiber.Map{"Error": handler.ValidationMessages(err)})
	}

	if err := controller.Save(s.db, settings); err != nil {
		log.Error().Err(err).Msg("failed to save brand settings")
		return render(c, fiber.StatusInternalServerError, settings, fiber.Map{"Error": msgSaveFailed})
	}

	log.Info().
		Str("brand", settings.BrandName).
		Str("version", settings.VersionLabel()).
		Msg("brand settings saved")

	return render(c, fiber.StatusOK, settings, fiber.Map{"Success": msgSaveSuccessful})
}

// Extract asks the model to fill the editor from a guideline document.
// The result is shown for review and only stored when the admin saves it.
func (s *Service) Extract(c *fiber.Ctx) error {
	current, err := controller.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load brand settings")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	document := c.FormValue("document")

	if fh, ferr := c.FormFile(handler.FormFile); ferr == nil && fh.Size > 0 {
		raw, rerr := handler.ReadFile(fh)
		if rerr != nil {
			return render(c, fiber.StatusBadRequest, &current, fiber.Map{"Error": msgExtractNoText})
		}

		res, ierr := upload.Intake(fh.Filename, fh.Header.Get(fiber.HeaderContentType), raw, s.cfg.Upload.MaxFileSize)
		if ierr != nil || res.Kind != upload.KindText {
			return render(c, fiber.StatusBadRequest, &current, fiber.Map{"Error": msgExtractNoText})
		}

		document = res.Text
	}

	if document == "" {
		return render(c, fiber.StatusBadRequest, &current, fiber.Map{"Error": msgExtractNoText})
	}

	extracted, err := s.analysis.ExtractBrandSettings(c.UserContext(), document)
	if err != nil {
		log.Error().Err(err).Msg("brand settings extraction failed")
		return render(c, fiber.StatusBadGateway, &current, fiber.Map{"Error": msgExtractFailed})
	}

	extracted.Version = current.Version

	return render(c, fiber.StatusOK, extracted, fiber.Map{"Extracted": true})
}
