// Package results provides the results dashboard of the last analysis:
// fix toggles, the projected score, translation and report download.
package results

import (
	"errors"
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/analysis"
	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db/controller/brand"
	"github.com/brandalign/brandalign/internal/genai"
	"github.com/brandalign/brandalign/internal/governance"
	"github.com/brandalign/brandalign/internal/web/handler"
	"github.com/brandalign/brandalign/internal/web/handler/upload"
	"github.com/brandalign/brandalign/internal/web/navigation"
	"github.com/brandalign/brandalign/internal/web/session"
)

const (
	// Path is the path of the results dashboard.
	Path = upload.ResultsPath

	// TemplateName is the name of the results template.
	TemplateName = "results/results"

	msgTranslateFailed = "Translation failed. Please check your API Key and try again."
	msgNotTranslatable = "This asset has no text to translate."
)

// CategoryView is one pillar of the dashboard.
type CategoryView struct {
	Category governance.Category
	Score    float64
	Issues   []governance.Issue
}

// Service is the results handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	analysis *analysis.Service
}

// Handler is the results handler.
var Handler = Service{}

// Init initializes the results handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.analysis = analysis.New(&genai.Engine, cfg.Model.Temperature)

	app.Route(Path, func(router fiber.Router) {
		router.Use(requireReview)
		router.Get(handler.RouterRootPath, s.Get)
		router.Post("/issues/:id/toggle", s.Toggle)
		router.Post("/fix-all", s.FixAll)
		router.Post("/tab", s.Tab)
		router.Post("/translate", s.Translate)
		router.Get("/download", s.Download)
		router.Post("/reset", s.Reset)
	})

	return nil
}

// requireReview sends visitors without an analysis back to the upload page.
func requireReview(c *fiber.Ctx) error {
	if session.From(c).Review == nil {
		return c.Redirect(upload.Path)
	}

	return c.Next()
}

func navigationContext() *navigation.Context {
	return navigation.For(navigation.PageResults)
}

// categoryViews groups the issues by pillar in dashboard order.
func categoryViews(r *governance.Review) []CategoryView {
	scores := map[governance.Category]float64{
		governance.CategoryVisual:     r.Result.Categories.Visual.Score,
		governance.CategoryCultural:   r.Result.Categories.Cultural.Score,
		governance.CategoryCompliance: r.Result.Categories.Compliance.Score,
	}

	views := make([]CategoryView, 0, len(governance.Categories))
	for _, cat := range governance.Categories {
		views = append(views, CategoryView{Category: cat, Score: scores[cat], Issues: r.IssuesFor(cat)})
	}

	return views
}

func (s *Service) render(c *fiber.Ctx, status int, data *session.Data, extra fiber.Map) error {
	review := data.Review

	binding := fiber.Map{
		"Navigation":     navigationContext(),
		"Review":         review,
		"Result":         review.Result,
		"Tab":            data.Tab,
		"Categories":     categoryViews(review),
		"ProjectedScore": review.ProjectedScore(),
		"PotentialGain":  review.PotentialGainPerIssue(),
		"FixedCount":     review.FixedCount(),
		"CanTranslate":   review.CanTranslate(),
		"Languages":      governance.Languages,
		"Language":       review.TargetLanguage,
		"Flash":          data.PopFlash(),
	}

	for k, v := range extra {
		binding[k] = v
	}

	return c.Status(status).Render(TemplateName, binding, handler.BaseLayout)
}

// Get renders the dashboard.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, session.From(c), nil)
}

// Toggle marks an issue fixed or unfixed.
func (s *Service) Toggle(c *fiber.Ctx) error {
	data := session.From(c)
	id := c.Params("id")

	if !data.Review.HasIssue(id) {
		return c.Status(fiber.StatusNotFound).SendString("Issue not found")
	}

	data.Review.Toggle(id)

	return c.Redirect(Path + "#issue-" + id)
}

// FixAll marks every non-critical issue of a category fixed.
func (s *Service) FixAll(c *fiber.Ctx) error {
	data := session.From(c)
	category := governance.Category(c.FormValue("category"))

	if !slices.Contains(governance.Categories, category) {
		return c.Status(fiber.StatusBadRequest).SendString("Unknown category")
	}

	data.Review.FixAll(category)

	return c.Redirect(Path)
}

// Tab switches between the analysis and the translation view.
func (s *Service) Tab(c *fiber.Ctx) error {
	data := session.From(c)

	switch tab := governance.Tab(c.FormValue("tab")); tab {
	case governance.TabAnalysis, governance.TabTranslation:
		data.Tab = tab
	default:
		return c.Status(fiber.StatusBadRequest).SendString("Unknown tab")
	}

	return c.Redirect(Path)
}

// Translate runs a brand safe translation of the asset text.
func (s *Service) Translate(c *fiber.Ctx) error {
	data := session.From(c)
	data.Tab = governance.TabTranslation
	language := c.FormValue("language")

	if !slices.Contains(governance.Languages, language) {
		return s.render(c, fiber.StatusBadRequest, data, fiber.Map{"Error": "Unknown language"})
	}

	// the stored translation keeps its language until a new one succeeds
	if !data.Review.CanTranslate() || data.Review.TranslationSource() == "" {
		return s.render(c, fiber.StatusBadRequest, data, fiber.Map{"Error": msgNotTranslatable, "Language": language})
	}

	settings, err := brand.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load brand settings")
		return s.render(c, fiber.StatusInternalServerError, data, fiber.Map{"Error": msgTranslateFailed, "Language": language})
	}

	t, err := s.analysis.Translate(c.UserContext(), data.Review.TranslationSource(), language, settings)
	if err != nil {
		log.Error().Err(err).Str("language", language).Msg("translation failed")
		return s.render(c, fiber.StatusBadGateway, data, fiber.Map{"Error": msgTranslateFailed, "Language": language})
	}

	data.Review.SetTranslation(language, *t)

	log.Info().
		Str("language", language).
		Float64("stylistic_score", t.StylisticScore).
		Int("compliance_issues", len(t.ComplianceIssues)).
		Msg("asset translated")

	return c.Redirect(Path)
}

// Download sends the corrected or translated text of a tab as a text file.
func (s *Service) Download(c *fiber.Ctx) error {
	data := session.From(c)

	tab := governance.Tab(c.Query("tab", string(data.Tab)))

	filename, text, ok := data.Review.Report(tab)
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("Nothing to download")
	}

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.SendString(text)
}

// Reset drops the analysis and the draft and starts over.
func (s *Service) Reset(c *fiber.Ctx) error {
	data := session.From(c)
	data.Review = nil
	data.Tab = governance.TabAnalysis
	data.Draft = governance.DefaultUploadState()

	return c.Redirect(upload.Path)
}
