// Package upload provides the asset upload page: the draft form, context
// detection and the analysis run.
package upload

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/analysis"
	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db/controller/brand"
	"github.com/brandalign/brandalign/internal/db/controller/history"
	"github.com/brandalign/brandalign/internal/genai"
	"github.com/brandalign/brandalign/internal/governance"
	intake "github.com/brandalign/brandalign/internal/upload"
	"github.com/brandalign/brandalign/internal/web/handler"
	"github.com/brandalign/brandalign/internal/web/navigation"
	"github.com/brandalign/brandalign/internal/web/session"
)

const (
	// Path is the path of the upload page.
	Path = handler.RootPath + "upload"

	// AnalyzePath runs the analysis of the draft.
	AnalyzePath = Path + "/analyze"
	// DetectPath guesses purpose and asset type of the draft text.
	DetectPath = Path + "/detect"
	// ClearPath resets the draft.
	ClearPath = Path + "/clear"

	// TemplateName is the name of the upload template.
	TemplateName = "upload/upload"

	// ResultsPath is where a finished analysis is shown.
	ResultsPath = handler.RootPath + "results"

	msgNothingToAnalyze = "Paste some text or upload a file to analyze."
	msgFileTooLarge     = "The file is larger than the allowed upload size."
	msgEmptyFile        = "The uploaded file is empty."
	msgInvalidForm      = "Invalid form data"
)

// Form is the upload form.
type Form struct {
	TextInput         string               `form:"text_input"`
	Purpose           governance.Purpose   `form:"purpose" validate:"required"`
	Region            string               `form:"region" validate:"required,max=100"`
	AssetType         governance.AssetType `form:"asset_type"`
	AdditionalContext string               `form:"additional_context" validate:"max=2000"`
}

// Service is the upload handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	analysis  *analysis.Service
}

// Handler is the upload handler.
var Handler = Service{}

// Init initializes the upload handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()
	s.analysis = analysis.New(&genai.Engine, cfg.Model.Temperature)

	app.Get(Path, s.Get)
	app.Post(AnalyzePath, s.Analyze)
	app.Post(DetectPath, s.Detect)
	app.Post(ClearPath, s.Clear)

	return nil
}

func navigationContext() *navigation.Context {
	return navigation.For(navigation.PageUpload)
}

func (s *Service) render(c *fiber.Ctx, status int, data *session.Data, extra fiber.Map) error {
	binding := fiber.Map{
		"Navigation": navigationContext(),
		"Draft":      data.Draft,
		"Purposes":   governance.Purposes,
		"AssetTypes": governance.AssetTypes,
		"Countries":  governance.Countries,
		"Flash":      data.PopFlash(),
	}

	for k, v := range extra {
		binding[k] = v
	}

	return c.Status(status).Render(TemplateName, binding, handler.BaseLayout)
}

// Get renders the upload form with the current draft.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, session.From(c), nil)
}

// Clear resets the draft.
func (s *Service) Clear(c *fiber.Ctx) error {
	session.From(c).Draft = governance.DefaultUploadState()

	return c.Redirect(Path)
}

// Detect fills purpose and asset type from the draft text.
func (s *Service) Detect(c *fiber.Ctx) error {
	data := session.From(c)

	if msg, err := s.applyForm(c, data, false); err != nil {
		return s.render(c, fiber.StatusBadRequest, data, fiber.Map{"Error": msg})
	}

	if data.Draft.TextInput == "" {
		return s.render(c, fiber.StatusOK, data, fiber.Map{"Warning": data.Draft.FormatWarning})
	}

	detected, err := s.analysis.DetectContext(c.UserContext(), data.Draft.TextInput)

	switch {
	case errors.Is(err, analysis.ErrTextTooShort):
		return s.render(c, fiber.StatusOK, data, nil)
	case err != nil:
		log.Warn().Err(err).Msg("context detection failed")

		return s.render(c, fiber.StatusOK, data, fiber.Map{"Warning": "Could not detect the context automatically."})
	}

	applyDetection(&data.Draft, detected)

	log.Debug().
		Str("purpose", string(data.Draft.Purpose)).
		Str("asset_type", string(data.Draft.AssetType)).
		Float64("confidence", detected.Confidence).
		Msg("context detected")

	return s.render(c, fiber.StatusOK, data, fiber.Map{"Detected": true})
}

// Analyze runs the brand analysis of the draft and shows the results.
func (s *Service) Analyze(c *fiber.Ctx) error {
	data := session.From(c)

	if msg, err := s.applyForm(c, data, true); err != nil {
		return s.render(c, fiber.StatusBadRequest, data, fiber.Map{"Error": msg})
	}

	content, err := intake.Content(&data.Draft)
	if err != nil {
		msg := msgNothingToAnalyze
		if errors.Is(err, intake.ErrUnsupportedFormat) {
			msg = intake.ConvertMessage
		}

		return s.render(c, fiber.StatusBadRequest, data, fiber.Map{"Error": msg, "Warning": data.Draft.FormatWarning})
	}

	settings, err := brand.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load brand settings")

		return s.render(c, fiber.StatusInternalServerError, data, fiber.Map{"Error": analysis.UserMessage})
	}

	actx := governance.AnalysisContext{
		Purpose:           data.Draft.Purpose,
		Region:            data.Draft.Region,
		AssetType:         data.Draft.AssetType,
		FixIntensity:      governance.FixMedium,
		AdditionalContext: data.Draft.AdditionalContext,
	}

	result, err := s.analysis.Analyze(c.UserContext(), content, actx, settings)
	if err != nil {
		log.Error().Err(err).
			Str("filename", data.Draft.Filename).
			Str("asset_type", string(actx.AssetType)).
			Msg("analysis failed")

		return s.render(c, fiber.StatusBadGateway, data, fiber.Map{"Error": analysis.UserMessage})
	}

	item := governance.NewHistoryItem(data.Draft.Filename, actx, result, settings, time.Now())
	if _, err = history.Create(s.db, item); err != nil {
		log.Error().Err(err).Msg("failed to store history entry")
	}

	data.Review = governance.NewReview(*result, data.Draft.Filename, data.Draft.TextInput, data.Draft.AssetType)
	data.Tab = governance.TabAnalysis

	log.Info().
		Str("filename", item.Filename).
		Float64("score", result.OverallScore).
		Int("issues", len(result.Issues)).
		Str("brand_settings", settings.VersionLabel()).
		Msg("asset analyzed")

	return c.Redirect(ResultsPath)
}

// applyForm copies the form into the draft and takes in an attached file.
// With detect set a text file without a chosen asset type is classified by the model.
// The returned message is meant for the visitor.
func (s *Service) applyForm(c *fiber.Ctx, data *session.Data, detect bool) (string, error) {
	form := Form{}
	if err := c.BodyParser(&form); err != nil {
		log.Error().Err(err).Msg("failed to parse upload form")
		return msgInvalidForm, err
	}

	draft := &data.Draft
	draft.TextInput = form.TextInput
	draft.Purpose = form.Purpose
	draft.Region = form.Region
	draft.AdditionalContext = form.AdditionalContext

	// a blank asset type keeps the earlier choice or is guessed from the file
	explicit := form.AssetType != ""
	if explicit {
		draft.AssetType = form.AssetType
	} else if draft.AssetType == "" {
		draft.AssetType = governance.AssetDocument
	}

	if err := s.validator.Struct(&form); err != nil {
		return handler.ValidationMessages(err)[0], err
	}

	if !form.Purpose.Valid() || (explicit && !form.AssetType.Valid()) {
		return msgInvalidForm, errors.New("unknown purpose or asset type")
	}

	fh, err := c.FormFile(handler.FormFile)
	if err != nil || fh.Size == 0 {
		// the payload of an earlier upload is not kept between requests
		if draft.FormatWarning == "" {
			draft.Filename = ""
			draft.MIMEType = ""
		}

		return "", nil
	}

	raw, err := handler.ReadFile(fh)
	if err != nil {
		log.Error().Err(err).Str("filename", fh.Filename).Msg("failed to read uploaded file")
		return msgInvalidForm, err
	}

	res, err := intake.Intake(fh.Filename, fh.Header.Get(fiber.HeaderContentType), raw, s.cfg.Upload.MaxFileSize)

	switch {
	case errors.Is(err, intake.ErrFileTooLarge):
		return msgFileTooLarge, err
	case errors.Is(err, intake.ErrEmptyFile):
		return msgEmptyFile, err
	case err != nil:
		return msgInvalidForm, err
	}

	intake.Apply(draft, fh.Filename, res)

	if explicit {
		draft.AssetType = form.AssetType
	} else if res.Kind == intake.KindText && detect {
		s.detectAssetType(c, draft)
	}

	log.Debug().
		Str("filename", fh.Filename).
		Str("mime_type", res.MIMEType).
		Int("size", len(raw)).
		Msg("file received")

	return "", nil
}

// detectAssetType fills the asset type of a text file, failures keep the extension guess.
func (s *Service) detectAssetType(c *fiber.Ctx, draft *governance.UploadState) {
	detected, err := s.analysis.DetectContext(c.UserContext(), draft.TextInput)
	if err != nil {
		if !errors.Is(err, analysis.ErrTextTooShort) {
			log.Warn().Err(err).Str("filename", draft.Filename).Msg("asset type detection failed")
		}

		return
	}

	if detected.AssetType.Valid() {
		draft.AssetType = detected.AssetType
		draft.DetectedConfidence = detected.Confidence
	}
}

func applyDetection(draft *governance.UploadState, d *governance.ContextDetection) {
	if d.Purpose.Valid() {
		draft.Purpose = d.Purpose
	}

	if d.AssetType.Valid() {
		draft.AssetType = d.AssetType
	}

	draft.DetectedConfidence = d.Confidence
}
