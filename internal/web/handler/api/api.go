// Package api provides the JSON API of the governance operations.
package api

import (
	"encoding/base64"
	"errors"
	"slices"
	"strconv"
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
)

// Path is the prefix of the API routes.
const Path = handler.RootPath + "api/v1"

type (
	// ErrorResponse is the body of every failed API call.
	ErrorResponse struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Errors  []string `json:"errors,omitempty"`
	}

	// AnalyzeRequest is the body of POST /analyze.
	AnalyzeRequest struct {
		Text              string                  `json:"text"`
		FileBase64        string                  `json:"fileBase64"`
		MIMEType          string                  `json:"mimeType" validate:"required_with=FileBase64"`
		Filename          string                  `json:"filename" validate:"max=255"`
		Purpose           governance.Purpose      `json:"purpose" validate:"required"`
		Region            string                  `json:"region" validate:"max=100"`
		AssetType         governance.AssetType    `json:"assetType" validate:"required"`
		FixIntensity      governance.FixIntensity `json:"fixIntensity" validate:"omitempty,oneof=Low Medium High"`
		AdditionalContext string                  `json:"additionalContext" validate:"max=2000"`
	}

	// AnalyzeResponse is the body of a successful POST /analyze.
	AnalyzeResponse struct {
		Result  *governance.AnalysisResult `json:"result"`
		History governance.HistoryItem     `json:"history"`
	}

	// TranslateRequest is the body of POST /translate.
	TranslateRequest struct {
		Text     string `json:"text" validate:"required"`
		Language string `json:"language" validate:"required"`
	}

	// DetectRequest is the body of POST /detect.
	DetectRequest struct {
		Text string `json:"text" validate:"required"`
	}
)

// Service is the API handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	analysis  *analysis.Service
}

// Handler is the API handler.
var Handler = Service{}

// Init initializes the API handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()
	s.analysis = analysis.New(&genai.Engine, cfg.Model.Temperature)

	s.routes(app.Group(Path))

	return nil
}

func (s *Service) routes(router fiber.Router) {
	router.Post("/analyze", s.Analyze)
	router.Post("/translate", s.Translate)
	router.Post("/detect", s.Detect)
	router.Get("/history", s.History)
	router.Delete("/history/:id", s.DeleteHistory)
}

func fail(c *fiber.Ctx, status int, message string, errs ...string) error {
	return c.Status(status).JSON(ErrorResponse{Message: message, Errors: errs})
}

// requestError describes a rejected request body.
type requestError struct {
	message string
	errs    []string
}

func (e *requestError) Error() string { return e.message }

// parse decodes and validates a JSON body.
func (s *Service) parse(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return &requestError{message: "invalid request body"}
	}

	if err := s.validator.Struct(v); err != nil {
		return &requestError{message: "validation failed", errs: handler.ValidationMessages(err)}
	}

	return nil
}

func badRequest(c *fiber.Ctx, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return fail(c, fiber.StatusBadRequest, re.message, re.errs...)
	}

	return fail(c, fiber.StatusBadRequest, err.Error())
}

// Analyze scores an asset and records it in the history.
func (s *Service) Analyze(c *fiber.Ctx) error {
	req := AnalyzeRequest{}
	if err := s.parse(c, &req); err != nil {
		return badRequest(c, err)
	}

	if !req.Purpose.Valid() || !req.AssetType.Valid() {
		return fail(c, fiber.StatusBadRequest, "unknown purpose or asset type")
	}

	content := governance.Content{Text: req.Text}

	if req.FileBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.FileBase64)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "fileBase64 is not valid base64")
		}

		res, err := intake.Intake(req.Filename, req.MIMEType, data, s.cfg.Upload.MaxFileSize)

		switch {
		case errors.Is(err, intake.ErrFileTooLarge):
			return fail(c, fiber.StatusRequestEntityTooLarge, err.Error())
		case err != nil:
			return fail(c, fiber.StatusBadRequest, err.Error())
		}

		switch res.Kind {
		case intake.KindBinary:
			content.Data = res.Data
			content.MIMEType = res.MIMEType
		case intake.KindText:
			if content.Text == "" {
				content.Text = res.Text
			}
		case intake.KindUnsupported:
			return fail(c, fiber.StatusUnprocessableEntity, intake.ConvertMessage, intake.FormatWarning)
		}
	}

	if content.Empty() {
		return fail(c, fiber.StatusBadRequest, analysis.ErrNothingToAnalyze.Error())
	}

	settings, err := brand.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load brand settings")
		return fail(c, fiber.StatusInternalServerError, analysis.UserMessage)
	}

	actx := governance.AnalysisContext{
		Purpose:           req.Purpose,
		Region:            req.Region,
		AssetType:         req.AssetType,
		FixIntensity:      req.FixIntensity,
		AdditionalContext: req.AdditionalContext,
	}

	result, err := s.analysis.Analyze(c.UserContext(), content, actx, settings)
	if err != nil {
		log.Error().Err(err).Str("filename", req.Filename).Msg("api analysis failed")
		return fail(c, fiber.StatusBadGateway, analysis.UserMessage)
	}

	if actx.Region == "" {
		actx.Region = governance.DefaultRegion
	}

	item, err := history.Create(s.db, governance.NewHistoryItem(req.Filename, actx, result, settings, time.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to store history entry")
	}

	return c.JSON(AnalyzeResponse{Result: result, History: item})
}

// Translate translates text into one of the supported languages.
func (s *Service) Translate(c *fiber.Ctx) error {
	req := TranslateRequest{}
	if err := s.parse(c, &req); err != nil {
		return badRequest(c, err)
	}

	if !slices.Contains(governance.Languages, req.Language) {
		return fail(c, fiber.StatusBadRequest, "unsupported language")
	}

	settings, err := brand.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load brand settings")
		return fail(c, fiber.StatusInternalServerError, "translation failed")
	}

	t, err := s.analysis.Translate(c.UserContext(), req.Text, req.Language, settings)
	if err != nil {
		log.Error().Err(err).Str("language", req.Language).Msg("api translation failed")
		return fail(c, fiber.StatusBadGateway, "translation failed")
	}

	return c.JSON(t)
}

// Detect guesses purpose and asset type of a text.
func (s *Service) Detect(c *fiber.Ctx) error {
	req := DetectRequest{}
	if err := s.parse(c, &req); err != nil {
		return badRequest(c, err)
	}

	d, err := s.analysis.DetectContext(c.UserContext(), req.Text)

	switch {
	case errors.Is(err, analysis.ErrTextTooShort):
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	case err != nil:
		log.Error().Err(err).Msg("api context detection failed")
		return fail(c, fiber.StatusBadGateway, "context detection failed")
	}

	return c.JSON(d)
}

// History lists past analyses.
func (s *Service) History(c *fiber.Ctx) error {
	q := history.Query{}
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid query")
	}

	page, err := history.List(s.db, q)
	if err != nil {
		log.Error().Err(err).Msg("failed to list history")
		return fail(c, fiber.StatusInternalServerError, "failed to list history")
	}

	return c.JSON(page)
}

// DeleteHistory removes a history entry.
func (s *Service) DeleteHistory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid id")
	}

	if err = history.Delete(s.db, id); err != nil {
		if errors.Is(err, history.ErrHistoryNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to delete history entry")

		return fail(c, fiber.StatusInternalServerError, "failed to delete history entry")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
