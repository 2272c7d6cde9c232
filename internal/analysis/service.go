// Package analysis turns brand guidelines and an asset into model requests and
// decodes the structured replies.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/brandalign/brandalign/internal/genai"
	"github.com/brandalign/brandalign/internal/governance"
)

// DefaultTemperature is used for analysis calls when none is configured.
const DefaultTemperature = 0.2

// Service runs governance operations against a generator.
type Service struct {
	gen         genai.Generator
	temperature float32
}

// New creates a Service. A zero temperature selects DefaultTemperature.
func New(gen genai.Generator, temperature float32) *Service {
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	return &Service{gen: gen, temperature: temperature}
}

// Analyze scores content against the brand guidelines.
func (s *Service) Analyze(
	ctx context.Context,
	content governance.Content,
	actx governance.AnalysisContext,
	settings governance.BrandSettings,
) (*governance.AnalysisResult, error) {
	if content.Empty() {
		return nil, ErrNothingToAnalyze
	}

	if actx.Region == "" {
		actx.Region = governance.DefaultRegion
	}

	if actx.FixIntensity == "" {
		actx.FixIntensity = governance.FixMedium
	}

	system, err := SystemInstruction(settings, actx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render system instruction")
	}

	text := content.Text
	if text == "" {
		text = AttachedAssetPrompt
	}

	parts := []genai.Part{genai.TextPart(text)}
	if len(content.Data) > 0 && content.MIMEType != "" {
		parts = append(parts, genai.InlinePart(content.Data, content.MIMEType))
	}

	schema := AnalysisSchema()

	var result governance.AnalysisResult
	if err = s.call(ctx, opAnalyze, genai.Request{
		System:      system,
		Parts:       parts,
		Schema:      schema,
		SchemaName:  "brand_analysis",
		Temperature: genai.Temperature(s.temperature),
	}, schema, &result); err != nil {
		return nil, err
	}

	uniqueIssueIDs(result.Issues)

	log.Debug().
		Float64("score", result.OverallScore).
		Int("issues", len(result.Issues)).
		Str("purpose", string(actx.Purpose)).
		Str("asset_type", string(actx.AssetType)).
		Msg("analysis finished")

	return &result, nil
}

// uniqueIssueIDs replaces empty or repeated issue ids, fix toggles address issues by id.
func uniqueIssueIDs(issues []governance.Issue) {
	seen := make(map[string]bool, len(issues))

	for i := range issues {
		if issues[i].ID == "" || seen[issues[i].ID] {
			issues[i].ID = uuid.NewString()
		}

		seen[issues[i].ID] = true
	}
}

// Translate translates text into language while keeping the brand voice.
func (s *Service) Translate(
	ctx context.Context,
	text, language string,
	settings governance.BrandSettings,
) (*governance.Translation, error) {
	if text == "" {
		return nil, ErrNothingToAnalyze
	}

	prompt, err := render(translateTmpl, struct {
		Language string
		Settings governance.BrandSettings
		Text     string
	}{Language: language, Settings: settings, Text: truncate(text, translateLimit)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render translation prompt")
	}

	schema := TranslationSchema()

	var t governance.Translation
	if err = s.call(ctx, opTranslate, genai.Request{
		Parts:      []genai.Part{genai.TextPart(prompt)},
		Schema:     schema,
		SchemaName: "translation",
	}, schema, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

// DetectContext guesses purpose and asset type of a text.
// Text shorter than MinDetectLength returns ErrTextTooShort without calling the model,
// an empty reply yields a zero confidence default.
func (s *Service) DetectContext(ctx context.Context, text string) (*governance.ContextDetection, error) {
	if len([]rune(text)) < MinDetectLength {
		return nil, ErrTextTooShort
	}

	prompt, err := render(detectTmpl, struct {
		Purposes   []governance.Purpose
		AssetTypes []governance.AssetType
		Text       string
	}{Purposes: governance.Purposes, AssetTypes: governance.AssetTypes, Text: truncate(text, detectLimit)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render detection prompt")
	}

	schema := ContextDetectionSchema()

	var d governance.ContextDetection

	err = s.call(ctx, opDetect, genai.Request{
		Parts:      []genai.Part{genai.TextPart(prompt)},
		Schema:     schema,
		SchemaName: "context_detection",
	}, schema, &d)
	if errors.Is(err, genai.ErrEmptyResponse) {
		return &governance.ContextDetection{
			Purpose:   governance.PurposeMarketing,
			AssetType: governance.AssetDocument,
		}, nil
	}

	if err != nil {
		return nil, err
	}

	return &d, nil
}

// ExtractBrandSettings reads brand guidelines out of a free form document.
func (s *Service) ExtractBrandSettings(ctx context.Context, document string) (*governance.BrandSettings, error) {
	if document == "" {
		return nil, ErrNothingToAnalyze
	}

	prompt, err := render(extractTmpl, struct{ Text string }{Text: truncate(document, extractLimit)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render extraction prompt")
	}

	schema := SettingsExtractionSchema()

	var b governance.BrandSettings
	if err = s.call(ctx, opExtract, genai.Request{
		Parts:      []genai.Part{genai.TextPart(prompt)},
		Schema:     schema,
		SchemaName: "brand_settings",
	}, schema, &b); err != nil {
		return nil, err
	}

	return &b, nil
}

// call runs a request and decodes the reply into v.
func (s *Service) call(ctx context.Context, op string, req genai.Request, schema *genai.Schema, v any) error {
	start := time.Now()

	text, err := s.gen.Generate(ctx, req)
	if err == nil && text == "" {
		err = genai.ErrEmptyResponse
	}

	if err == nil {
		err = Decode(text, schema, v)
	}

	observe(op, start, err)

	if err != nil {
		log.Error().Err(err).Str("operation", op).Str("provider", s.gen.Name()).Msg("model call failed")
		return errors.Wrap(err, op)
	}

	return nil
}
