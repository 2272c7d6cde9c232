package genai

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	gogenai "google.golang.org/genai"
)

// ProviderGemini is the name of the Gemini provider.
const ProviderGemini = "gemini"

// Gemini generates with Google's Gemini models.
type Gemini struct {
	client *gogenai.Client
	model  string
}

// NewGemini creates a Gemini generator. baseURL is optional.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &gogenai.ClientConfig{
		APIKey:  apiKey,
		Backend: gogenai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := gogenai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}

	return &Gemini{client: client, model: model}, nil
}

// Name implements Generator.
func (g *Gemini) Name() string { return ProviderGemini }

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	parts := make([]*gogenai.Part, 0, len(req.Parts))

	for _, p := range req.Parts {
		if len(p.Data) > 0 {
			parts = append(parts, &gogenai.Part{InlineData: &gogenai.Blob{MIMEType: p.MIMEType, Data: p.Data}})
			continue
		}

		parts = append(parts, &gogenai.Part{Text: p.Text})
	}

	cfg := &gogenai.GenerateContentConfig{
		Temperature: req.Temperature,
	}

	if req.System != "" {
		cfg.SystemInstruction = &gogenai.Content{Parts: []*gogenai.Part{{Text: req.System}}}
	}

	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema.ToGenAI()
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*gogenai.Content{{Role: string(gogenai.RoleUser), Parts: parts}}, cfg)
	if err != nil {
		return "", errors.Wrap(err, "gemini generate content")
	}

	return responseText(resp), nil
}

// responseText joins the non thought text parts of the first candidate.
func responseText(resp *gogenai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder

	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}

		b.WriteString(p.Text)
	}

	return b.String()
}
