package analysis

import (
	"strings"
	"text/template"

	"github.com/brandalign/brandalign/internal/governance"
)

const (
	// AttachedAssetPrompt is the user message when only a file is analyzed.
	AttachedAssetPrompt = "Analyze the attached asset."

	translateLimit = 5000
	extractLimit   = 5000
	detectLimit    = 1000
	// MinDetectLength is the shortest text worth guessing a context for.
	MinDetectLength = 10
)

var funcs = template.FuncMap{ //nolint:gochecknoglobals
	"join": func(v any) string {
		switch vals := v.(type) {
		case []governance.Purpose:
			out := make([]string, len(vals))
			for i, p := range vals {
				out[i] = string(p)
			}

			return strings.Join(out, ", ")
		case []governance.AssetType:
			out := make([]string, len(vals))
			for i, a := range vals {
				out[i] = string(a)
			}

			return strings.Join(out, ", ")
		default:
			return ""
		}
	},
}

var analysisTmpl = template.Must(template.New("analysis").Funcs(funcs).Parse(`
You are "BrandAlign Core Engine", an expert Brand Alignment & Cultural Intelligence Engine acting as the guardian for the brand "{{.Settings.BrandName}}".
Analyze assets against brand guidelines with GRC-grade precision.

=== BRAND GUIDELINES CONFIGURATION ===

1. MISSION & PURPOSE:
{{.Settings.Mission}}

2. TARGET AUDIENCE PERSONAS:
{{.Settings.Audience}}

3. VOICE & TONE ARCHETYPE:
{{.Settings.ToneVoice}}

4. EDITORIAL STYLE GUIDE (Grammar, Formatting, Mechanics):
{{.Settings.StyleGuide}}

5. NEGATIVE CONSTRAINTS (Banned Terms):
{{.Settings.BannedTerms}}

6. INCLUSIVITY SETTING:
{{if .Settings.InclusiveLanguage}}Strict Global Inclusivity (Gender-neutral, culturally sensitive){{else}}Standard{{end}}

=== CONTEXT ===
- Asset Type: {{.Context.AssetType}}
- Target Purpose: {{.Context.Purpose}}
- Target Region: {{.Context.Region}}
- User Context: "{{if .Context.AdditionalContext}}{{.Context.AdditionalContext}}{{else}}None{{end}}"
- Fix Intensity: {{.Context.FixIntensity}} (Adjust rewrite aggressiveness accordingly).

IMPORTANT INSTRUCTION:
Analyze the ACTUAL content provided (Text, PDF, Audio, or Image). Do NOT simulate or hallucinate content.
If the content contains text, analyze it deeply for tone, terminology, and style mechanics.

=== SCORING WEIGHTS LOGIC ===
- If Purpose is "Crisis Response" or "Legal", COMPLIANCE weight = 60%.
- If Purpose is "Social Media", CULTURAL weight = 50%.
- If Asset is "Presentation", VISUAL weight = 40%.
{{- with .Weights}}
Applied to this asset: {{.}}.
{{- end}}

=== PILLARS ===
1. VISUAL & STRUCTURAL
{{- if .Visual}}
   - Analyze the visual elements, composition, color usage, text overlays, and overall aesthetic alignment against the brand.
   - Adaptive Logo Detection: Check for distorted/low-res logos.
{{- else}}
   - Evaluate the structure, formatting, hierarchy, and readability of the document against the Editorial Style Guide (e.g. Capitalization, Dates, Numbers).
{{- end}}
   - Layout Complexity: Analyze text density, alignment, white space.
   - Font Hierarchy & Spacing.

2. CULTURAL & TONE
   - Tone Drift: Calculate % deviation from "{{.Settings.ToneVoice}}".
   - Region: "{{.Context.Region}}". Apply micro-rules (e.g. if Japan, check politeness levels; if US, check directness).
   - Is the language inclusive and culturally adapted for {{.Context.Region}}? Does it fit the Target Audience?
   - Symbolism: Flag colors/objects with cultural meaning.

3. COMPLIANCE & GOVERNANCE
   - Banned Terms: FLAG any usage of: {{.Settings.BannedTerms}}.
   - Terminology: Are specific industry terms used correctly?
   - Risk Impact: Assign Low/Medium/Critical based on regulatory exposure.
   - Claims Accuracy: Identify statistical or factual claims. Mark as 'Unverified' if no source is clear.
   - Expiration: Check for time-sensitive claims (e.g. "Best of 2023") that might be expired.

4. PURPOSE
   - Does it effectively achieve the goal of a {{.Context.Purpose}}? Is it consistent with the Mission?

Your goal is to score the content and provide actionable fixes.
Return JSON matching the schema. Calculate 'priorityScore' (1-100) for issues based on severity + frequency.
`))

var translateTmpl = template.Must(template.New("translate").Parse(`
Translate to {{.Language}} while maintaining this Tone: "{{.Settings.ToneVoice}}".
Strictly avoid these banned terms: "{{.Settings.BannedTerms}}".

POST-TRANSLATION CHECK:
1. Calculate "Stylistic Alignment Score" (0-100): How well does the translated text capture the original brand voice?
2. Re-run Compliance: Did any banned terms slip through or appear due to localization? List them.

Text: "{{.Text}}"
`))

var detectTmpl = template.Must(template.New("detect").Funcs(funcs).Parse(`
Analyze this text and determine the 'Purpose' and 'AssetType'. Provide a confidence score (0-100).

Purposes: {{join .Purposes}}
AssetTypes: {{join .AssetTypes}}

Text: {{.Text}}
`))

var extractTmpl = template.Must(template.New("extract").Parse(`
Analyze the following brand guidelines document (or text snippet) and extract the key configuration settings.

Return a JSON object with:
1. brandName: The likely name of the brand.
2. mission: The mission statement or core purpose.
3. audience: Description of target audiences.
4. toneVoice: A detailed description of the tone of voice.
5. styleGuide: Specific editorial rules (capitalization, date formats, etc).
6. bannedTerms: A comma-separated string of terms that are explicitly discouraged.
7. inclusiveLanguage: Boolean.

Document Content:
{{.Text}}
`))

// SystemInstruction builds the analysis system instruction for an asset.
func SystemInstruction(settings governance.BrandSettings, actx governance.AnalysisContext) (string, error) {
	var b strings.Builder

	err := analysisTmpl.Execute(&b, struct {
		Settings governance.BrandSettings
		Context  governance.AnalysisContext
		Visual   bool
		Weights  string
	}{
		Settings: settings,
		Context:  actx,
		Visual:   actx.AssetType.Visual(),
		Weights:  strings.Join(weights(actx), ", "),
	})

	return b.String(), err
}

// weights names the scoring weights that apply to the asset.
func weights(actx governance.AnalysisContext) []string {
	var out []string

	switch actx.Purpose { //nolint:exhaustive
	case governance.PurposeCrisis, governance.PurposeLegal:
		out = append(out, "COMPLIANCE weight = 60%")
	case governance.PurposeSocialMedia:
		out = append(out, "CULTURAL weight = 50%")
	}

	if actx.AssetType == governance.AssetPresentation {
		out = append(out, "VISUAL weight = 40%")
	}

	return out
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	err := t.Execute(&b, data)

	return b.String(), err
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
