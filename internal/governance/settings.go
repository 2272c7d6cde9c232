package governance

import (
	"fmt"
	"strings"
)

// BrandSettings are the admin configured guidelines injected into every prompt.
type BrandSettings struct {
	BrandName         string `json:"brandName" yaml:"brandName" toml:"brandName" form:"brand_name" validate:"required,max=200"`
	Mission           string `json:"mission" yaml:"mission" toml:"mission" form:"mission"`
	Audience          string `json:"audience" yaml:"audience" toml:"audience" form:"audience"`
	ToneVoice         string `json:"toneVoice" yaml:"toneVoice" toml:"toneVoice" form:"tone_voice" validate:"required"`
	StyleGuide        string `json:"styleGuide" yaml:"styleGuide" toml:"styleGuide" form:"style_guide"`
	BannedTerms       string `json:"bannedTerms" yaml:"bannedTerms" toml:"bannedTerms" form:"banned_terms"`
	InclusiveLanguage bool   `json:"inclusiveLanguage" yaml:"inclusiveLanguage" toml:"inclusiveLanguage" form:"inclusive_language"`

	// Version is incremented on every save.
	Version int `json:"version" yaml:"-" toml:"-" form:"-"`
}

// VersionLabel is the human readable version stored with history entries.
func (b BrandSettings) VersionLabel() string {
	return fmt.Sprintf("v%d", b.Version)
}

// BannedTermList splits the comma separated banned terms.
func (b BrandSettings) BannedTermList() []string {
	var terms []string

	for _, t := range strings.Split(b.BannedTerms, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}

	return terms
}

// DefaultBrandSettings returns the sample guidelines used until an admin saves their own.
func DefaultBrandSettings() BrandSettings {
	return BrandSettings{
		BrandName: "AERION",
		Mission: `1. BRAND PHILOSOPHY
AERION is conceived as a clarity engine in a world saturated with noise. The brand's purpose is not merely to look modern, but to systematically reduce cognitive friction wherever complex systems meet human decision-making. The philosophy below anchors all visual, verbal, and experiential choices.

1.1 Purpose and Role
AERION exists to transform complexity into clarity. Its role is to make technical systems, data, and processes understandable, so that individuals and organizations can act with confidence.`,
		Audience: `1.4 COGNITIVE LOAD CONSIDERATIONS
AERION design teams are expected to use cognitive load theory as a practical lens.
1. Extraneous Load: Must be minimized by removing ornamental content.
2. Intrinsic Load: Must be clarified by structuring complex concepts into progressive disclosure.`,
		ToneVoice: `2.1 VISUAL PERSONALITY
The visual personality is calm, structured, and quietly confident. Layouts breathe. Color is controlled. Typography is clear and unadorned. There are no decorative flourishes.

2.3 VISUAL RESTRAINT AS STRATEGY
AERION deliberately adopts visual restraint as a strategic tool. The question 'what can we remove?' is as important as 'what must we add?'`,
		StyleGuide: `2. VISUAL IDENTITY SYSTEM
The visual system of AERION is built to be rigorous, repeatable, and scalable. It is intentionally minimal but not empty.`,
		BannedTerms:       "synergy, paradigm shift, leverage, bandwidth, rockstar, ninja, guru, disruptive (unless referring to tech)",
		InclusiveLanguage: true,
		Version:           1,
	}
}
