package governance

import (
	"fmt"
	"math"
	"sort"
)

// Tab of the results dashboard.
type Tab string

// Tab values.
const (
	TabAnalysis    Tab = "analysis"
	TabTranslation Tab = "translation"
)

// Report file names.
const (
	CorrectedReportName  = "corrected_asset.txt"
	translatedReportName = "translated_%s.txt"
	maxScore             = 100
)

// Review is a finished analysis together with what the visitor did with it.
type Review struct {
	Result         AnalysisResult  `json:"result"`
	Filename       string          `json:"filename,omitempty"`
	OriginalText   string          `json:"originalText,omitempty"`
	AssetType      AssetType       `json:"assetType"`
	Fixed          map[string]bool `json:"fixed,omitempty"`
	TargetLanguage string          `json:"targetLanguage,omitempty"`
	Translation    *Translation    `json:"translation,omitempty"`
}

// NewReview starts a review of result without any fixed issues.
func NewReview(result AnalysisResult, filename, originalText string, assetType AssetType) *Review {
	return &Review{
		Result:         result,
		Filename:       filename,
		OriginalText:   originalText,
		AssetType:      assetType,
		Fixed:          map[string]bool{},
		TargetLanguage: Languages[0],
	}
}

// Toggle marks the issue fixed or, when it already is, unfixed.
func (r *Review) Toggle(id string) {
	if r.Fixed == nil {
		r.Fixed = map[string]bool{}
	}

	if r.Fixed[id] {
		delete(r.Fixed, id)
		return
	}

	r.Fixed[id] = true
}

// FixAll marks every issue of the category fixed except high severity ones,
// which need a manual decision.
func (r *Review) FixAll(category Category) {
	if r.Fixed == nil {
		r.Fixed = map[string]bool{}
	}

	for _, issue := range r.Result.Issues {
		if issue.Category == category && issue.Severity != SeverityHigh {
			r.Fixed[issue.ID] = true
		}
	}
}

// IsFixed reports whether the issue is marked fixed.
func (r *Review) IsFixed(id string) bool {
	return r.Fixed[id]
}

// FixedCount is the number of issues marked fixed.
func (r *Review) FixedCount() int {
	return len(r.Fixed)
}

// PotentialGainPerIssue is the score each fixed issue adds to the projection.
func (r *Review) PotentialGainPerIssue() float64 {
	total := len(r.Result.Issues)
	if total == 0 {
		total = 1
	}

	return (maxScore - r.Result.OverallScore) / float64(total)
}

// ProjectedScore is the overall score once the fixed issues are applied, capped at 100.
func (r *Review) ProjectedScore() int {
	projected := math.Round(r.Result.OverallScore + float64(r.FixedCount())*r.PotentialGainPerIssue())

	return int(math.Min(maxScore, projected))
}

// IssuesFor returns the issues of a category, highest priority first.
func (r *Review) IssuesFor(category Category) []Issue {
	var issues []Issue

	for _, issue := range r.Result.Issues {
		if issue.Category == category {
			issues = append(issues, issue)
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].PriorityScore > issues[j].PriorityScore
	})

	return issues
}

// CanTranslate reports whether the asset has text that can be translated.
func (r *Review) CanTranslate() bool {
	return r.OriginalText != "" || r.AssetType.TextBased()
}

// SetTranslation stores the translation into lang.
func (r *Review) SetTranslation(lang string, t Translation) {
	r.TargetLanguage = lang
	r.Translation = &t
}

// Report returns the download of a dashboard tab.
// ok is false when the tab has no text to download.
func (r *Review) Report(tab Tab) (filename, text string, ok bool) {
	if tab == TabTranslation {
		if r.Translation == nil || r.Translation.TranslatedText == "" {
			return "", "", false
		}

		return TranslatedReportName(r.TargetLanguage), r.Translation.TranslatedText, true
	}

	if r.Result.CorrectedText == "" {
		return "", "", false
	}

	return CorrectedReportName, r.Result.CorrectedText, true
}

// TranslatedReportName is the download name of a translation into lang.
func TranslatedReportName(lang string) string {
	return fmt.Sprintf(translatedReportName, lang)
}

// HasIssue reports whether the result contains an issue with id.
func (r *Review) HasIssue(id string) bool {
	for _, issue := range r.Result.Issues {
		if issue.ID == id {
			return true
		}
	}

	return false
}

// TranslationSource is the text sent for translation: the original text, or
// the corrected text when the asset was a file.
func (r *Review) TranslationSource() string {
	if r.OriginalText != "" {
		return r.OriginalText
	}

	return r.Result.CorrectedText
}
