package governance

import "time"

// HistoryStatus is the verdict shown for a past analysis.
type HistoryStatus string

// HistoryStatus values.
const (
	StatusPass        HistoryStatus = "Pass"
	StatusNeedsReview HistoryStatus = "Needs Review"
	StatusCritical    HistoryStatus = "Critical"
)

// score thresholds of the history verdict.
const (
	passScore   = 90
	reviewScore = 70
)

// StatusForScore derives the verdict from an overall score.
func StatusForScore(score float64) HistoryStatus {
	switch {
	case score >= passScore:
		return StatusPass
	case score >= reviewScore:
		return StatusNeedsReview
	default:
		return StatusCritical
	}
}

// UntitledFilename names history entries of pasted text.
const UntitledFilename = "Text Snippet Analysis"

// ContextSnapshot records the settings an analysis ran with.
type ContextSnapshot struct {
	BrandSettingsVersion string `json:"brandSettingsVersion"`
	Region               string `json:"region"`
}

// HistoryItem summarises a past analysis.
type HistoryItem struct {
	ID              uint            `json:"id"`
	Filename        string          `json:"filename"`
	Type            AssetType       `json:"type"`
	Date            time.Time       `json:"date"`
	Score           float64         `json:"score"`
	Purpose         Purpose         `json:"purpose"`
	Region          string          `json:"region"`
	Issues          int             `json:"issues"`
	Status          HistoryStatus   `json:"status"`
	ContextSnapshot ContextSnapshot `json:"contextSnapshot"`
}

// NewHistoryItem builds the history entry of a finished analysis.
func NewHistoryItem(filename string, actx AnalysisContext, result *AnalysisResult, settings BrandSettings, now time.Time) HistoryItem {
	if filename == "" {
		filename = UntitledFilename
	}

	return HistoryItem{
		Filename: filename,
		Type:     actx.AssetType,
		Date:     now,
		Score:    result.OverallScore,
		Purpose:  actx.Purpose,
		Region:   actx.Region,
		Issues:   len(result.Issues),
		Status:   StatusForScore(result.OverallScore),
		ContextSnapshot: ContextSnapshot{
			BrandSettingsVersion: settings.VersionLabel(),
			Region:               actx.Region,
		},
	}
}
