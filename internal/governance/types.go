// Package governance holds the brand governance data model: analysis results
// returned by the model, brand settings, history entries and the review state
// derived from a result.
package governance

// Purpose is the communication goal of an asset.
type Purpose string

// Purpose values.
const (
	PurposeMarketing     Purpose = "Marketing"
	PurposeInternalComms Purpose = "Internal Comms"
	PurposeLegal         Purpose = "Legal"
	PurposeSocialMedia   Purpose = "Social Media"
	PurposeSalesPitch    Purpose = "Sales Pitch"
	PurposePressRelease  Purpose = "Press Release"
	PurposeCrisis        Purpose = "Crisis Response"
	PurposeHR            Purpose = "HR & Recruitment"
	PurposeProduct       Purpose = "Product & UX"
	PurposeTechnical     Purpose = "Technical Docs"
	PurposeInvestor      Purpose = "Investor Relations"
	PurposeExecutive     Purpose = "Executive Briefing"
	PurposeSupport       Purpose = "Customer Support"
	PurposeTraining      Purpose = "Training & L&D"
)

// Purposes lists every Purpose in display order.
var Purposes = []Purpose{ //nolint:gochecknoglobals
	PurposeMarketing, PurposeInternalComms, PurposeLegal, PurposeSocialMedia,
	PurposeSalesPitch, PurposePressRelease, PurposeCrisis, PurposeHR,
	PurposeProduct, PurposeTechnical, PurposeInvestor, PurposeExecutive,
	PurposeSupport, PurposeTraining,
}

// Valid reports whether p is a known purpose.
func (p Purpose) Valid() bool {
	for _, v := range Purposes {
		if v == p {
			return true
		}
	}

	return false
}

// AssetType is the kind of content submitted for review.
type AssetType string

// AssetType values.
const (
	AssetDocument      AssetType = "Document"
	AssetPresentation  AssetType = "Presentation"
	AssetEmail         AssetType = "Email"
	AssetImage         AssetType = "Image"
	AssetVideo         AssetType = "Video"
	AssetWebsite       AssetType = "Website"
	AssetSocialPost    AssetType = "Social Media Post"
	AssetAdvertisement AssetType = "Advertisement"
	AssetArticle       AssetType = "Article / Blog"
	AssetScript        AssetType = "Script"
	AssetUICopy        AssetType = "UI / UX Copy"
	AssetNewsletter    AssetType = "Newsletter"
	AssetPodcast       AssetType = "Podcast"
)

// AssetTypes lists every AssetType in display order.
var AssetTypes = []AssetType{ //nolint:gochecknoglobals
	AssetDocument, AssetPresentation, AssetEmail, AssetImage, AssetVideo,
	AssetWebsite, AssetSocialPost, AssetAdvertisement, AssetArticle,
	AssetScript, AssetUICopy, AssetNewsletter, AssetPodcast,
}

// Valid reports whether a is a known asset type.
func (a AssetType) Valid() bool {
	for _, v := range AssetTypes {
		if v == a {
			return true
		}
	}

	return false
}

// Visual reports whether the asset is judged on visual composition
// rather than document structure.
func (a AssetType) Visual() bool {
	switch a {
	case AssetImage, AssetVideo, AssetPresentation, AssetWebsite, AssetAdvertisement, AssetSocialPost:
		return true
	default:
		return false
	}
}

// TextBased reports whether the asset type carries translatable text on its own.
func (a AssetType) TextBased() bool {
	switch a {
	case AssetDocument, AssetEmail, AssetArticle, AssetSocialPost:
		return true
	default:
		return false
	}
}

// FixIntensity controls how aggressive suggested rewrites are.
type FixIntensity string

// FixIntensity values.
const (
	FixLow    FixIntensity = "Low"
	FixMedium FixIntensity = "Medium"
	FixHigh   FixIntensity = "High"
)

// UserRole is the view mode of a visitor.
type UserRole string

// UserRole values.
const (
	RoleGeneralUser UserRole = "GENERAL_USER"
	RoleAdmin       UserRole = "ADMIN"
)

// DefaultRegion is used when no target region is chosen.
const DefaultRegion = "Global"

// Category groups issues and scores.
type Category string

// Category values.
const (
	CategoryVisual     Category = "Visual"
	CategoryCultural   Category = "Cultural"
	CategoryCompliance Category = "Compliance"
)

// Categories lists the three scoring pillars.
var Categories = []Category{CategoryVisual, CategoryCultural, CategoryCompliance} //nolint:gochecknoglobals

// Severity of an issue.
type Severity string

// Severity values.
const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// MetricStatus is the outcome of a single check.
type MetricStatus string

// MetricStatus values.
const (
	MetricPass MetricStatus = "Pass"
	MetricFail MetricStatus = "Fail"
	MetricWarn MetricStatus = "Warn"
)

// Metric is a named check inside a category.
type Metric struct {
	Name   string       `json:"name"`
	Status MetricStatus `json:"status"`
}

// Claim is a factual or statistical statement found in the asset.
type Claim struct {
	Text     string `json:"text"`
	Status   string `json:"status"`
	Citation string `json:"citation,omitempty"`
}

// VisualScore is the visual and structural pillar.
type VisualScore struct {
	Score            float64  `json:"score"`
	LayoutComplexity string   `json:"layoutComplexity"`
	Metrics          []Metric `json:"metrics"`
}

// CulturalScore is the cultural and tone pillar.
type CulturalScore struct {
	Score     float64  `json:"score"`
	ToneDrift float64  `json:"toneDrift"`
	Metrics   []Metric `json:"metrics"`
}

// ComplianceScore is the compliance and governance pillar.
type ComplianceScore struct {
	Score          float64  `json:"score"`
	RiskAssessment string   `json:"riskAssessment"`
	Metrics        []Metric `json:"metrics"`
	Claims         []Claim  `json:"claims"`
}

// CategoryScores holds the per pillar scores.
type CategoryScores struct {
	Visual     VisualScore     `json:"visual"`
	Cultural   CulturalScore   `json:"cultural"`
	Compliance ComplianceScore `json:"compliance"`
}

// CulturalInsight is a single observation of the cultural deep dive.
type CulturalInsight struct {
	Dimension      string `json:"dimension"`
	Observation    string `json:"observation"`
	RiskLevel      string `json:"riskLevel"`
	Recommendation string `json:"recommendation"`
}

// CulturalDeepDive describes the regional fit of an asset.
type CulturalDeepDive struct {
	RegionDetected     string            `json:"regionDetected"`
	SuitabilitySummary string            `json:"suitabilitySummary"`
	Insights           []CulturalInsight `json:"insights"`
}

// Issue is a flagged deviation from the brand guidelines.
type Issue struct {
	ID            string   `json:"id"`
	Category      Category `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Description   string   `json:"description"`
	Suggestion    string   `json:"suggestion"`
	Severity      Severity `json:"severity"`
	PriorityScore float64  `json:"priorityScore"`
}

// AnalysisResult is the structured reply of an analysis.
type AnalysisResult struct {
	OverallScore     float64          `json:"overallScore"`
	ConfidenceScore  float64          `json:"confidenceScore"`
	Categories       CategoryScores   `json:"categories"`
	CulturalDeepDive CulturalDeepDive `json:"culturalDeepDive"`
	Issues           []Issue          `json:"issues"`
	CorrectedText    string           `json:"correctedText,omitempty"`
	Summary          string           `json:"summary"`
}

// Translation is the reply of a brand aware translation.
type Translation struct {
	TranslatedText   string   `json:"translatedText"`
	Notes            string   `json:"notes"`
	StylisticScore   float64  `json:"stylisticScore"`
	ComplianceIssues []string `json:"complianceIssues,omitempty"`
}

// ContextDetection is the guessed purpose and asset type of a text.
type ContextDetection struct {
	Purpose    Purpose   `json:"purpose"`
	AssetType  AssetType `json:"assetType"`
	Confidence float64   `json:"confidence"`
}

// AnalysisContext describes what an asset is for.
type AnalysisContext struct {
	Purpose           Purpose      `json:"purpose"`
	Region            string       `json:"region"`
	AssetType         AssetType    `json:"assetType"`
	FixIntensity      FixIntensity `json:"fixIntensity"`
	AdditionalContext string       `json:"additionalContext,omitempty"`
}

// Content is what gets analyzed: free text and or an inline file.
type Content struct {
	Text     string
	Data     []byte
	MIMEType string
}

// Empty reports whether there is nothing to send.
func (c Content) Empty() bool {
	return c.Text == "" && len(c.Data) == 0
}

// UploadState is the draft of the upload form.
type UploadState struct {
	Filename           string    `json:"filename,omitempty"`
	TextInput          string    `json:"textInput"`
	Purpose            Purpose   `json:"purpose"`
	Region             string    `json:"region"`
	AssetType          AssetType `json:"assetType"`
	FileBase64         string    `json:"fileBase64,omitempty"`
	MIMEType           string    `json:"mimeType,omitempty"`
	AdditionalContext  string    `json:"additionalContext"`
	DetectedConfidence float64   `json:"detectedConfidence"`
	FormatWarning      string    `json:"formatWarning,omitempty"`
}

// DefaultUploadState returns an empty draft.
func DefaultUploadState() UploadState {
	return UploadState{
		Purpose:   PurposeMarketing,
		Region:    DefaultRegion,
		AssetType: AssetDocument,
	}
}
