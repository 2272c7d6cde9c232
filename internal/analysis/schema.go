package analysis

import (
	"github.com/brandalign/brandalign/internal/genai"
	"github.com/brandalign/brandalign/internal/governance"
)

func metricsSchema() *genai.Schema {
	return genai.Array(genai.Object(map[string]*genai.Schema{
		"name":   genai.String(),
		"status": genai.String(string(governance.MetricPass), string(governance.MetricFail), string(governance.MetricWarn)),
	}))
}

// AnalysisSchema is the response schema of Analyze.
func AnalysisSchema() *genai.Schema {
	return genai.Object(map[string]*genai.Schema{
		"overallScore":    genai.Number().Describe("Overall score from 0 to 100"),
		"confidenceScore": genai.Number().Describe("AI confidence in this analysis from 0 to 100"),
		"categories": genai.Object(map[string]*genai.Schema{
			"visual": genai.Object(map[string]*genai.Schema{
				"score":            genai.Number(),
				"layoutComplexity": genai.String("Low", "Optimal", "High").Describe("Density and structural complexity of the asset"),
				"metrics":          metricsSchema(),
			}, "score", "metrics", "layoutComplexity"),
			"cultural": genai.Object(map[string]*genai.Schema{
				"score":     genai.Number(),
				"toneDrift": genai.Number().Describe("Percentage deviation from brand tone (0-100)"),
				"metrics":   metricsSchema(),
			}, "score", "metrics", "toneDrift"),
			"compliance": genai.Object(map[string]*genai.Schema{
				"score":          genai.Number(),
				"riskAssessment": genai.String("Low", "Medium", "Critical").Describe("Overall GRC risk impact"),
				"metrics":        metricsSchema(),
				"claims": genai.Array(genai.Object(map[string]*genai.Schema{
					"text":     genai.String(),
					"status":   genai.String("Verified", "Unverified", "Expired"),
					"citation": genai.String(),
				}, "text", "status")),
			}, "score", "metrics", "riskAssessment", "claims"),
		}, "visual", "cultural", "compliance"),
		"culturalDeepDive": genai.Object(map[string]*genai.Schema{
			"regionDetected":     genai.String(),
			"suitabilitySummary": genai.String().Describe("Actionable summary of how well this fits the region."),
			"insights": genai.Array(genai.Object(map[string]*genai.Schema{
				"dimension":      genai.String("Symbolism", "Language", "Taboo", "Values", "Humor"),
				"observation":    genai.String(),
				"riskLevel":      genai.String("Safe", "Risky", "Offensive"),
				"recommendation": genai.String(),
			}, "dimension", "observation", "riskLevel", "recommendation")),
		}, "regionDetected", "suitabilitySummary", "insights"),
		"summary": genai.String().Describe("A brief 2 sentence summary of the analysis."),
		"issues": genai.Array(genai.Object(map[string]*genai.Schema{
			"id":          genai.String(),
			"category":    genai.String(string(governance.CategoryVisual), string(governance.CategoryCultural), string(governance.CategoryCompliance)),
			"subcategory": genai.String(),
			"description": genai.String(),
			"suggestion":  genai.String(),
			"severity":    genai.String(string(governance.SeverityLow), string(governance.SeverityMedium), string(governance.SeverityHigh)),
			"priorityScore": genai.Number().
				Describe("Calculated priority 1-100 based on severity and impact"),
		}, "id", "category", "subcategory", "description", "suggestion", "severity", "priorityScore")),
		"correctedText": genai.String().Describe("A fully rewritten version of the input text incorporating all suggestions."),
	}, "overallScore", "categories", "culturalDeepDive", "issues", "summary", "correctedText", "confidenceScore")
}

// TranslationSchema is the response schema of Translate.
func TranslationSchema() *genai.Schema {
	return genai.Object(map[string]*genai.Schema{
		"translatedText": genai.String(),
		"notes":          genai.String(),
		"stylisticScore": genai.Number().Describe("0-100 score of how well brand voice was preserved in translation"),
		"complianceIssues": genai.Array(genai.String()).
			Describe("List of any compliance terms violated in the target language"),
	}, "translatedText", "notes", "stylisticScore")
}

// ContextDetectionSchema is the response schema of DetectContext.
func ContextDetectionSchema() *genai.Schema {
	purposes := make([]string, len(governance.Purposes))
	for i, p := range governance.Purposes {
		purposes[i] = string(p)
	}

	assetTypes := make([]string, len(governance.AssetTypes))
	for i, a := range governance.AssetTypes {
		assetTypes[i] = string(a)
	}

	return genai.Object(map[string]*genai.Schema{
		"purpose":    genai.String(purposes...),
		"assetType":  genai.String(assetTypes...),
		"confidence": genai.Number(),
	}, "purpose", "assetType", "confidence")
}

// SettingsExtractionSchema is the response schema of ExtractBrandSettings.
func SettingsExtractionSchema() *genai.Schema {
	return genai.Object(map[string]*genai.Schema{
		"brandName":         genai.String(),
		"mission":           genai.String(),
		"audience":          genai.String(),
		"toneVoice":         genai.String(),
		"styleGuide":        genai.String(),
		"bannedTerms":       genai.String(),
		"inclusiveLanguage": genai.Boolean(),
	}, "brandName", "toneVoice", "bannedTerms", "inclusiveLanguage")
}
