package analysis

import "errors"

var (
	// ErrMalformedResponse is returned when a reply is not JSON or violates the schema.
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrNothingToAnalyze is returned when neither text nor a file was given.
	ErrNothingToAnalyze = errors.New("nothing to analyze")
	// ErrTextTooShort is returned by DetectContext for text too short to classify.
	ErrTextTooShort = errors.New("text too short for context detection")
)

// UserMessage is the one message shown to users for any failed analysis.
const UserMessage = "Analysis failed. Please check your API Key and try again."
