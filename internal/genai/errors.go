package genai

import "errors"

var (
	// ErrMissingAPIKey is returned when no api key is configured for the provider.
	ErrMissingAPIKey = errors.New("API key not found")
	// ErrEmptyResponse is returned when the model replied without any text.
	ErrEmptyResponse = errors.New("no response text generated")
	// ErrClientNotInitialized is returned when the engine was not opened.
	ErrClientNotInitialized = errors.New("model client not initialized")
	// ErrUnsupportedInput is returned when a provider can not accept an inline file type.
	ErrUnsupportedInput = errors.New("provider does not accept this file type")
)
