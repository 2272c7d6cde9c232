// Package genai talks to the generative model providers.
// Every provider implements Generator: a system instruction, user parts and an
// optional response schema go in, the raw text reply comes out.
package genai

import "context"

// Part is one piece of the user message.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// TextPart returns a text only part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlinePart returns a part carrying file bytes.
func InlinePart(data []byte, mimeType string) Part {
	return Part{Data: data, MIMEType: mimeType}
}

// Request is a single structured generation call.
type Request struct {
	System string
	Parts  []Part
	// Schema constrains the JSON reply, nil requests free text.
	Schema *Schema
	// SchemaName identifies the schema for providers that need a name.
	SchemaName string
	// Temperature is left to the provider default when nil.
	Temperature *float32
}

// Generator produces the text reply of a request.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Temperature returns a pointer to t for Request.Temperature.
func Temperature(t float32) *float32 {
	return &t
}
