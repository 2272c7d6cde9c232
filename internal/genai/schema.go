package genai

import (
	"encoding/json"
	"strings"

	gogenai "google.golang.org/genai"
)

// Type of a schema node.
type Type string

// Type values, named as in JSON schema.
const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// Schema is the subset of JSON schema understood by all providers.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Object builds an object schema.
func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: props, Required: required}
}

// Array builds an array schema.
func Array(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// String builds a string schema, optionally restricted to enum values.
func String(enum ...string) *Schema {
	return &Schema{Type: TypeString, Enum: enum}
}

// Number builds a number schema.
func Number() *Schema {
	return &Schema{Type: TypeNumber}
}

// Boolean builds a boolean schema.
func Boolean() *Schema {
	return &Schema{Type: TypeBoolean}
}

// Describe sets the description and returns s.
func (s *Schema) Describe(d string) *Schema {
	s.Description = d
	return s
}

// ToGenAI converts the schema to the Gemini SDK representation.
func (s *Schema) ToGenAI() *gogenai.Schema {
	if s == nil {
		return nil
	}

	out := &gogenai.Schema{
		Type:        gogenai.Type(strings.ToUpper(string(s.Type))),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       s.Items.ToGenAI(),
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*gogenai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = p.ToGenAI()
		}
	}

	return out
}

// JSON returns the JSON schema document.
func (s *Schema) JSON() (json.RawMessage, error) {
	return json.Marshal(s)
}
