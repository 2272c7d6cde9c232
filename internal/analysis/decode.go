package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/brandalign/brandalign/internal/genai"
)

var (
	jsonFenceStart = regexp.MustCompile("^```json\\s*") //nolint:gochecknoglobals
	fenceStart     = regexp.MustCompile("^```\\s*")     //nolint:gochecknoglobals
	fenceEnd       = regexp.MustCompile("\\s*```$")     //nolint:gochecknoglobals
)

// CleanJSON strips a markdown code fence around a JSON reply.
// An empty reply becomes "{}".
func CleanJSON(text string) string {
	if text == "" {
		return "{}"
	}

	cleaned := strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(cleaned, "```json"):
		cleaned = fenceEnd.ReplaceAllString(jsonFenceStart.ReplaceAllString(cleaned, ""), "")
	case strings.HasPrefix(cleaned, "```"):
		cleaned = fenceEnd.ReplaceAllString(fenceStart.ReplaceAllString(cleaned, ""), "")
	}

	return cleaned
}

// Decode parses a model reply into v after checking it against schema.
func Decode(text string, schema *genai.Schema, v any) error {
	raw := []byte(CleanJSON(text))

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(ErrMalformedResponse, err.Error())
	}

	if err := validate(schema, doc, "$"); err != nil {
		return errors.Wrap(ErrMalformedResponse, err.Error())
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(ErrMalformedResponse, err.Error())
	}

	return nil
}

// validate checks the declared required fields and enum values.
func validate(s *genai.Schema, v any, path string) error {
	if s == nil || v == nil {
		return nil
	}

	switch s.Type {
	case genai.TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object", path)
		}

		for _, name := range s.Required {
			if _, ok := obj[name]; !ok {
				return fmt.Errorf("%s: missing required field %q", path, name)
			}
		}

		for name, prop := range s.Properties {
			if err := validate(prop, obj[name], path+"."+name); err != nil {
				return err
			}
		}
	case genai.TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array", path)
		}

		for i, item := range arr {
			if err := validate(s.Items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case genai.TypeString:
		if len(s.Enum) == 0 {
			return nil
		}

		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("%s: expected string", path)
		}

		for _, e := range s.Enum {
			if e == str {
				return nil
			}
		}

		return fmt.Errorf("%s: %q is not one of %s", path, str, strings.Join(s.Enum, ", "))
	}

	return nil
}
