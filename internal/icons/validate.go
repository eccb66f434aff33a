package icons

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/golden-vcr/icongen/internal/apperr"
)

var hexColorRegexp = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsValidHexColor reports whether s is a color in #RRGGBB form
func IsValidHexColor(s string) bool {
	return hexColorRegexp.MatchString(s)
}

// ParseRequest parses a JSON request body into a Request. Fields are checked in a fixed
// order (prompt, then styleId, then colors) and the first invalid field is reported as
// a validation error. Whether styleId refers to a known style is not checked here.
func ParseRequest(body []byte) (Request, error) {
	if !gjson.ValidBytes(body) {
		return Request{}, apperr.Validation("Request body must be a valid JSON object", "body", nil)
	}
	payload := gjson.ParseBytes(body)
	if !payload.IsObject() {
		return Request{}, apperr.Validation("Request body must be a valid JSON object", "body", payload.Value())
	}

	prompt, err := ValidatePrompt(payload.Get("prompt"))
	if err != nil {
		return Request{}, err
	}
	styleId, err := ValidateStyleID(payload.Get("styleId"))
	if err != nil {
		return Request{}, err
	}
	colors, err := ValidateColors(payload.Get("colors"))
	if err != nil {
		return Request{}, err
	}
	return Request{
		Prompt:  prompt,
		StyleID: styleId,
		Colors:  colors,
	}, nil
}

// ValidatePrompt requires that the prompt is a string with at least one
// non-whitespace character. The prompt is returned as supplied, untrimmed.
func ValidatePrompt(value gjson.Result) (string, error) {
	if value.Type != gjson.String || strings.TrimSpace(value.Str) == "" {
		return "", apperr.Validation("Prompt is required and must be a non-empty string", "prompt", value.Value())
	}
	return value.Str, nil
}

// ValidateStyleID requires that the style ID is a non-empty string
func ValidateStyleID(value gjson.Result) (string, error) {
	if value.Type != gjson.String || value.Str == "" {
		return "", apperr.Validation("styleId is required and must be a string", "styleId", value.Value())
	}
	return value.Str, nil
}

// ValidateColors accepts an absent value, or an array of #RRGGBB strings. A nil slice
// is returned if colors were omitted.
func ValidateColors(value gjson.Result) ([]string, error) {
	if !value.Exists() {
		return nil, nil
	}
	if !value.IsArray() {
		return nil, apperr.Validation("colors must be an array", "colors", value.Value())
	}

	elements := value.Array()
	colors := make([]string, 0, len(elements))
	for i, element := range elements {
		field := fmt.Sprintf("colors[%d]", i)
		if element.Type != gjson.String {
			return nil, apperr.Validation(fmt.Sprintf("%s must be a string", field), field, element.Value())
		}
		if !IsValidHexColor(element.Str) {
			return nil, apperr.Validation(fmt.Sprintf("%s must be a valid hex color (format: #RRGGBB)", field), field, element.Str)
		}
		colors = append(colors, element.Str)
	}
	return colors, nil
}
