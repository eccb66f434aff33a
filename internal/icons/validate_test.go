package icons

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golden-vcr/icongen/internal/apperr"
)

func Test_ParseRequest(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		want        Request
		wantMessage string
		wantField   string
	}{
		{
			"valid request without colors",
			`{"prompt":"coffee","styleId":"pastel-flat"}`,
			Request{Prompt: "coffee", StyleID: "pastel-flat"},
			"",
			"",
		},
		{
			"valid request with colors in either case",
			`{"prompt":"  coffee ","styleId":"clay-3d","colors":["#FF5733","#abcdef"]}`,
			Request{Prompt: "  coffee ", StyleID: "clay-3d", Colors: []string{"#FF5733", "#abcdef"}},
			"",
			"",
		},
		{
			"empty colors array is accepted",
			`{"prompt":"coffee","styleId":"clay-3d","colors":[]}`,
			Request{Prompt: "coffee", StyleID: "clay-3d", Colors: []string{}},
			"",
			"",
		},
		{
			"unknown style passes syntactic validation",
			`{"prompt":"coffee","styleId":"not-a-style"}`,
			Request{Prompt: "coffee", StyleID: "not-a-style"},
			"",
			"",
		},
		{
			"body must be JSON",
			`prompt=coffee`,
			Request{},
			"Request body must be a valid JSON object",
			"body",
		},
		{
			"body must be an object",
			`["coffee"]`,
			Request{},
			"Request body must be a valid JSON object",
			"body",
		},
		{
			"prompt is required",
			`{"styleId":"pastel-flat"}`,
			Request{},
			"Prompt is required and must be a non-empty string",
			"prompt",
		},
		{
			"prompt may not be empty",
			`{"prompt":"","styleId":"pastel-flat"}`,
			Request{},
			"Prompt is required and must be a non-empty string",
			"prompt",
		},
		{
			"prompt may not be whitespace",
			`{"prompt":" \t\n ","styleId":"pastel-flat"}`,
			Request{},
			"Prompt is required and must be a non-empty string",
			"prompt",
		},
		{
			"prompt must be a string",
			`{"prompt":42,"styleId":"pastel-flat"}`,
			Request{},
			"Prompt is required and must be a non-empty string",
			"prompt",
		},
		{
			"prompt is checked before styleId",
			`{"prompt":null}`,
			Request{},
			"Prompt is required and must be a non-empty string",
			"prompt",
		},
		{
			"styleId is required",
			`{"prompt":"coffee"}`,
			Request{},
			"styleId is required and must be a string",
			"styleId",
		},
		{
			"styleId must be a string",
			`{"prompt":"coffee","styleId":["pastel-flat"]}`,
			Request{},
			"styleId is required and must be a string",
			"styleId",
		},
		{
			"colors must be an array",
			`{"prompt":"coffee","styleId":"pastel-flat","colors":"#FF5733"}`,
			Request{},
			"colors must be an array",
			"colors",
		},
		{
			"null colors are not an array",
			`{"prompt":"coffee","styleId":"pastel-flat","colors":null}`,
			Request{},
			"colors must be an array",
			"colors",
		},
		{
			"color elements must be strings",
			`{"prompt":"coffee","styleId":"pastel-flat","colors":["#FF5733",16711680]}`,
			Request{},
			"colors[1] must be a string",
			"colors[1]",
		},
		{
			"color elements must be hex colors",
			`{"prompt":"coffee","styleId":"pastel-flat","colors":["not-a-color"]}`,
			Request{},
			"colors[0] must be a valid hex color (format: #RRGGBB)",
			"colors[0]",
		},
		{
			"first invalid color is reported",
			`{"prompt":"coffee","styleId":"pastel-flat","colors":["#FF5733","#FFF","red"]}`,
			Request{},
			"colors[1] must be a valid hex color (format: #RRGGBB)",
			"colors[1]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequest([]byte(tt.body))
			if tt.wantMessage == "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			e := apperr.As(err)
			assert.Equal(t, apperr.KindValidation, e.Kind)
			assert.Equal(t, http.StatusBadRequest, e.Status)
			assert.Equal(t, tt.wantMessage, e.Message)
			assert.Equal(t, tt.wantField, e.Context["field"])
		})
	}
}

func Test_IsValidHexColor(t *testing.T) {
	valid := []string{"#000000", "#FFFFFF", "#ff5733", "#A1b2C3"}
	for _, s := range valid {
		assert.True(t, IsValidHexColor(s), s)
	}
	invalid := []string{"", "#FFF", "FF5733", "#FF57330", "#GG5733", " #FF5733", "#FF5733\n"}
	for _, s := range invalid {
		assert.False(t, IsValidHexColor(s), s)
	}
}
