package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/golden-vcr/icongen/internal/apperr"
)

// DefaultReplicateURL is the Replicate predictions endpoint for FLUX.1 [schnell]
const DefaultReplicateURL = "https://api.replicate.com/v1/models/black-forest-labs/flux-schnell/predictions"

type predictionRequest struct {
	Input predictionInput `json:"input"`
}

type predictionInput struct {
	Prompt        string `json:"prompt"`
	NumOutputs    int    `json:"num_outputs"`
	AspectRatio   string `json:"aspect_ratio"`
	Megapixels    string `json:"megapixels"`
	OutputFormat  string `json:"output_format"`
	OutputQuality int    `json:"output_quality"`
}

// ReplicateClient generates icons by creating predictions with the Replicate API
type ReplicateClient struct {
	token  string
	url    string
	http   *http.Client
	logger zerolog.Logger
}

// NewReplicateClient initializes a client that authenticates with the given API token,
// falling back to the REPLICATE_API_TOKEN environment variable if token is empty. If
// url is empty, DefaultReplicateURL is used.
func NewReplicateClient(token string, url string, logger zerolog.Logger) (*ReplicateClient, error) {
	if token == "" {
		token = os.Getenv("REPLICATE_API_TOKEN")
	}
	if token == "" {
		logger.Error().Msg("ReplicateClient initialization failed: Missing API token")
		return nil, apperr.RemoteService("Missing REPLICATE_API_TOKEN", http.StatusInternalServerError, "", nil)
	}
	if url == "" {
		url = DefaultReplicateURL
	}
	logger.Info().Msg("ReplicateClient initialized")
	return &ReplicateClient{
		token:  token,
		url:    url,
		http:   &http.Client{},
		logger: logger,
	}, nil
}

func (c *ReplicateClient) GenerateOne(ctx context.Context, prompt string) (string, error) {
	c.logger.Info().Str("prompt", prompt).Int("promptLength", len(prompt)).Msg("Sending prompt to Replicate API")

	// 0.25 megapixels at a 1:1 aspect ratio gives us a 512x512 image
	body, err := json.Marshal(predictionRequest{
		Input: predictionInput{
			Prompt:        prompt,
			NumOutputs:    1,
			AspectRatio:   "1:1",
			Megapixels:    "0.25",
			OutputFormat:  "png",
			OutputQuality: 90,
		},
	})
	if err != nil {
		return "", apperr.Internal("Failed to encode Replicate request", err)
	}
	c.logger.Debug().RawJSON("body", body).Msg("Replicate API request body")

	// Ask Replicate to hold the connection open until the prediction is complete, so
	// that we get our output in the response rather than having to poll for it
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Internal("Failed to prepare Replicate request", err)
	}
	req.Header.Set("authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("content-type", "application/json")
	req.Header.Set("prefer", "wait")

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Unexpected error generating icon")
		return "", apperr.RemoteService("Failed to generate icon", 0, err.Error(), nil)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.Error().Err(err).Msg("Unexpected error generating icon")
		return "", apperr.RemoteService("Failed to generate icon", 0, err.Error(), nil)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.logger.Error().Int("status", res.StatusCode).Str("errorText", string(data)).Msg("Replicate API request failed")
		return "", apperr.RemoteService("Replicate API request failed", res.StatusCode, string(data), map[string]any{
			"status": res.StatusCode,
		})
	}
	if !gjson.ValidBytes(data) {
		c.logger.Error().Str("body", string(data)).Msg("Replicate returned a malformed response")
		return "", apperr.RemoteService("Failed to generate icon", 0, "malformed JSON in Replicate response", nil)
	}
	return c.parseOutput(gjson.ParseBytes(data))
}

// parseOutput extracts the image URL from a successful prediction response, where
// 'output' may be either a single URL or an array of URLs
func (c *ReplicateClient) parseOutput(data gjson.Result) (string, error) {
	if errField := data.Get("error"); isTruthy(errField) {
		status := data.Get("status").String()
		c.logger.Error().Str("error", errField.String()).Str("status", status).Msg("Replicate API returned error")
		var details map[string]any
		if status != "" {
			details = map[string]any{"status": status}
		}
		return "", apperr.RemoteService(fmt.Sprintf("Replicate API error: %s", errField.String()), 0, errField.String(), details)
	}

	output := data.Get("output")
	if !isTruthy(output) {
		c.logger.Error().Msg("Replicate returned no output")
		return "", apperr.RemoteService("Replicate returned no output", 0, "", nil)
	}

	url := output
	if output.IsArray() {
		url = output.Get("0")
	}
	if url.Type != gjson.String || url.Str == "" {
		c.logger.Error().RawJSON("output", []byte(output.Raw)).Msg("Replicate returned invalid image URL")
		return "", apperr.RemoteService("Replicate returned invalid image URL", 0, "", map[string]any{
			"output": output.Value(),
		})
	}

	c.logger.Debug().Int("urlLength", len(url.Str)).Msg("Icon generated successfully")
	return url.Str, nil
}

func (c *ReplicateClient) GenerateBatch(ctx context.Context, prompts []string) ([]string, error) {
	return GenerateBatch(ctx, c, prompts, c.logger)
}

// isTruthy reports whether a JSON value is present and non-empty: null, false, 0, and
// "" are all treated as absent
func isTruthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	}
	return true
}
