package imagegen

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/golden-vcr/icongen/internal/apperr"
)

// OpenAIClient generates icons using the OpenAI Images API, as an alternative to
// Replicate
type OpenAIClient struct {
	c      *openai.Client
	logger zerolog.Logger
}

// NewOpenAIClient initializes a client that authenticates with the given API key. If
// baseURL is empty, the public OpenAI API is used.
func NewOpenAIClient(token string, baseURL string, logger zerolog.Logger) (*OpenAIClient, error) {
	if token == "" {
		logger.Error().Msg("OpenAIClient initialization failed: Missing API token")
		return nil, apperr.RemoteService("Missing OPENAI_API_KEY", 500, "", nil)
	}
	config := openai.DefaultConfig(token)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	logger.Info().Msg("OpenAIClient initialized")
	return &OpenAIClient{
		c:      openai.NewClientWithConfig(config),
		logger: logger,
	}, nil
}

func (c *OpenAIClient) GenerateOne(ctx context.Context, prompt string) (string, error) {
	c.logger.Info().Str("prompt", prompt).Int("promptLength", len(prompt)).Msg("Sending prompt to OpenAI API")

	// DALL-E 2 is the only model that supports producing 512x512 images directly
	res, err := c.c.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          openai.CreateImageModelDallE2,
		N:              1,
		Size:           openai.CreateImageSize512x512,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		apiError := &openai.APIError{}
		if errors.As(err, &apiError) {
			c.logger.Error().Int("status", apiError.HTTPStatusCode).Str("type", apiError.Type).Str("errorText", apiError.Message).Msg("OpenAI API request failed")
			return "", apperr.RemoteService("OpenAI API request failed", apiError.HTTPStatusCode, apiError.Message, map[string]any{
				"status": apiError.HTTPStatusCode,
			})
		}
		requestError := &openai.RequestError{}
		if errors.As(err, &requestError) {
			c.logger.Error().Int("status", requestError.HTTPStatusCode).Err(requestError.Err).Msg("OpenAI API request failed")
			return "", apperr.RemoteService("OpenAI API request failed", requestError.HTTPStatusCode, requestError.Error(), map[string]any{
				"status": requestError.HTTPStatusCode,
			})
		}
		c.logger.Error().Err(err).Msg("Unexpected error generating icon")
		return "", apperr.RemoteService("Failed to generate icon", 0, err.Error(), nil)
	}

	if len(res.Data) == 0 {
		c.logger.Error().Msg("OpenAI returned no output")
		return "", apperr.RemoteService("OpenAI returned no output", 0, "", nil)
	}
	if res.Data[0].URL == "" {
		c.logger.Error().Msg("OpenAI returned invalid image URL")
		return "", apperr.RemoteService("OpenAI returned invalid image URL", 0, "", nil)
	}
	c.logger.Debug().Int("urlLength", len(res.Data[0].URL)).Msg("Icon generated successfully")
	return res.Data[0].URL, nil
}

func (c *OpenAIClient) GenerateBatch(ctx context.Context, prompts []string) ([]string, error) {
	return GenerateBatch(ctx, c, prompts, c.logger)
}
