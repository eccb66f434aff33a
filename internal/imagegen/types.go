package imagegen

import (
	"context"
)

// Generator produces a single image from a text prompt, returning the URL at which the
// generated image can be downloaded
type Generator interface {
	GenerateOne(ctx context.Context, prompt string) (string, error)
}

// GenerationClient generates one image for each of several prompts
type GenerationClient interface {
	GenerateBatch(ctx context.Context, prompts []string) ([]string, error)
}
