package imagegen

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// GenerateBatch generates an image for every prompt concurrently, returning the
// resulting URLs in the same order as prompts. If any request fails, the batch fails
// with the first error observed and no URLs are returned. Requests that are still in
// flight when another fails are not canceled; their results are discarded.
func GenerateBatch(ctx context.Context, g Generator, prompts []string, logger zerolog.Logger) ([]string, error) {
	logger.Info().Int("count", len(prompts)).Msg("Generating multiple icons")

	// Each goroutine writes only to its own slot, so completion order doesn't matter
	urls := make([]string, len(prompts))
	var wg errgroup.Group
	for index, prompt := range prompts {
		wg.Go(func() error {
			url, err := g.GenerateOne(ctx, prompt)
			if err != nil {
				logger.Error().Err(err).Msgf("Failed to generate icon %d", index+1)
				return err
			}
			urls[index] = url
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		logger.Error().Err(err).Int("promptCount", len(prompts)).Msg("Failed to generate icons")
		return nil, err
	}

	logger.Info().Int("count", len(urls)).Msg("All icons generated successfully")
	return urls, nil
}
