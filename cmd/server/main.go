package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/codingconcepts/env"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/golden-vcr/icongen/internal/apperr"
	"github.com/golden-vcr/icongen/internal/health"
	"github.com/golden-vcr/icongen/internal/icons"
	"github.com/golden-vcr/icongen/internal/imagegen"
	"github.com/golden-vcr/icongen/internal/logging"
	"github.com/golden-vcr/icongen/internal/middleware"
)

type Config struct {
	BindAddr   string `env:"BIND_ADDR"`
	ListenPort uint16 `env:"LISTEN_PORT" default:"4000"`

	AppEnv   string `env:"APP_ENV" default:"production"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`

	ImagegenProvider  string `env:"IMAGEGEN_PROVIDER" default:"replicate"`
	ReplicateApiToken string `env:"REPLICATE_API_TOKEN"`
	ReplicateBaseUrl  string `env:"REPLICATE_BASE_URL"`
	OpenaiApiKey      string `env:"OPENAI_API_KEY"`

	CorsAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
}

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("error loading .env file: %v", err)
	}
	config := Config{}
	if err := env.Set(&config); err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger, err := logging.New(os.Stdout, config.AppEnv, config.LogLevel)
	if err != nil {
		log.Fatalf("error initializing logger: %v", err)
	}
	logger.Info().Msg("Initializing server...")

	ctx, close := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer close()

	// Missing credentials for the image generation API are fatal: we can't serve any
	// requests without them
	generation, err := newGenerationClient(&config, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", config.ImagegenProvider).Msg("Failed to initialize image generation client")
	}

	responder := apperr.NewResponder(logger, config.AppEnv == "development")
	r := mux.NewRouter()
	r.NotFoundHandler = responder.NotFoundHandler()

	// GET /health (and /api/health) reports that the server is up
	healthServer := health.NewServer(time.Now())
	healthServer.RegisterRoutes(r)

	// The rest of our API lives under /api
	api := r.PathPrefix("/api").Subrouter()
	healthServer.RegisterRoutes(api)
	iconsServer := icons.NewServer(generation, responder, logger)
	iconsServer.RegisterRoutes(api)

	handler := middleware.RequestID(middleware.Logger(logger)(newCors(config.CorsAllowedOrigins).Handler(r)))
	addr := fmt.Sprintf("%s:%d", config.BindAddr, config.ListenPort)
	server := &http.Server{Addr: addr, Handler: handler}

	logger.Info().
		Str("addr", addr).
		Str("environment", config.AppEnv).
		Str("logLevel", logger.GetLevel().String()).
		Str("provider", config.ImagegenProvider).
		Msg("Server started successfully")
	var wg errgroup.Group
	wg.Go(server.ListenAndServe)

	select {
	case <-ctx.Done():
		logger.Info().Msg("Received signal; closing server...")
		server.Shutdown(context.Background())
	}

	err = wg.Wait()
	if err == http.ErrServerClosed {
		logger.Info().Msg("Server closed.")
	} else {
		logger.Fatal().Err(err).Msg("error running server")
	}
}

func newGenerationClient(config *Config, logger zerolog.Logger) (imagegen.GenerationClient, error) {
	switch config.ImagegenProvider {
	case "replicate":
		c, err := imagegen.NewReplicateClient(config.ReplicateApiToken, config.ReplicateBaseUrl, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "openai":
		c, err := imagegen.NewOpenAIClient(config.OpenaiApiKey, "", logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unsupported IMAGEGEN_PROVIDER '%s': expected 'replicate' or 'openai'", config.ImagegenProvider)
}

// newCors permits requests from the given comma-separated list of origins, or from any
// origin if the list is empty
func newCors(allowedOrigins string) *cors.Cors {
	origins := make([]string, 0)
	for _, origin := range strings.Split(allowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return cors.AllowAll()
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
}
