package icons

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/golden-vcr/icongen"
	"github.com/golden-vcr/icongen/internal/apperr"
	"github.com/golden-vcr/icongen/internal/imagegen"
	"github.com/golden-vcr/icongen/internal/prompt"
)

// MaxRequestBodySize caps the size of a JSON request body that we'll read
const MaxRequestBodySize = 100 * 1024

type Server struct {
	generation imagegen.GenerationClient
	responder  *apperr.Responder
	logger     zerolog.Logger
}

func NewServer(generation imagegen.GenerationClient, responder *apperr.Responder, logger zerolog.Logger) *Server {
	logger.Info().Msg("Icon server initialized")
	return &Server{
		generation: generation,
		responder:  responder,
		logger:     logger,
	}
}

func (s *Server) RegisterRoutes(r *mux.Router) {
	// POST /generate-icons accepts a theme, a style, and optional colors, and responds
	// with the URLs of four freshly-generated icons
	r.Path("/generate-icons").Methods("POST").HandlerFunc(s.handleGenerateIcons)
}

func (s *Server) handleGenerateIcons(res http.ResponseWriter, req *http.Request) {
	// The request's Content-Type must indicate JSON if set
	contentType := req.Header.Get("content-type")
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		s.responder.Write(res, req, apperr.Validation("content-type not supported", "content-type", contentType))
		return
	}

	// Parse and validate the request payload
	body, err := io.ReadAll(http.MaxBytesReader(res, req.Body, MaxRequestBodySize))
	if err != nil {
		s.responder.Write(res, req, apperr.Validation("Request body could not be read", "body", err.Error()))
		return
	}
	payload, err := ParseRequest(body)
	if err != nil {
		s.responder.Write(res, req, err)
		return
	}

	// Generate our icons, failing the entire request if any one of them fails
	result, err := s.GenerateIcons(req.Context(), payload)
	if err != nil {
		s.responder.Write(res, req, err)
		return
	}
	res.Header().Set("content-type", "application/json")
	if err := json.NewEncoder(res).Encode(result); err != nil {
		s.responder.Write(res, req, apperr.Internal("Failed to serialize response", err))
	}
}

// GenerateIcons resolves the requested style, builds one prompt per variant, and
// generates all icons concurrently. The request is assumed to have been validated.
func (s *Server) GenerateIcons(ctx context.Context, r Request) (Response, error) {
	s.logger.Info().
		Str("prompt", truncate(r.Prompt, 50)).
		Str("styleId", r.StyleID).
		Bool("hasColors", r.Colors != nil).
		Strs("colors", r.Colors).
		Int("colorCount", len(r.Colors)).
		Msg("Icon generation request received")

	// Style IDs are only checked for syntax during validation: an ID that isn't in
	// our catalog is a 404
	style, ok := icongen.GetStyleByID(r.StyleID)
	if !ok {
		return Response{}, apperr.NotFound("Icon style", r.StyleID)
	}

	prompts := prompt.BuildSet(r.Prompt, style.PromptTag, r.Colors)
	s.logger.Info().
		Int("promptCount", len(prompts)).
		Str("firstPromptPreview", truncate(prompts[0], 100)).
		Msg("Prompts built successfully")

	images, err := s.generation.GenerateBatch(ctx, prompts)
	if err != nil {
		return Response{}, err
	}

	// Sanity-check: ensure that we got one image per prompt
	if len(images) != len(prompts) {
		return Response{}, apperr.Internal(fmt.Sprintf("invalid image generation result: expected to get %d images; got %d", len(prompts), len(images)), nil)
	}
	s.logger.Info().Int("imageCount", len(images)).Msg("Icons generated successfully")
	return Response{Images: images}, nil
}

// truncate shortens s to at most n runes for logging
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
