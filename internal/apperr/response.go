package apperr

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Response is the JSON body written to the client when a request fails
type Response struct {
	Error      string         `json:"error"`
	StatusCode int            `json:"statusCode"`
	Context    map[string]any `json:"context,omitempty"`
	Stack      string         `json:"stack,omitempty"`
}

// Responder logs and renders errors as JSON responses. Stack traces are only included
// in responses if includeStack is set, which should only be the case in development.
type Responder struct {
	logger       zerolog.Logger
	includeStack bool
}

func NewResponder(logger zerolog.Logger, includeStack bool) *Responder {
	return &Responder{
		logger:       logger,
		includeStack: includeStack,
	}
}

// Write responds to req with the given error
func (r *Responder) Write(res http.ResponseWriter, req *http.Request, err error) {
	e := As(err)

	ev := r.logger.Error().
		Err(err).
		Str("kind", e.Kind.String()).
		Int("statusCode", e.Status).
		Str("method", req.Method).
		Str("path", req.URL.Path)
	if e.Context != nil {
		ev = ev.Fields(e.Context)
	}
	if e.Kind == KindInternal {
		ev.Msgf("Unexpected error: %s", e.Message)
	} else {
		ev.Msgf("AppError: %s", e.Message)
	}

	body := Response{
		Error:      e.Message,
		StatusCode: e.Status,
		Context:    e.Context,
	}
	if r.includeStack {
		body.Stack = e.Stack()
	}
	res.Header().Set("content-type", "application/json")
	res.WriteHeader(e.Status)
	if err := json.NewEncoder(res).Encode(body); err != nil {
		r.logger.Error().Err(err).Msg("Failed to serialize error response")
	}
}

// NotFoundHandler renders a 404 for any route that isn't otherwise handled
func (r *Responder) NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		r.Write(res, req, newError(KindNotFound, fmt.Sprintf("Route %s %s not found", req.Method, req.URL.Path), 0, nil))
	})
}
