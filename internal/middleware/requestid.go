package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID tags each request with the ID supplied by the client in X-Request-ID, or a
// freshly-generated UUID, and echoes it back in the response
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		rid := req.Header.Get("x-request-id")
		if rid == "" {
			rid = uuid.NewString()
		}
		res.Header().Set("x-request-id", rid)
		ctx := context.WithValue(req.Context(), requestIDKey, rid)
		next.ServeHTTP(res, req.WithContext(ctx))
	})
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
