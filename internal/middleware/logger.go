package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logger logs every incoming request, then logs its outcome once the handler returns.
// Failed requests are logged at warn level.
func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			start := time.Now()
			rid := RequestIDFromContext(req.Context())
			l.Info().
				Str("requestId", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("ip", req.RemoteAddr).
				Str("userAgent", req.UserAgent()).
				Msg("Incoming request")

			rec := &statusRecorder{ResponseWriter: res, status: http.StatusOK}
			next.ServeHTTP(rec, req)

			ev := l.Info()
			if rec.status >= 400 {
				ev = l.Warn()
			}
			ev.Str("requestId", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("statusCode", rec.status).
				Dur("duration", time.Since(start)).
				Msg("Request completed")
		})
	}
}
