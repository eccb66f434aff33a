package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs the process-wide logger. level is a zerolog level name (e.g. "debug"
// or "warn"); an empty level means info. In development, output is formatted for
// humans rather than as JSON lines.
func New(out io.Writer, appEnv string, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), err
		}
		lvl = parsed
	}

	if appEnv == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
