package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs the process-wide logger. Development gets a human
// console writer at debug level; everything else logs JSON at info. Every
// line carries the service tag so journal and access logs aggregate
// cleanly alongside other services.
func NewLogger(appEnv string) zerolog.Logger {
	out := io.Writer(os.Stdout)
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "disperser").
		Logger()
}
