// Package logging builds the zerolog loggers shared by the line counter.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures the base logger.
type Options struct {
	// Level is a zerolog level name. An unknown name falls back to info.
	Level string
	// Format is FormatConsole or FormatJSON.
	Format string
	// Writer defaults to stderr.
	Writer io.Writer
	// RunID tags every line. A random id is generated when empty.
	RunID string
}

// New returns the base logger for a run.
func New(opts Options) zerolog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if !strings.EqualFold(opts.Format, FormatJSON) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	return zerolog.New(w).Level(level).With().Timestamp().Str("run_id", runID).Logger()
}

func WithComponent(base zerolog.Logger, component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

func WithRegion(base zerolog.Logger, region string) zerolog.Logger {
	return base.With().Str("region", region).Logger()
}
