// internal/logging/logging.go

// Package logging provides the zerolog setup shared by the strscan commands.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures a command logger.
type Options struct {
	Level     string // trace|debug|info|warn|error (default info)
	Format    string // console|json (default console)
	Component string
	Writer    io.Writer
}

// New builds a leveled, timestamped logger. Console format is meant for
// humans on stderr; json for log collectors.
func New(opt Options) zerolog.Logger {
	w := opt.Writer
	if strings.ToLower(opt.Format) != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	log := zerolog.New(w).Level(ParseLevel(opt.Level)).With().Timestamp().Logger()
	if opt.Component != "" {
		log = log.With().Str("component", opt.Component).Logger()
	}
	return log
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
