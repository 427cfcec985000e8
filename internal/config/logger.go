package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog logger for cfg. Unknown levels fall back to
// info.
func NewLogger(cfg LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
