// Package util holds small process helpers shared by the binaries.
package util

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger returns a JSON logger on stderr, so stdout stays free for report output.
func NewLogger(level string) zerolog.Logger {
	return NewLoggerTo(os.Stderr, level, false)
}

// NewLoggerTo writes to w at level, falling back to info. Pretty switches to the human console format.
func NewLoggerTo(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}
