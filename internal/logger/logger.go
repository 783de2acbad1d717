/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON lines to stderr at the named level.
// Unknown or empty level names select info.
func New(level string) zerolog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewConsole returns a human readable logger for interactive use.
func NewConsole(level string) zerolog.Logger {
	return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr,
		TimeFormat: "15:04:05"}, level)
}

func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(w).
		With().
		Timestamp().
		Logger()

	return logger.Level(ParseLevel(level))
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
