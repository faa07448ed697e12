// Package logging configures the diagnostic logger.
//
// Diagnostics are separate from command output: they go to stderr through a
// console writer, so stdout stays clean for pipelines and --json consumers.
// The default level is warn; --verbose lifts it to debug, which is where
// per-store probe failures and skipped files are reported.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the diagnostic logger for a command invocation.
func New(verbose, noColor bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, verbose, noColor)
}

// NewWithWriter builds a logger over a custom writer. Tests capture output
// through it.
func NewWithWriter(w io.Writer, verbose, noColor bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger for components that require one but whose
// caller has nothing to report.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
