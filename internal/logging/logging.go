// Package logging builds the zerolog logger shared by the CLI and the MCP
// server.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. verbose selects debug level,
// otherwise only warnings and errors are shown.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Stderr is New on os.Stderr.
func Stderr(verbose bool) zerolog.Logger {
	return New(os.Stderr, verbose)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
