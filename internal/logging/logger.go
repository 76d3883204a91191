// Package logging provides the shared logger used by all internal packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// L is the global logger. It defaults to a console logger at info level.
var L = newLogger(os.Stderr)

func newLogger(writer io.Writer) zerolog.Logger {
	if isTerminal() {
		writer = zerolog.ConsoleWriter{
			Out:         writer,
			TimeFormat:  time.RFC3339,
			FormatLevel: consoleFormatLevel,
		}
	}

	return zerolog.New(writer).With().Timestamp().Logger()
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// UseServerLogger replaces L with a logger appropriate for long running
// processes: JSON output when not attached to a terminal.
func UseServerLogger() {
	L = newLogger(os.Stderr)
}

// SetLevel sets the level of the global logger. The level applies to all
// loggers derived from L after this call.
func SetLevel(levelName string) error {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", levelName, err)
	}
	L = L.Level(level)
	return nil
}

func Debugf(format string, args ...interface{}) {
	L.Debug().CallerSkipFrame(1).Msgf(format, args...)
}

func Infof(format string, args ...interface{}) {
	L.Info().CallerSkipFrame(1).Msgf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	L.Warn().CallerSkipFrame(1).Msgf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	L.Error().CallerSkipFrame(1).Msgf(format, args...)
}
