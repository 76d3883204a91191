package logging

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
)

// PatchLogger replaces the global logger with one that writes JSON to writer.
// The original logger is restored when the test ends.
func PatchLogger(t testing.TB, writer io.Writer) {
	orig := L
	L = zerolog.New(writer).With().Timestamp().Logger()
	t.Cleanup(func() {
		L = orig
	})
}
