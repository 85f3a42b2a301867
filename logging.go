package bpe

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the package-level diagnostics logger. It is disabled
// (io.Discard) by default so importing this package never writes to a
// caller's stderr uninvited; callers opt in with SetLogOutput.
var Logger = zerolog.New(io.Discard).With().Timestamp().Logger()

// SetLogOutput redirects construction-time diagnostics (vocabulary size,
// pool sizing, strategy and cache size) to w. Pass io.Discard to silence
// logging again.
func SetLogOutput(w io.Writer) {
	Logger = zerolog.New(w).With().Timestamp().Logger()
}
