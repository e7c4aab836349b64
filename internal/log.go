package internal

import (
	"io"

	"github.com/rs/zerolog"
)

// Log is the engine logger. It discards everything until SetLogger installs
// a real one.
var Log = zerolog.New(io.Discard)

func SetLogger(l zerolog.Logger) {
	Log = l
}
