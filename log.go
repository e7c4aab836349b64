package when

import (
	"github.com/AnatoleLucet/when/internal"
	"github.com/rs/zerolog"
)

// SetLogger routes the engine's internal logging through l. The engine is
// silent by default.
func SetLogger(l zerolog.Logger) {
	internal.SetLogger(l)
}
