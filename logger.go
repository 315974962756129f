package networth

import "github.com/rs/zerolog"

var logger = zerolog.Nop()

// SetLogger sets the logger used to report conversion fallbacks.
func SetLogger(l zerolog.Logger) { logger = l }
