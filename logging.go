package appprops

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	logger.Store(&l)
}

// Logger returns the logger used by generated loaders and by envsubst.
// Thread-safe.
func Logger() *zerolog.Logger {
	return logger.Load()
}

// SetLogger replaces the package logger. Use zerolog.Nop() to silence loaders.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}
