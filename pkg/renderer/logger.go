package renderer

import (
	"log"

	"github.com/df07/go-minirt/pkg/core"
)

// DefaultLogger implements core.Logger on top of the standard logger
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NewNopLogger returns a logger that discards output, for tests and embedding
func NewNopLogger() core.Logger {
	return nopLogger{}
}
