// Package logger builds the application's zerolog logger.
package logger

import (
	"github.com/aleister1102/jsmonster/internal/config"
	"github.com/rs/zerolog"
)

// New creates a logger from the application log configuration.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}

// NewWithScanID creates a logger whose entries and file output are
// organized by scan.
func NewWithScanID(cfg config.LogConfig, scanID string) (zerolog.Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).WithScanID(scanID).Build()
}
