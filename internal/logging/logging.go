// Package logging builds the zap logger used for debug traces.
// User-facing CLI output goes through internal/ui, not the logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger writing to stderr. With verbose enabled the
// level drops to debug so patch/pipeline traces become visible.
func New(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		// Config above is static; Build only fails on bad paths.
		return zap.NewNop()
	}
	return logger
}

// Nop returns a no-op logger for tests and library callers that do
// not care about traces.
func Nop() *zap.Logger {
	return zap.NewNop()
}
