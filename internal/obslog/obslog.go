// Package obslog constructs the structured logger shared by the CLI,
// the level driver and the distributed coordinator.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.SugaredLogger writing to stderr. verbose selects
// Debug level, which adds the engines' per-level lines (timing,
// candidate and frequent counts); otherwise Info level, which shows
// only the CLI's dataset-loaded and run-complete lines.
func New(verbose bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		// Logger construction failure should never happen with the
		// fixed config above; fall back to a no-op logger rather than
		// bring down the process over logging.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
