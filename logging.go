package green

import (
	"github.com/ehrlich-b/go-green/internal/logging"
	"github.com/ehrlich-b/go-green/internal/runtime"
)

// Logger is the scheduler's leveled logger. Build one with NewLogger or
// use DefaultLogger.
type Logger = logging.Logger

// LogConfig configures NewLogger.
type LogConfig = logging.Config

// LogLevel selects which severities a Logger emits.
type LogLevel = logging.LogLevel

// Log levels, from most to least verbose.
const (
	LevelDebug = logging.LevelDebug
	LevelInfo  = logging.LevelInfo
	LevelWarn  = logging.LevelWarn
	LevelError = logging.LevelError
)

// NewLogger builds a Logger from config. A nil config uses sensible
// defaults (info level, stderr).
func NewLogger(config *LogConfig) *Logger {
	return logging.NewLogger(config)
}

// DefaultLogConfig returns the default logging configuration.
func DefaultLogConfig() *LogConfig {
	return logging.DefaultConfig()
}

// DefaultLogger returns the package-wide default logger.
func DefaultLogger() *Logger {
	return logging.Default()
}

// SetDefaultLogger replaces the package-wide default logger.
func SetDefaultLogger(l *Logger) {
	logging.SetDefault(l)
}

func toConfig(opts Options) runtime.Config {
	cfg := runtime.Config{Observer: opts.Observer}
	// opts.Logger is the concrete *Logger; only lift it into the
	// interfaces.Logger-typed field when it's actually set; assigning a
	// nil *Logger there directly would produce a non-nil interface
	// wrapping a nil pointer, defeating internal/runtime's own nil check.
	if opts.Logger != nil {
		cfg.Logger = opts.Logger
	}
	return cfg
}
