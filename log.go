package thumbstick

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	defaultLogger     *zap.Logger
	defaultLoggerOnce sync.Once
)

// NewLogger builds the console logger controllers use for diagnostics.
// It logs warnings and above to stderr, or everything when debug is true.
func NewLogger(debug bool) *zap.Logger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.TimeKey = ""
	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		Encoding:          "console",
		EncoderConfig:     encoder,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.Named("thumbstick")
}

// sharedLogger returns the process-wide default, built on first use.
func sharedLogger() *zap.Logger {
	defaultLoggerOnce.Do(func() { defaultLogger = NewLogger(false) })
	return defaultLogger
}
