// Package logging provides the structured logger used across the sweep
// engine: a zap core teed to the console and a size-rotated log file.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// File rotation defaults.
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
)

// FileConfig holds log file rotation configuration.
type FileConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns the default rotation settings.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   true,
	}
}

// NewLogger creates a logger writing to both the console and a rotated
// file at logPath. Development mode uses a colored console encoder at
// debug level; production mode uses JSON at info level. An empty logPath
// disables the file sink.
//
// Example:
//
//	logger, err := logging.NewLogger(true, "sweep.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
func NewLogger(development bool, logPath string) (*zap.Logger, error) {
	return NewLoggerWithConfig(development, logPath, DefaultFileConfig())
}

// NewLoggerWithConfig is NewLogger with explicit rotation settings.
func NewLoggerWithConfig(development bool, logPath string, fc FileConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if development {
		level = zapcore.DebugLevel
	}

	consoleCfg := zap.NewProductionEncoderConfig()
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if development {
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stdout),
			level,
		),
	}

	if logPath != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileCfg),
			newFileWriter(logPath, fc),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// newFileWriter returns a WriteSyncer backed by lumberjack rotation.
func newFileWriter(path string, fc FileConfig) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    fc.MaxSizeMB,
		MaxBackups: fc.MaxBackups,
		MaxAge:     fc.MaxAgeDays,
		Compress:   fc.Compress,
	})
}
