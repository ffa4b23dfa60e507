package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Console output always; when logFile is
// non-empty a JSON core appending to that file is teed in so batch runs
// leave an auditable trail.
func New(verbose bool, logFile string) (*zap.Logger, error) {
	var config zap.Config

	if verbose {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if logFile == "" {
		return config.Build()
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
	}

	consoleEncoder := zapcore.NewConsoleEncoder(config.EncoderConfig)
	consoleLevel := zap.NewAtomicLevelAt(config.Level.Level())
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), consoleLevel)

	// The file core gets a plain level encoder so ANSI color codes from
	// the development console encoder never land in the log file.
	fileEncoderConfig := config.EncoderConfig
	fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	fileEncoder := zapcore.NewJSONEncoder(fileEncoderConfig)
	fileLevel := zap.NewAtomicLevelAt(config.Level.Level())
	fileCore := zapcore.NewCore(fileEncoder, zapcore.AddSync(f), fileLevel)

	core := zapcore.NewTee(consoleCore, fileCore)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
