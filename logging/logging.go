package logging

import (
	"fmt"
	"io"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production JSON logger at the given level.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

// StdLogger adapts a zap logger for code that wants a *log.Logger,
// such as the gorilla recovery handler.
func StdLogger(logger *zap.Logger) *log.Logger {
	return zap.NewStdLog(logger)
}

// Writer returns an io.Writer that emits every write as one info entry.
func Writer(logger *zap.Logger) io.Writer {
	return zap.NewStdLog(logger).Writer()
}
