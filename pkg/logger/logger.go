// Package logger constructs the application's zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envLocal       = "local"
	envDevelopment = "development"
)

// New returns a zap logger configured for the given environment: human
// readable console output with debug level for local/development, JSON with
// info level otherwise.
func New(env string) *zap.Logger {
	switch env {
	case envLocal, envDevelopment:
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		log, err := cfg.Build()
		if err != nil {
			return zap.NewNop()
		}
		return log
	default:
		cfg := zap.NewProductionConfig()
		log, err := cfg.Build()
		if err != nil {
			return zap.NewNop()
		}
		return log
	}
}
