package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.SugaredLogger

// Init builds the global logger. Production gets JSON output, anything
// else the development config.
func Init(appEnv string) error {
	var cfg zap.Config
	if appEnv == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	global = logger.Sugar()
	return nil
}

// L returns the global logger, falling back to a production logger if
// Init was never called.
func L() *zap.SugaredLogger {
	if global == nil {
		logger, _ := zap.NewProduction()
		global = logger.Sugar()
	}
	return global
}

// Sync flushes buffered log entries.
func Sync() error {
	if global != nil {
		return global.Sync()
	}
	return nil
}
