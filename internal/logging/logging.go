package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Service is attached to every log line as the "service" field.
const Service = "cosmonaut-api"

// New returns the process logger: console output at debug level when
// verbose is set, JSON at info level otherwise.
func New(verbose bool) (*zap.SugaredLogger, error) {
	l, err := newConfig(verbose).Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.Sugar(), nil
}

func newConfig(verbose bool) zap.Config {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]any{"service": Service}
	// Every request line is kept.
	cfg.Sampling = nil
	return cfg
}
