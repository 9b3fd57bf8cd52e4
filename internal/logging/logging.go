// Package logging builds the storefront's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select the log destination and verbosity.
type Options struct {
	// Path is the log file. Empty logs to stderr.
	Path string
	// Level is a zap level name; empty means info.
	Level string
	// Debug forces debug level and a human-readable console encoder.
	Debug bool
}

// New returns a production JSON logger, or a development logger when Debug
// is set.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	}

	level := zapcore.InfoLevel
	if name := strings.TrimSpace(opts.Level); name != "" {
		parsed, err := zapcore.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	if opts.Debug {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if path := strings.TrimSpace(opts.Path); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
