// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from the
//              quill configuration and command line flags
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	mdwlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/foundation/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name, shown by the text formatters
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: json, text or console
	Format string

	// Disable colours of the console format
	NoColor bool

	// Output writer (default: stderr, stdout is reserved for command output)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  config.DefaultLogLevel,
		Format: config.DefaultLogFormat,
	}
}

// FromConfig derives a logger configuration from the [log] and [output]
// sections
func FromConfig(name string, cfg *config.Config) LoggerConfig {
	lc := DefaultLoggerConfig(name)
	if cfg == nil {
		return lc
	}
	if cfg.Log.Level != "" {
		lc.Level = cfg.Log.Level
	}
	if cfg.Log.Format != "" {
		lc.Format = cfg.Log.Format
	}
	lc.NoColor = !cfg.Output.Color
	return lc
}

// NewLogger creates a new foundation logger
func NewLogger(cfg LoggerConfig) (*mdwlog.Logger, error) {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid log level").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("logging.NewLogger").
			WithDetail("level", cfg.Level)
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid log format").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("logging.NewLogger").
			WithDetail("format", cfg.Format)
	}

	// Build output writer
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:   level,
		Format:  format,
		Output:  output,
		Name:    cfg.Name,
		NoColor: cfg.NoColor,
	}), nil
}

// Install creates a logger and makes it the package default of the
// foundation log package
func Install(cfg LoggerConfig) (*mdwlog.Logger, error) {
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	mdwlog.SetDefault(logger)
	return logger, nil
}
