// File: validation.go
// Title: Configuration Validation
// Description: Validates a typed configuration and reports every violation
//              in a single INVALID_CONFIG error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial rule based validation
// - 2026-10-19 v0.2.0: Validation of the typed quill sections

package config

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	mdwlog "github.com/msto63/quill/foundation/core/log"
)

// OutputFormats lists the accepted tree output formats
var OutputFormats = []string{"text", "yaml", "json"}

// MaxWorkers bounds the check worker pool
const MaxWorkers = 256

// Validate checks all sections and returns an INVALID_CONFIG error listing
// every problem, or nil
func (c *Config) Validate() error {
	var problems []string

	if _, err := mdwlog.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level: %q is not a log level", c.Log.Level))
	}
	if _, err := mdwlog.ParseFormat(c.Log.Format); err != nil {
		problems = append(problems, fmt.Sprintf("log.format: %q is not one of json, text, console", c.Log.Format))
	}

	if c.Parser.MaxSourceBytes <= 0 {
		problems = append(problems, fmt.Sprintf("parser.max_source_bytes: must be positive, got %d", c.Parser.MaxSourceBytes))
	}
	if len(c.Parser.Extensions) == 0 {
		problems = append(problems, "parser.extensions: at least one extension is required")
	}
	for _, ext := range c.Parser.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			problems = append(problems, fmt.Sprintf("parser.extensions: %q must start with '.'", ext))
		}
	}

	if !isOneOf(c.Output.Format, OutputFormats) {
		problems = append(problems, fmt.Sprintf("output.format: %q is not one of %s", c.Output.Format, strings.Join(OutputFormats, ", ")))
	}

	if c.Check.Workers < 1 || c.Check.Workers > MaxWorkers {
		problems = append(problems, fmt.Sprintf("check.workers: must be between 1 and %d, got %d", MaxWorkers, c.Check.Workers))
	}

	if len(problems) == 0 {
		return nil
	}

	return mdwerror.New(strings.Join(problems, "; ")).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("problems", len(problems))
}

func isOneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}
