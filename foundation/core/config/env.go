// File: env.go
// Title: Environment Overrides
// Description: Applies QUILL_* environment variables on top of a loaded
//              configuration.
// Author: msto63
// Version: v0.2.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Environment overrides via xyproto/env
// - 2026-10-19 v0.2.1: Refresh the environment cache on every call

package config

import (
	"github.com/xyproto/env/v2"
)

// DefaultEnvPrefix is the prefix of all quill environment variables
const DefaultEnvPrefix = "QUILL"

// Environment variable suffixes, joined to the prefix with '_'
const (
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
	EnvOutputFormat   = "OUTPUT_FORMAT"
	EnvNoColor        = "NO_COLOR"
	EnvMaxSourceBytes = "MAX_SOURCE_BYTES"
	EnvWorkers        = "WORKERS"
)

// ApplyEnv overrides fields from environment variables named prefix_SUFFIX.
// Unset variables leave the field untouched. The environment is re-read on
// every call, so variables set after startup are seen.
func (c *Config) ApplyEnv(prefix string) {
	env.Load()

	name := func(suffix string) string {
		return prefix + "_" + suffix
	}

	c.Log.Level = env.Str(name(EnvLogLevel), c.Log.Level)
	c.Log.Format = env.Str(name(EnvLogFormat), c.Log.Format)
	c.Output.Format = env.Str(name(EnvOutputFormat), c.Output.Format)

	if env.Has(name(EnvNoColor)) {
		c.Output.Color = !env.Bool(name(EnvNoColor))
	}
	// NO_COLOR convention: any non-empty value disables colour
	if env.Str("NO_COLOR") != "" {
		c.Output.Color = false
	}

	c.Parser.MaxSourceBytes = int64(env.Int(name(EnvMaxSourceBytes), int(c.Parser.MaxSourceBytes)))
	c.Check.Workers = env.Int(name(EnvWorkers), c.Check.Workers)
}
