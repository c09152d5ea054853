// Package config provides configuration loading for quill.
//
// Package: config
// Title: quill Configuration
// Description: Typed configuration loaded from TOML or YAML files, layered
//              over defaults and QUILL_* environment variables, and
//              validated before use.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-19 v0.2.0: Typed sections, strict decoding, env overrides
//
// Example quill.toml:
//
//	[log]
//	level = "debug"
//	format = "console"
//
//	[parser]
//	max_source_bytes = 1048576
//	extensions = [".ql"]
//
//	[output]
//	format = "yaml"
//	color = false
//
//	[check]
//	workers = 8
//
// Environment overrides: QUILL_LOG_LEVEL, QUILL_LOG_FORMAT,
// QUILL_OUTPUT_FORMAT, QUILL_NO_COLOR, QUILL_MAX_SOURCE_BYTES, QUILL_WORKERS.
package config
