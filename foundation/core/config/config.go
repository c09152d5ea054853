// File: config.go
// Title: Core Configuration Management Implementation
// Description: Implements the typed quill configuration and its loading
//              from TOML and YAML files. Unknown keys are rejected so typos
//              in a configuration file surface as errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-19 v0.2.0: Typed sections for the quill front end, strict decoding

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/quill/foundation/core/error"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto auto-detects format from file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Config holds the complete quill configuration
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Check  CheckConfig  `toml:"check" yaml:"check"`

	filePath string
	format   Format
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// ParserConfig holds source loading and parsing limits
type ParserConfig struct {
	MaxSourceBytes int64    `toml:"max_source_bytes" yaml:"max_source_bytes"`
	Extensions     []string `toml:"extensions" yaml:"extensions"`
}

// OutputConfig controls how trees and diagnostics are printed
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
}

// CheckConfig controls the parallel check command
type CheckConfig struct {
	Workers int `toml:"workers" yaml:"workers"`
}

// Default values
const (
	DefaultLogLevel       = "error"
	DefaultLogFormat      = "console"
	DefaultOutputFormat   = "text"
	DefaultMaxSourceBytes = 8 << 20
	DefaultWorkers        = 4
)

// DefaultExtensions lists the source file extensions walked by check
var DefaultExtensions = []string{".ql", ".quill"}

// Default returns a configuration with every field set to its default
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Parser: ParserConfig{
			MaxSourceBytes: DefaultMaxSourceBytes,
			Extensions:     append([]string(nil), DefaultExtensions...),
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
			Color:  true,
		},
		Check: CheckConfig{
			Workers: DefaultWorkers,
		},
		format: FormatTOML,
	}
}

// LoadOptions defines options for loading configuration
type LoadOptions struct {
	Format    Format // File format (default: auto-detect)
	EnvPrefix string // Environment variable prefix, empty disables overrides
}

// Load loads configuration from a file, applies QUILL_* environment
// overrides and validates the result
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{
		Format:    FormatAuto,
		EnvPrefix: DefaultEnvPrefix,
	})
}

// LoadWithOptions loads configuration from a file with custom options
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, mdwerror.New("config file path cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.LoadWithOptions")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		code := mdwerror.CodeConfigError
		if errors.Is(err, os.ErrNotExist) {
			code = mdwerror.CodeNotFound
		}
		return nil, mdwerror.Wrap(err, "failed to read config file").
			WithCode(code).
			WithOperation("config.LoadWithOptions").
			WithPath(filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	cfg, err := parseContent(content, format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config file").
			WithOperation("config.LoadWithOptions").
			WithPath(filePath).
			WithDetail("format", format.String())
	}
	cfg.filePath = filePath

	if options.EnvPrefix != "" {
		cfg.ApplyEnv(options.EnvPrefix)
	}

	if err := cfg.Validate(); err != nil {
		return nil, mdwerror.Wrap(err, "invalid configuration").
			WithPath(filePath)
	}

	return cfg, nil
}

// LoadFromString parses configuration content without environment overrides
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}
	cfg, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// parseContent decodes content over the defaults, so omitted keys keep
// their default values
func parseContent(content []byte, format Format) (*Config, error) {
	cfg := Default()
	cfg.format = format

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, mdwerror.Wrap(err, "TOML parse error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.parseContent")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return nil, mdwerror.New(fmt.Sprintf("unknown configuration keys: %s", strings.Join(keys, ", "))).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.parseContent").
				WithDetail("keys", keys)
		}

	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, mdwerror.Wrap(err, "YAML parse error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.parseContent")
		}

	default:
		return nil, mdwerror.New(fmt.Sprintf("unsupported format: %s", format)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.parseContent").
			WithDetail("format", format.String())
	}

	return cfg, nil
}

// FilePath returns the file the configuration was loaded from
func (c *Config) FilePath() string {
	return c.filePath
}

// Format returns the format the configuration was decoded from
func (c *Config) Format() Format {
	return c.format
}

// HasExtension reports whether path carries one of the configured source extensions
func (c *Config) HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Parser.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Encode writes the configuration in the given format
func (c *Config) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return toml.NewEncoder(w).Encode(c)
	}
}
