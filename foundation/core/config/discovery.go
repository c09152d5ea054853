// File: discovery.go
// Title: Configuration File Discovery
// Description: Locates a quill configuration file in the usual places and
//              falls back to defaults when none exists.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of config discovery
// - 2026-10-19 v0.2.0: quill search paths, optional discovery

package config

import (
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"

	mdwerror "github.com/msto63/quill/foundation/core/error"
)

// DiscoveryOptions defines options for automatic configuration file discovery
type DiscoveryOptions struct {
	Paths      []string // Directories to search
	Filenames  []string // Base filenames without extension
	Extensions []string // File extensions to try
	EnvPrefix  string   // Environment variable prefix for overrides
}

// DefaultDiscoveryOptions searches the working directory and the user
// configuration directory for quill.toml, quill.yaml and friends
func DefaultDiscoveryOptions() DiscoveryOptions {
	paths := []string{"."}
	if dir := userConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "quill"))
	}

	return DiscoveryOptions{
		Paths:      paths,
		Filenames:  []string{"quill", ".quill", "config"},
		Extensions: []string{".toml", ".yaml", ".yml"},
		EnvPrefix:  DefaultEnvPrefix,
	}
}

func userConfigDir() string {
	if dir := env.Str("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return ""
}

// FindConfigFile returns the first existing candidate file
func FindConfigFile(options DiscoveryOptions) (string, bool) {
	for _, candidate := range ListPossibleConfigFiles(options) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// ListPossibleConfigFiles returns every candidate path in search order
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	var paths []string
	for _, dir := range options.Paths {
		for _, name := range options.Filenames {
			for _, ext := range options.Extensions {
				paths = append(paths, filepath.Join(dir, name+ext))
			}
		}
	}
	return paths
}

// Discover loads the first configuration file found. Without a file the
// defaults are used, still subject to environment overrides.
func Discover(options DiscoveryOptions) (*Config, error) {
	if path, ok := FindConfigFile(options); ok {
		cfg, err := LoadWithOptions(path, LoadOptions{
			Format:    FormatAuto,
			EnvPrefix: options.EnvPrefix,
		})
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := Default()
	if options.EnvPrefix != "" {
		cfg.ApplyEnv(options.EnvPrefix)
	}
	if err := cfg.Validate(); err != nil {
		return nil, mdwerror.Wrap(err, "invalid configuration from environment").
			WithOperation("config.Discover")
	}
	return cfg, nil
}
