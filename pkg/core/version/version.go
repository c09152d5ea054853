// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     version
// Description: Central version and build information
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Version constants
const (
	// Tool version
	Tool = "0.1.0"

	// Language revision accepted by the front end
	Language = "0.1.0"
)

// Build metadata, set with -ldflags "-X github.com/msto63/quill/pkg/core/version.GitCommit=..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Language  string `json:"language" yaml:"language"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information. A development build falls back to
// the VCS revision recorded by the Go toolchain.
func Get() Info {
	commit := GitCommit
	if commit == "development" {
		if rev, ok := vcsRevision(); ok {
			commit = rev
		}
	}

	return Info{
		Version:   Tool,
		Language:  Language,
		GitCommit: commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the information as the version command prints it
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "quill v%s (language %s)\n", i.Version, i.Language)
	fmt.Fprintf(&b, "  Git Commit: %s\n", i.GitCommit)
	fmt.Fprintf(&b, "  Build Date: %s\n", i.BuildDate)
	fmt.Fprintf(&b, "  Go Version: %s\n", i.GoVersion)
	fmt.Fprintf(&b, "  OS/Arch:    %s\n", i.Platform)
	return b.String()
}

// Short returns "quill vX.Y.Z"
func (i Info) Short() string {
	return "quill v" + i.Version
}

func vcsRevision() (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			rev := setting.Value
			if len(rev) > 12 {
				rev = rev[:12]
			}
			return rev, true
		}
	}
	return "", false
}
