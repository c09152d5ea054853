package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Tool", Tool},
		{"Language", Language},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.version == "" {
				t.Errorf("%s version is empty", tt.name)
			}
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != Tool {
		t.Errorf("Version = %v, want %v", info.Version, Tool)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %v, want %v", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %v", info.Platform)
	}
	if info.GitCommit == "" {
		t.Error("GitCommit should never be empty")
	}
}

func TestGet_InjectedCommit(t *testing.T) {
	saved := GitCommit
	defer func() { GitCommit = saved }()

	GitCommit = "abc1234"
	if got := Get().GitCommit; got != "abc1234" {
		t.Errorf("GitCommit = %v, want abc1234", got)
	}
}

func TestInfo_String(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		Language:  "0.1.0",
		GitCommit: "abc",
		BuildDate: "2026-10-19",
		GoVersion: "go1.24.0",
		Platform:  "linux/amd64",
	}

	got := info.String()
	for _, want := range []string{"quill v1.2.3 (language 0.1.0)", "Git Commit: abc", "OS/Arch:    linux/amd64"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() lacks %q:\n%s", want, got)
		}
	}
	if info.Short() != "quill v1.2.3" {
		t.Errorf("Short() = %v", info.Short())
	}
}
