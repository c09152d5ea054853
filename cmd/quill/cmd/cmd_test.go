package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag of cmd and its subcommands to its default
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// run executes the command line with isolated configuration
func run(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{"QUILL_LOG_LEVEL", "QUILL_LOG_FORMAT", "QUILL_OUTPUT_FORMAT", "QUILL_MAX_SOURCE_BYTES", "QUILL_WORKERS"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))

	code := Execute()
	return stdout.String(), stderr.String(), code
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLex(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.ql", "x :: 1;")

	stdout, stderr, code := run(t, "", "lex", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	want := "1:1\tIDENTIFIER(x)\n1:3\tCOLON(:)\n1:4\tCOLON(:)\n1:6\tINTEGER(1)\n1:7\tSEMICOLON(;)\n1:8\tEOF\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestLex_ErrorToken(t *testing.T) {
	stdout, stderr, code := run(t, "a @ b", "lex", "-")
	if code != 1 {
		t.Errorf("exit = %d, want 1", code)
	}
	if !strings.HasSuffix(stdout, "1:3\tERROR(Unknown character)\n") {
		t.Errorf("stdout should end with the error token: %q", stdout)
	}
	if !strings.HasPrefix(stderr, "<stdin>:1:3: error: Unknown character\n") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestParse_Formats(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.ql", "x :: 1;")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"text", []string{"parse", path}, []string{"  Scope\n    Declaration x const\n      value: Literal 1\n"}},
		{"parents", []string{"parse", "--parents", path}, []string{"Declaration x const ^file=1,scope=1"}},
		{"positions", []string{"parse", "--positions", path}, []string{"Declaration x const @1:1"}},
		{"json", []string{"parse", "-f", "json", path}, []string{`"kind": "Declaration"`, `"constant": true`}},
		{"yaml", []string{"parse", "--format", "yaml", path}, []string{"kind: Declaration", `text: "1"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := run(t, "", tt.args...)
			if code != 0 {
				t.Fatalf("exit %d, stderr: %s", code, stderr)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout, want) {
					t.Errorf("stdout lacks %q:\n%s", want, stdout)
				}
			}
		})
	}
}

func TestParse_FormatFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.ql", "y;")
	config := writeSource(t, dir, "quill.toml", "[output]\nformat = \"json\"\n")

	stdout, stderr, code := run(t, "", "--config", config, "parse", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "{") {
		t.Errorf("output should be JSON:\n%s", stdout)
	}
}

func TestParse_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.ql", "x :: 1 +;")
	badConfig := writeSource(t, dir, "bad.toml", "[output]\nformat = \"xml\"\n")

	tests := []struct {
		name   string
		stdin  string
		args   []string
		code   int
		stderr string
	}{
		{"syntax", "", []string{"parse", bad}, 1, bad + ":1:9: error: unexpected token ';'"},
		{"lexical", "n :: 0b12;", []string{"parse", "-"}, 1, "<stdin>:1:9: error: Digit greater than base"},
		{"missing file", "", []string{"parse", filepath.Join(dir, "nope.ql")}, 2, "cannot open source"},
		{"unknown format", "", []string{"parse", "-f", "xml", bad}, 2, "unknown output format"},
		{"bad config", "", []string{"--config", badConfig, "parse", bad}, 3, "output.format"},
		{"missing argument", "", []string{"parse"}, 2, "accepts 1 arg"},
		{"unknown flag", "", []string{"parse", "--nope", bad}, 2, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := run(t, tt.stdin, tt.args...)
			if code != tt.code {
				t.Errorf("exit = %d, want %d (stderr: %s)", code, tt.code, stderr)
			}
			if !strings.Contains(stderr, tt.stderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.stderr)
			}
			if stdout != "" {
				t.Errorf("no tree may be printed on failure, got %q", stdout)
			}
		})
	}
}

func TestParse_DiagnosticShowsSource(t *testing.T) {
	_, stderr, _ := run(t, "a := 1;\nb := (2;\n", "parse", "-")

	want := "<stdin>:2:8: error: expected ')', found ';'\n  2 | b := (2;\n    | " + strings.Repeat(" ", 7) + "^\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.ql", "x :: 1;")
	writeSource(t, dir, "sub/b.quill", "f :: () { y; }")
	writeSource(t, dir, "c.txt", "not quill")
	writeSource(t, dir, ".git/d.ql", "broken (")

	stdout, stderr, code := run(t, "", "check", "-j", "2", dir)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	want := strings.Join([]string{
		"ok   " + filepath.Join(dir, "a.ql") + " (1 statements)",
		"ok   " + filepath.Join(dir, "sub", "b.quill") + " (2 statements)",
		"checked 2 files, 0 failed",
		"",
	}, "\n")
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestCheck_Failures(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.ql", "x :: 1;")
	bad := writeSource(t, dir, "bad.ql", "x :: ;")

	stdout, stderr, code := run(t, "", "check", "--quiet", good, bad)
	if code != 1 {
		t.Errorf("exit = %d, want 1", code)
	}
	if stdout != "FAIL "+bad+"\nchecked 2 files, 1 failed\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, bad+":1:1: error: declaration of 'x' needs a type or a value") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestCheck_NoSources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "notes.txt", "")

	_, stderr, code := run(t, "", "check", dir)
	if code != 2 {
		t.Errorf("exit = %d, want 2", code)
	}
	if !strings.Contains(stderr, "no source files found") {
		t.Errorf("stderr = %q", stderr)
	}

	_, _, code = run(t, "", "check", filepath.Join(dir, "missing"))
	if code != 2 {
		t.Errorf("exit for a missing path = %d, want 2", code)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, code := run(t, "", "version", "--short")
	if code != 0 || stdout != "quill v0.1.0\n" {
		t.Errorf("version --short = %q (exit %d)", stdout, code)
	}

	stdout, _, _ = run(t, "", "version", "--json")
	if !strings.Contains(stdout, `"version": "0.1.0"`) {
		t.Errorf("version --json = %q", stdout)
	}
}
