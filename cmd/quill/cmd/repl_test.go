package cmd

import (
	"bytes"
	"strings"
	"testing"

	mdwlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/foundation/lang/parser"
	"github.com/msto63/quill/internal/diag"
)

func newTestSession(t *testing.T) (*replSession, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	p, err := parser.New(parser.Options{
		Logger: mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelFatal, Output: &bytes.Buffer{}}),
	})
	if err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	return newReplSession(&out, &errOut, p, diag.NewRenderer(false)), &out, &errOut
}

func TestReplSession_Tree(t *testing.T) {
	s, out, errOut := newTestSession(t)

	s.feed("x :: 1 + 2;")
	want := "File <repl:1>\n  Scope\n    Declaration x const\n      value: Binary +\n        left: Literal 1\n        right: Literal 2\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected diagnostics: %s", errOut.String())
	}
}

func TestReplSession_Continuation(t *testing.T) {
	s, out, _ := newTestSession(t)

	s.feed("f :: (a: i32) {")
	if !s.pending() {
		t.Fatal("an open scope should continue on the next line")
	}
	s.feed("  a;")
	if !s.pending() {
		t.Fatal("still inside the scope")
	}
	s.feed("}")
	if s.pending() {
		t.Fatal("the statement is complete")
	}
	if !strings.Contains(out.String(), "File <repl:1>") || !strings.Contains(out.String(), "body: Scope") {
		t.Errorf("output = %q", out.String())
	}
}

func TestReplSession_Errors(t *testing.T) {
	s, out, errOut := newTestSession(t)

	s.feed("x :: ;")
	if s.pending() {
		t.Error("a syntax error before the end must not continue")
	}
	if !strings.HasPrefix(errOut.String(), "<repl:1>:1:1: error: declaration of 'x' needs a type or a value") {
		t.Errorf("diagnostic = %q", errOut.String())
	}

	errOut.Reset()
	s.feed("y :: 1")
	if !s.pending() {
		t.Fatal("missing ';' at the end should continue")
	}
	s.feed("")
	if s.pending() {
		t.Error("an empty line gives up")
	}
	if !strings.Contains(errOut.String(), "expected ';', found end of file") {
		t.Errorf("diagnostic = %q", errOut.String())
	}

	errOut.Reset()
	s.feed("1.2.3;")
	if !strings.Contains(errOut.String(), parser.MsgMultipleDots) {
		t.Errorf("lexical errors are reported at once: %q", errOut.String())
	}
	if out.Len() != 0 {
		t.Errorf("no tree on errors, got %q", out.String())
	}
}

func TestReplSession_Commands(t *testing.T) {
	s, out, errOut := newTestSession(t)

	s.feed(":tokens")
	s.feed("a += 1")
	if !strings.Contains(out.String(), "1:3\tPLUS_EQUALS(+=)\n1:6\tINTEGER(1)\n1:7\tEOF\n") {
		t.Errorf("token output = %q", out.String())
	}
	if s.pending() {
		t.Error("token mode never continues")
	}

	out.Reset()
	s.feed(":tree")
	s.feed(":parents")
	s.feed("z;")
	if !strings.Contains(out.String(), "Name z ^file=1,scope=1") {
		t.Errorf("output = %q", out.String())
	}

	s.feed(":bogus")
	if !strings.Contains(errOut.String(), "unknown command :bogus") {
		t.Errorf("stderr = %q", errOut.String())
	}

	if !s.feed(":quit") {
		t.Error(":quit should end the session")
	}
}
