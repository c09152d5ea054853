// File: dump_test.go
// Title: Quill Tree Dump Tests
// Description: Tests for the text, YAML and JSON dumps of parsed trees.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tests

package dump

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	mdwlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/foundation/lang/ast"
	"github.com/msto63/quill/foundation/lang/parser"
)

func parse(t *testing.T, source string) *ast.Tree {
	t.Helper()
	p, err := parser.New(parser.Options{
		Logger: mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelFatal, Output: &bytes.Buffer{}}),
	})
	if err != nil {
		t.Fatal(err)
	}
	tree, err := p.Parse("main.ql", source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tree
}

func TestText(t *testing.T) {
	tree := parse(t, "x :: 1 + 2;\nf :: (a: i32) -> i32 { a *= -a; }\n{ y; }")

	got, err := Text(tree, Options{})
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	want := strings.Join([]string{
		"File main.ql",
		"  Scope",
		"    Declaration x const",
		"      value: Binary +",
		"        left: Literal 1",
		"        right: Literal 2",
		"    Declaration f const",
		"      value: Procedure",
		"        argument: Declaration a",
		"          type: Type i32",
		"        return: Type i32",
		"        body: Scope",
		"          Assignment *=",
		"            left: Name a",
		"            right: Unary -",
		"              operand: Name a",
		"    Scope",
		"      Name y",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("text dump mismatch (-want +got):\n%s", diff)
	}
}

func TestText_Annotations(t *testing.T) {
	tree := parse(t, "{\n  z: i32;\n}")

	got, err := Text(tree, Options{Parents: true, Positions: true})
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"File main.ql",
		"  Scope ^file=1,scope=0",
		"    Scope @1:1 ^file=1,scope=1",
		"      Declaration z @2:3 ^file=1,scope=2",
		"        type: Type i32 @2:6 ^file=1,scope=2",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("annotated dump mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML(t *testing.T) {
	tree := parse(t, "n :: 10;")

	var buf bytes.Buffer
	if err := Write(&buf, tree, FormatYAML, Options{Parents: true}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), `text: "10"`) {
		t.Errorf("literal text should be a quoted string:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "parent: {file: 1, scope: 1}") {
		t.Errorf("parent should be a flow mapping:\n%s", buf.String())
	}

	var back Node
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	files, err := Build(tree, Options{Parents: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(files[0], &back); diff != "" {
		t.Errorf("YAML dump mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON(t *testing.T) {
	tree := parse(t, "x += 0.5;")

	var buf bytes.Buffer
	if err := Write(&buf, tree, FormatJSON, Options{Positions: true}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var back Node
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	assign := back.Children[0].Children[0]
	if assign.Kind != "Assignment" || assign.Text != "+=" || assign.At != "1:3" {
		t.Errorf("assignment = %+v", assign)
	}
	if right := assign.Children[1]; right.Role != "right" || right.Text != "0.5" {
		t.Errorf("right = %+v", right)
	}
	if back.Children[0].Parent != nil {
		t.Error("parents must be omitted unless requested")
	}
}

func TestWrite_MultipleFiles(t *testing.T) {
	tree := ast.NewTree()
	for _, path := range []string{"a.ql", "b.ql"} {
		file := tree.AddFile(ast.File{Path: path})
		tree.SetFileScope(file, tree.ReserveScope(ast.Parent{File: file}))
	}

	var buf bytes.Buffer
	if err := Write(&buf, tree, FormatJSON, Options{}); err != nil {
		t.Fatal(err)
	}
	var files []Node
	if err := json.Unmarshal(buf.Bytes(), &files); err != nil {
		t.Fatalf("multi-file JSON should be an array: %v", err)
	}
	if len(files) != 2 || files[1].Text != "b.ql" {
		t.Errorf("files = %+v", files)
	}
}

func TestBuild_InvalidTree(t *testing.T) {
	tree := ast.NewTree()
	tree.AddFile(ast.File{Path: "broken.ql"})

	_, err := Build(tree, Options{})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidTree) {
		t.Errorf("Build() error = %v, want INVALID_TREE", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}
