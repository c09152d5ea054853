// File: dump.go
// Title: Quill Tree Dump
// Description: Converts an arena syntax tree into a nested, render-ready
//              node structure and writes it as indented text, YAML or JSON.
//              Back-references can be included for debugging.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial text, YAML and JSON dumps

package dump

import (
	"fmt"
	"io"
	"strings"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	"github.com/msto63/quill/foundation/lang/ast"
)

// Format selects the output representation
type Format int

const (
	FormatText Format = iota
	FormatYAML
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, mdwerror.Newf("unknown output format %q (want text, yaml or json)", s).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("dump.ParseFormat")
}

// Options controls what a dump contains
type Options struct {
	Parents   bool // Annotate every node with its back-reference
	Positions bool // Annotate nodes with line:column
}

// Backref is the rendered form of ast.Parent
type Backref struct {
	File  uint32 `json:"file" yaml:"file"`
	Scope uint32 `json:"scope" yaml:"scope"`
}

// Node is one rendered tree node
type Node struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Role     string   `json:"role,omitempty" yaml:"role,omitempty"` // Position in the parent node
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
	Constant bool     `json:"constant,omitempty" yaml:"constant,omitempty"`
	At       string   `json:"at,omitempty" yaml:"at,omitempty"`
	Parent   *Backref `json:"parent,omitempty" yaml:"parent,omitempty"`
	Children []*Node  `json:"children,omitempty" yaml:"children,omitempty"`
}

// Build converts every file of the tree into a node
func Build(tree *ast.Tree, opts Options) ([]*Node, error) {
	b := builder{tree: tree, opts: opts}
	var files []*Node
	for _, id := range tree.Files() {
		node, err := b.file(id)
		if err != nil {
			return nil, err
		}
		files = append(files, node)
	}
	return files, nil
}

// Write renders the tree in the requested format
func Write(w io.Writer, tree *ast.Tree, format Format, opts Options) error {
	files, err := Build(tree, opts)
	if err != nil {
		return err
	}

	switch format {
	case FormatText:
		return writeText(w, files)
	case FormatYAML:
		return writeYAML(w, files)
	case FormatJSON:
		return writeJSON(w, files)
	}
	return mdwerror.Newf("unsupported format %d", format).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("dump.Write")
}

// Text renders the tree as indented text
func Text(tree *ast.Tree, opts Options) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, tree, FormatText, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type builder struct {
	tree *ast.Tree
	opts Options
}

func missing(kind string, id uint32) error {
	return mdwerror.Newf("%s %d does not exist", kind, id).
		WithCode(mdwerror.CodeInvalidTree).
		WithOperation("dump.Build")
}

func (b *builder) node(kind, role, text string, parent ast.Parent, line, column int) *Node {
	n := &Node{Kind: kind, Role: role, Text: text}
	if b.opts.Parents {
		n.Parent = &Backref{File: uint32(parent.File), Scope: uint32(parent.Scope)}
	}
	if b.opts.Positions && line > 0 {
		n.At = fmt.Sprintf("%d:%d", line, column)
	}
	return n
}

func (b *builder) file(id ast.FileID) (*Node, error) {
	f := b.tree.File(id)
	n := &Node{Kind: "File", Text: f.Path}
	scope, err := b.scope(f.Scope, "")
	if err != nil {
		return nil, err
	}
	n.Children = []*Node{scope}
	return n, nil
}

func (b *builder) scope(id ast.ScopeID, role string) (*Node, error) {
	s := b.tree.Scope(id)
	if s == nil {
		return nil, missing("scope", uint32(id))
	}
	n := b.node("Scope", role, "", s.Parent, s.Open.Line, s.Open.Column)

	for _, stmt := range s.Statements {
		var child *Node
		var err error
		switch stmt.Kind {
		case ast.StmtExpression:
			child, err = b.expr(stmt.Expr, "")
		case ast.StmtScope:
			child, err = b.scope(stmt.Scope, "")
		case ast.StmtDeclaration:
			child, err = b.declaration(stmt.Decl, "")
		case ast.StmtAssignment:
			child, err = b.assignment(stmt.Assign)
		default:
			err = mdwerror.Newf("statement of kind %d", stmt.Kind).
				WithCode(mdwerror.CodeInvalidTree).
				WithOperation("dump.Build")
		}
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func (b *builder) declaration(id ast.DeclID, role string) (*Node, error) {
	d := b.tree.Declaration(id)
	if d == nil {
		return nil, missing("declaration", uint32(id))
	}
	n := b.node("Declaration", role, d.Name.Text, d.Parent, d.Name.Line, d.Name.Column)
	n.Constant = d.Constant

	if d.Type != ast.NoType {
		typ, err := b.typeRef(d.Type, "type")
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, typ)
	}
	if d.Value != ast.NoExpr {
		value, err := b.expr(d.Value, "value")
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, value)
	}
	return n, nil
}

func (b *builder) assignment(id ast.AssignID) (*Node, error) {
	a := b.tree.Assignment(id)
	if a == nil {
		return nil, missing("assignment", uint32(id))
	}
	n := b.node("Assignment", "", a.Operator.Kind.Symbol(), a.Parent, a.Operator.Line, a.Operator.Column)

	left, err := b.expr(a.Left, "left")
	if err != nil {
		return nil, err
	}
	right, err := b.expr(a.Right, "right")
	if err != nil {
		return nil, err
	}
	n.Children = []*Node{left, right}
	return n, nil
}

func (b *builder) expr(id ast.ExprID, role string) (*Node, error) {
	e := b.tree.Expr(id)
	if e == nil {
		return nil, missing("expression", uint32(id))
	}
	n := b.node(e.Kind.String(), role, e.Token.Value(), e.Parent, e.Token.Line, e.Token.Column)

	switch e.Kind {
	case ast.ExprUnary:
		operand, err := b.expr(e.Operand, "operand")
		if err != nil {
			return nil, err
		}
		n.Children = []*Node{operand}

	case ast.ExprBinary:
		left, err := b.expr(e.Left, "left")
		if err != nil {
			return nil, err
		}
		right, err := b.expr(e.Right, "right")
		if err != nil {
			return nil, err
		}
		n.Children = []*Node{left, right}

	case ast.ExprProcedure:
		n.Text = ""
		if err := b.procedure(e.Procedure, n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// procedure adds arguments, return type and body to the procedure node n
func (b *builder) procedure(id ast.ProcID, n *Node) error {
	p := b.tree.Procedure(id)
	if p == nil {
		return missing("procedure", uint32(id))
	}

	for _, arg := range p.Arguments {
		child, err := b.declaration(arg, "argument")
		if err != nil {
			return err
		}
		n.Children = append(n.Children, child)
	}
	if p.ReturnType != ast.NoType {
		ret, err := b.typeRef(p.ReturnType, "return")
		if err != nil {
			return err
		}
		n.Children = append(n.Children, ret)
	}
	body, err := b.scope(p.Body, "body")
	if err != nil {
		return err
	}
	n.Children = append(n.Children, body)
	return nil
}

func (b *builder) typeRef(id ast.TypeID, role string) (*Node, error) {
	ref := b.tree.Type(id)
	if ref == nil {
		return nil, missing("type", uint32(id))
	}
	return b.node("Type", role, ref.Name.Text, ref.Parent, ref.Name.Line, ref.Name.Column), nil
}
