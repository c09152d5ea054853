// File: render.go
// Title: Quill Tree Dump Renderers
// Description: Text, YAML and JSON renderers for dumped nodes. The YAML
//              output is assembled as a yaml.v3 node graph to keep the key
//              order stable and literals quoted as strings.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial renderers

package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/quill/foundation/core/error"
)

const indentUnit = "  "

// Line renders a single node without its children
func (n *Node) Line() string {
	var sb strings.Builder
	if n.Role != "" {
		sb.WriteString(n.Role)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind)
	if n.Text != "" {
		sb.WriteString(" ")
		sb.WriteString(n.Text)
	}
	if n.Constant {
		sb.WriteString(" const")
	}
	if n.At != "" {
		sb.WriteString(" @")
		sb.WriteString(n.At)
	}
	if n.Parent != nil {
		fmt.Fprintf(&sb, " ^file=%d,scope=%d", n.Parent.File, n.Parent.Scope)
	}
	return sb.String()
}

// Lines renders the node and its descendants, one line each
func (n *Node) Lines() []string {
	var lines []string
	var walk func(*Node, int)
	walk = func(node *Node, depth int) {
		lines = append(lines, strings.Repeat(indentUnit, depth)+node.Line())
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	walk(n, 0)
	return lines
}

func writeText(w io.Writer, files []*Node) error {
	for _, file := range files {
		for _, line := range file.Lines() {
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return mdwerror.Wrap(err, "failed to write dump").
					WithCode(mdwerror.CodeIOError).
					WithOperation("dump.Write")
			}
		}
	}
	return nil
}

func writeJSON(w io.Writer, files []*Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indentUnit)

	var err error
	if len(files) == 1 {
		err = enc.Encode(files[0])
	} else {
		err = enc.Encode(files)
	}
	if err != nil {
		return mdwerror.Wrap(err, "failed to encode JSON dump").
			WithCode(mdwerror.CodeIOError).
			WithOperation("dump.Write")
	}
	return nil
}

func writeYAML(w io.Writer, files []*Node) error {
	var doc *yaml.Node
	if len(files) == 1 {
		doc = yamlNode(files[0])
	} else {
		doc = &yaml.Node{Kind: yaml.SequenceNode}
		for _, file := range files {
			doc.Content = append(doc.Content, yamlNode(file))
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return mdwerror.Wrap(err, "failed to encode YAML dump").
			WithCode(mdwerror.CodeIOError).
			WithOperation("dump.Write")
	}
	return enc.Close()
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlNode(n *Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content, scalar("!!str", key), value)
	}

	add("kind", scalar("!!str", n.Kind))
	if n.Role != "" {
		add("role", scalar("!!str", n.Role))
	}
	if n.Text != "" {
		add("text", scalar("!!str", n.Text))
	}
	if n.Constant {
		add("constant", scalar("!!bool", "true"))
	}
	if n.At != "" {
		add("at", scalar("!!str", n.At))
	}
	if n.Parent != nil {
		parent := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
		parent.Content = append(parent.Content,
			scalar("!!str", "file"), scalar("!!int", strconv.FormatUint(uint64(n.Parent.File), 10)),
			scalar("!!str", "scope"), scalar("!!int", strconv.FormatUint(uint64(n.Parent.Scope), 10)),
		)
		add("parent", parent)
	}
	if len(n.Children) > 0 {
		children := &yaml.Node{Kind: yaml.SequenceNode}
		for _, child := range n.Children {
			children.Content = append(children.Content, yamlNode(child))
		}
		add("children", children)
	}
	return m
}
