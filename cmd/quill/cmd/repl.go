// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     cmd
// Description: Interactive prompt that parses statements as they are typed
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/msto63/quill/foundation/lang/dump"
	"github.com/msto63/quill/foundation/lang/parser"
	"github.com/msto63/quill/foundation/lang/token"
	"github.com/msto63/quill/internal/diag"
)

const (
	promptMain = "quill> "
	promptCont = "  ...> "

	historyFile = "repl_history"
)

var replParents bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse statements typed at a prompt",
	Long: `Reads quill statements and prints their syntax tree or diagnostic.

Input that ends before a statement is complete continues on the next
line; an empty line gives up and shows the error.

Commands:
  :tree      print syntax trees (default)
  :tokens    print token streams instead
  :parents   toggle back-reference annotations
  :help      show this help
  :quit      leave (also Ctrl+D)`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&replParents, "parents", false, "annotate nodes with back-references")
}

func runRepl(cmd *cobra.Command, args []string) error {
	p, err := newParser()
	if err != nil {
		return err
	}
	session := newReplSession(cmd.OutOrStdout(), cmd.ErrOrStderr(), p, renderer)
	session.parents = replParents

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := replHistoryPath()
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if histPath == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(histPath), 0o755); err != nil {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(cmd.OutOrStdout(), "quill repl - :help for commands, :quit to leave")
	for {
		prompt := promptMain
		if session.pending() {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if session.feed(line) {
			return nil
		}
	}
}

func replHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", historyFile)
}

// replSession holds the state of one interactive session
type replSession struct {
	out      io.Writer
	errOut   io.Writer
	parser   *parser.Parser
	renderer *diag.Renderer

	tokens  bool // Print tokens instead of trees
	parents bool

	buffer strings.Builder // Input of an unfinished statement
	inputs int
}

func newReplSession(out, errOut io.Writer, p *parser.Parser, r *diag.Renderer) *replSession {
	return &replSession{out: out, errOut: errOut, parser: p, renderer: r}
}

func (s *replSession) pending() bool {
	return s.buffer.Len() > 0
}

// feed processes one input line and reports whether the session ends
func (s *replSession) feed(line string) bool {
	trimmed := strings.TrimSpace(line)

	if !s.pending() && strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}
	if trimmed == "" {
		if s.pending() {
			s.evaluate(true)
		}
		return false
	}

	if s.pending() {
		s.buffer.WriteByte('\n')
	}
	s.buffer.WriteString(line)
	s.evaluate(false)
	return false
}

func (s *replSession) command(name string) bool {
	switch strings.ToLower(name) {
	case ":quit", ":q", ":exit":
		return true
	case ":tokens":
		s.tokens = true
		fmt.Fprintln(s.out, "printing tokens")
	case ":tree":
		s.tokens = false
		fmt.Fprintln(s.out, "printing trees")
	case ":parents":
		s.parents = !s.parents
		fmt.Fprintf(s.out, "back-references %s\n", onOff(s.parents))
	case ":help":
		fmt.Fprintln(s.out, "commands: :tree :tokens :parents :help :quit")
	default:
		fmt.Fprintf(s.errOut, "unknown command %s, type :help\n", name)
	}
	return false
}

// evaluate parses the buffered input. Input that fails only because it
// ends early stays buffered unless force is set.
func (s *replSession) evaluate(force bool) {
	source := s.buffer.String()

	if s.tokens {
		s.buffer.Reset()
		s.printTokens(source)
		return
	}

	s.inputs++
	tree, err := s.parser.Parse(fmt.Sprintf("<repl:%d>", s.inputs), source)
	if err != nil {
		if se, ok := parser.AsSyntaxError(err); ok && !se.Lexical && se.Token.Kind == token.EOF && !force {
			s.inputs--
			return
		}
		s.buffer.Reset()
		s.renderer.Fprint(s.errOut, err, source)
		return
	}

	s.buffer.Reset()
	if err := dump.Write(s.out, tree, dump.FormatText, dump.Options{Parents: s.parents}); err != nil {
		s.renderer.Fprint(s.errOut, err, "")
	}
}

func (s *replSession) printTokens(source string) {
	tokens, err := parser.NewLexer(source).Tokenize()
	for _, tok := range tokens {
		fmt.Fprintf(s.out, "%d:%d\t%s\n", tok.Line, tok.Column, tok)
	}
	if err != nil {
		s.renderer.Fprint(s.errOut, err, source)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
