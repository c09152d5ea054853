// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     cmd
// Description: CLI command printing the syntax tree of a file, optionally
//              re-parsing on every change
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	"github.com/msto63/quill/foundation/lang/dump"
	"github.com/msto63/quill/foundation/lang/parser"
	"github.com/msto63/quill/internal/watch"
)

var (
	parseFormat    string
	parseParents   bool
	parsePositions bool
	parseWatch     bool
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Print the syntax tree of a file",
	Long: `Parses a file and prints its syntax tree as indented text, YAML or JSON.

The first syntax error stops parsing; it is printed with the offending
source line and no tree is written. With --watch the file is parsed
again after every change until interrupted. Use - to read standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: text, yaml, json (default from config)")
	parseCmd.Flags().BoolVar(&parseParents, "parents", false, "annotate every node with its file and scope back-reference")
	parseCmd.Flags().BoolVar(&parsePositions, "positions", false, "annotate nodes with line:column")
	parseCmd.Flags().BoolVarP(&parseWatch, "watch", "w", false, "parse again whenever the file changes")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	name := parseFormat
	if name == "" {
		name = cfg.Output.Format
	}
	format, err := dump.ParseFormat(name)
	if err != nil {
		return err
	}

	p, err := newParser()
	if err != nil {
		return err
	}
	loader := newSourceLoader(cfg.Parser.MaxSourceBytes, cmd.InOrStdin())
	opts := dump.Options{Parents: parseParents, Positions: parsePositions}

	if !parseWatch {
		return parseAndPrint(cmd, p, loader, path, format, opts)
	}

	if path == stdinPath {
		return mdwerror.New("cannot watch standard input").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.parse")
	}
	w, err := watch.New(path, watch.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	parseAndPrint(cmd, p, loader, path, format, opts)
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s, press Ctrl+C to stop\n", path)

	return w.Run(ctx, func(string) {
		fmt.Fprintf(out, "--- %s %s\n", path, time.Now().Format("15:04:05"))
		parseAndPrint(cmd, p, loader, path, format, opts)
	})
}

// parseAndPrint parses one file and prints its tree, or its diagnostic
func parseAndPrint(cmd *cobra.Command, p *parser.Parser, loader sourceLoader, path string, format dump.Format, opts dump.Options) error {
	source, err := loader.Load(path)
	if err != nil {
		renderer.Fprint(cmd.ErrOrStderr(), err, "")
		return reported(err)
	}

	tree, err := p.Parse(displayPath(path), source)
	if err != nil {
		renderer.Fprint(cmd.ErrOrStderr(), err, source)
		if se, ok := parser.AsSyntaxError(err); ok {
			return reported(se.AsFoundationError())
		}
		return reported(err)
	}

	return dump.Write(cmd.OutOrStdout(), tree, format, opts)
}
