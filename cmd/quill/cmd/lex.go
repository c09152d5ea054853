// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     cmd
// Description: CLI command printing the token stream of a file
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/foundation/lang/parser"
)

var lexCmd = &cobra.Command{
	Use:   "lex FILE",
	Short: "Print the token stream of a file",
	Long: `Prints one token per line as LINE:COLUMN KIND(VALUE).

Lexing stops at the first invalid character or literal; the offending
token is printed, followed by a diagnostic, and the exit status is 1.
Use - to read standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := newSourceLoader(cfg.Parser.MaxSourceBytes, cmd.InOrStdin()).Load(path)
	if err != nil {
		return err
	}

	tokens, err := parser.NewLexer(source).Tokenize()
	out := cmd.OutOrStdout()
	for _, tok := range tokens {
		fmt.Fprintf(out, "%d:%d\t%s\n", tok.Line, tok.Column, tok)
	}

	if se, ok := parser.AsSyntaxError(err); ok {
		se.Path = displayPath(path)
		renderer.Fprint(cmd.ErrOrStderr(), se, source)
		return reported(se.AsFoundationError())
	}
	logger.Debug("Lexing completed", mdwlog.Fields{
		"path":   path,
		"tokens": len(tokens),
	})
	return nil
}
