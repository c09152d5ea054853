// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the interactive tree viewer
// Author:      Mike Stoffels
// Created:     2025-12-07
// Modified:    2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/quill/foundation/lang/parser"
	"github.com/msto63/quill/internal/tui/treeview"
)

var viewParents bool

var viewCmd = &cobra.Command{
	Use:     "view FILE",
	Aliases: []string{"tui"},
	Short:   "Browse the tree and tokens of a file",
	Long: `Opens an interactive viewer for the syntax tree of a file.

Keys:
  t / Tab     Switch between tree and tokens
  p           Toggle back-references
  l           Toggle positions
  r           Reload the file
  g / G       Jump to top / bottom
  Up/Down     Scroll (also j/k, PgUp/PgDn)
  q / Ctrl+C  Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().BoolVar(&viewParents, "parents", false, "start with back-references shown")
}

func runView(cmd *cobra.Command, args []string) error {
	loader := newSourceLoader(cfg.Parser.MaxSourceBytes, nil)

	return treeview.Run(treeview.Config{
		Path: args[0],
		Load: loader.Load,
		Parser: parser.Options{
			// Log lines would corrupt the alternate screen
			Logger:          logger.WithOutput(io.Discard),
			MaxSourceLength: int(cfg.Parser.MaxSourceBytes),
		},
		Parents: viewParents,
	})
}
