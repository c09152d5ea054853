// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     cmd
// Description: Root command, persistent flags and shared command state
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/quill/foundation/core/config"
	mdwerror "github.com/msto63/quill/foundation/core/error"
	mdwlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/foundation/lang/parser"
	"github.com/msto63/quill/internal/diag"
	"github.com/msto63/quill/pkg/core/logging"
)

// Exit status for command line usage errors
const exitUsage = 2

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
	noColor   bool

	// Set up by the persistent pre-run
	cfg      *config.Config
	logger   *mdwlog.Logger
	renderer *diag.Renderer
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "quill - compiler front end",
	Long: `quill lexes and parses quill source files into a syntax tree.

Commands:
  lex      - print the token stream of a file
  parse    - print the syntax tree of a file
  check    - parse many files in parallel
  view     - browse tree and tokens interactively
  repl     - parse statements typed at a prompt
  version  - print version information`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command line and returns the process exit status
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var done *reportedError
	if !errors.As(err, &done) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return exitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./quill.toml or the user config directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parser activity at debug level")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console, text, json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
}

// setup loads the configuration, applies flag overrides and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	var (
		loaded *config.Config
		err    error
	)
	if cfgFile != "" {
		loaded, err = config.Load(cfgFile)
	} else {
		loaded, err = config.Discover(config.DefaultDiscoveryOptions())
	}
	if err != nil {
		return err
	}

	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if verbose {
		loaded.Log.Level = "debug"
	}
	if logFormat != "" {
		loaded.Log.Format = logFormat
	}
	if noColor {
		loaded.Output.Color = false
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	lc := logging.FromConfig("quill", loaded)
	lc.Output = cmd.ErrOrStderr()
	installed, err := logging.Install(lc)
	if err != nil {
		return err
	}

	cfg = loaded
	logger = installed.WithField("command", cmd.Name())
	renderer = diag.NewRenderer(loaded.Output.Color)

	logger.Debug("Configuration loaded", mdwlog.Fields{
		"file":   loaded.FilePath(),
		"format": loaded.Output.Format,
	})
	return nil
}

// newParser creates a parser configured from the loaded configuration
func newParser() (*parser.Parser, error) {
	return parser.New(parser.Options{
		Logger:          logger,
		MaxSourceLength: int(cfg.Parser.MaxSourceBytes),
	})
}

// reportedError marks an error whose diagnostic was already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// exitCode maps an error onto the exit status of its foundation code
func exitCode(err error) int {
	if se, ok := parser.AsSyntaxError(err); ok {
		return se.Code().ExitCode()
	}
	if _, ok := mdwerror.As(err); ok {
		return mdwerror.GetCode(err).ExitCode()
	}
	// Plain errors come from cobra's flag and argument validation
	return exitUsage
}

func printError(w io.Writer, err error) {
	if renderer == nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	renderer.Fprint(w, err, "")
}
