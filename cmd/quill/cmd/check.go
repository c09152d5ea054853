// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     cmd
// Description: CLI command parsing many files in parallel
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	mdwlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/foundation/lang/ast"
	"github.com/msto63/quill/foundation/lang/parser"
)

var (
	checkWorkers int
	checkQuiet   bool
)

var checkCmd = &cobra.Command{
	Use:   "check PATH...",
	Short: "Parse files and directories in parallel",
	Long: `Parses every given file. Directories are walked recursively for
files with one of the configured extensions (default .ql and .quill).

Every parsed tree is also checked for structural consistency. Each
file is reported on its own line, failures with their diagnostic,
followed by a summary. The exit status is non-zero when any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "j", 0, "number of files parsed at once (default from config)")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "only report failures and the summary")
}

// checkResult is the outcome for one file
type checkResult struct {
	path   string
	source string
	stats  ast.Stats
	err    error
}

func runCheck(cmd *cobra.Command, args []string) error {
	files, err := collectSources(args, cfg.HasExtension)
	if err != nil {
		return err
	}

	workers := checkWorkers
	if workers <= 0 {
		workers = cfg.Check.Workers
	}

	timer := logger.StartTimer("check").WithField("files", len(files))
	results, err := checkFiles(cmd.Context(), files, workers)
	if err != nil {
		timer.StopWithError(err)
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	var firstCode mdwerror.Code
	for _, r := range results {
		if r.err == nil {
			if !checkQuiet {
				fmt.Fprintf(out, "ok   %s (%d statements)\n", r.path, r.stats.Statements)
			}
			continue
		}

		failed++
		if firstCode == "" {
			firstCode = resultCode(r.err)
		}
		fmt.Fprintf(out, "FAIL %s\n", r.path)
		renderer.Fprint(cmd.ErrOrStderr(), r.err, r.source)
	}
	fmt.Fprintf(out, "checked %d files, %d failed\n", len(results), failed)

	timer.Stop(mdwlog.Fields{"failed": failed})
	if failed > 0 {
		return reported(mdwerror.Newf("%d of %d files failed", failed, len(results)).
			WithCode(firstCode).
			WithOperation("cmd.check"))
	}
	return nil
}

// checkFiles parses files with at most workers parsers at a time. Results
// keep the order of files.
func checkFiles(ctx context.Context, files []string, workers int) ([]checkResult, error) {
	results := make([]checkResult, len(files))
	loader := newSourceLoader(cfg.Parser.MaxSourceBytes, nil)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Parsers are not shared between goroutines
			p, err := newParser()
			if err != nil {
				return err
			}
			results[i] = checkFile(p, loader, path)
			logger.WithFields(mdwlog.Fields{
				"path":   path,
				"failed": results[i].err != nil,
			}).Debug("File checked")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(p *parser.Parser, loader sourceLoader, path string) checkResult {
	r := checkResult{path: path}

	r.source, r.err = loader.Load(path)
	if r.err != nil {
		return r
	}
	tree, err := p.Parse(path, r.source)
	if err != nil {
		r.err = err
		return r
	}
	r.stats, r.err = inspectTree(path, tree)
	return r
}

// inspectTree verifies the structural invariants of a parsed tree and
// counts its nodes
func inspectTree(path string, tree *ast.Tree) (ast.Stats, error) {
	if err := tree.Validate(); err != nil {
		return ast.Stats{}, mdwerror.Wrap(err, "parser produced a malformed tree").
			WithOperation("cmd.check").
			WithPath(path)
	}
	return tree.Stats()
}

func resultCode(err error) mdwerror.Code {
	if se, ok := parser.AsSyntaxError(err); ok {
		return se.Code()
	}
	return mdwerror.GetCode(err)
}

// collectSources expands directories into the files accepted by match.
// Files named explicitly are always included.
func collectSources(args []string, match func(path string) bool) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		var found []string
		err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if path == arg || match(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			code := mdwerror.CodeIOError
			if errors.Is(err, fs.ErrNotExist) {
				code = mdwerror.CodeNotFound
			}
			return nil, mdwerror.Wrap(err, "cannot read path").
				WithCode(code).
				WithOperation("cmd.check").
				WithPath(arg)
		}
		sort.Strings(found)
		for _, path := range found {
			add(path)
		}
	}

	if len(files) == 0 {
		return nil, mdwerror.New("no source files found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("cmd.check").
			WithDetail("paths", args)
	}
	return files, nil
}
