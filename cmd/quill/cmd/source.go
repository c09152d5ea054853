// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     cmd
// Description: Source loading with size and encoding checks
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"errors"
	"io"
	"os"
	"unicode/utf8"

	mdwerror "github.com/msto63/quill/foundation/core/error"
)

// stdinPath is the argument that selects standard input
const stdinPath = "-"

// sourceLoader reads quill sources subject to a size limit
type sourceLoader struct {
	limit int64
	stdin io.Reader
}

func newSourceLoader(limit int64, stdin io.Reader) sourceLoader {
	return sourceLoader{limit: limit, stdin: stdin}
}

// displayPath is the name diagnostics use for path
func displayPath(path string) string {
	if path == stdinPath {
		return "<stdin>"
	}
	return path
}

// Load reads the file at path, or standard input for "-"
func (l sourceLoader) Load(path string) (string, error) {
	if path == stdinPath {
		return l.read(l.stdin, displayPath(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		code := mdwerror.CodeIOError
		if errors.Is(err, os.ErrNotExist) {
			code = mdwerror.CodeNotFound
		}
		return "", mdwerror.Wrap(err, "cannot open source").
			WithCode(code).
			WithOperation("source.Load").
			WithPath(path)
	}
	if info.IsDir() {
		return "", mdwerror.New("source is a directory").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("source.Load").
			WithPath(path)
	}
	if info.Size() > l.limit {
		return "", l.tooLarge(path, info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return "", mdwerror.Wrap(err, "cannot open source").
			WithCode(mdwerror.CodeIOError).
			WithOperation("source.Load").
			WithPath(path)
	}
	defer f.Close()
	return l.read(f, path)
}

func (l sourceLoader) read(r io.Reader, path string) (string, error) {
	// One extra byte tells a file at the limit from a larger one
	data, err := io.ReadAll(io.LimitReader(r, l.limit+1))
	if err != nil {
		return "", mdwerror.Wrap(err, "failed to read source").
			WithCode(mdwerror.CodeIOError).
			WithOperation("source.Load").
			WithPath(path)
	}
	if int64(len(data)) > l.limit {
		return "", l.tooLarge(path, 0)
	}

	if !utf8.Valid(data) {
		return "", mdwerror.New("source is not valid UTF-8").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("source.Load").
			WithPath(path).
			WithDetail("offset", invalidUTF8Offset(data))
	}
	return string(data), nil
}

// tooLarge reports a source over the limit; size is 0 when unknown
func (l sourceLoader) tooLarge(path string, size int64) error {
	err := mdwerror.Newf("source exceeds the size limit of %d bytes", l.limit).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("source.Load").
		WithPath(path).
		WithDetail("limit", l.limit)
	if size > 0 {
		err = err.WithDetail("size", size)
	}
	return err
}

// invalidUTF8Offset returns the byte offset of the first invalid sequence
func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
