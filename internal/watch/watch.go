// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     watch
// Description: Re-runs a callback whenever a single source file changes
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package watch notifies about changes of one file. The containing
// directory is watched so editors that save by renaming a temporary file
// over the original are seen as well.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	mdwlog "github.com/msto63/quill/foundation/core/log"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs
const DefaultDebounce = 150 * time.Millisecond

// Options configures a Watcher
type Options struct {
	Logger   *mdwlog.Logger
	Debounce time.Duration
}

// Watcher watches one file
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *mdwlog.Logger
	fsw      *fsnotify.Watcher
}

// New starts watching path. Events that happen before Run is called are
// buffered and delivered by Run.
func New(path string, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to resolve path").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("watch.New").
			WithPath(path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create watcher").
			WithCode(mdwerror.CodeIOError).
			WithOperation("watch.New")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, mdwerror.Wrap(err, "failed to watch directory").
			WithCode(mdwerror.CodeIOError).
			WithOperation("watch.New").
			WithPath(filepath.Dir(abs))
	}

	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		logger:   logger.WithField("component", "watch").WithField("path", path),
		fsw:      fsw,
	}, nil
}

// Path returns the absolute path of the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Run calls onChange after each burst of writes to the file and blocks
// until ctx is cancelled or the watcher is closed
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	w.logger.Debug("Watching for changes")
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Stopping watcher")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Trace("File event", mdwlog.Fields{"op": event.Op.String()})
			timer.Reset(w.debounce)

		case <-timer.C:
			w.logger.Debug("File changed")
			onChange(w.path)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnWithErr("Watcher error", err)
		}
	}
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
