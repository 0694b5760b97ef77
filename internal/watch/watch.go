// Package watch re-runs a render whenever one of its input files changes.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/pkg/fsutil"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc is called with the sorted list of files that changed.
// An error is logged and watching continues.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher observes a fixed set of files.
type Watcher struct {
	files    map[string]*fsutil.FileInfo
	dirs     []string
	debounce time.Duration
	logger   *log.Logger
	ready    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after the last event before files are
// checked.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher for files. Paths are made absolute.
func New(files []string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		files:    make(map[string]*fsutil.FileInfo, len(files)),
		debounce: DefaultDebounce,
		logger:   log.New(io.Discard),
		ready:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	seenDirs := make(map[string]struct{})
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", file, err)
		}
		w.files[abs] = nil

		// Editors often save by writing a new file and renaming it over
		// the old one, so the directory is watched rather than the file.
		dir := filepath.Dir(abs)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	sort.Strings(w.dirs)

	return w, nil
}

// Ready is closed once the watcher is receiving events.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled, calling onChange after every change
// to the content of a watched file. Events that leave the content unchanged
// are ignored. Run returns nil when ctx is cancelled and must be called
// only once.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer notify.Close()

	for _, dir := range w.dirs {
		if err := notify.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w.snapshotAll(ctx)
	close(w.ready)

	w.logger.Info("Watching for changes", logging.FieldPaths, len(w.files))

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending = make(map[string]struct{})
	)

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C
		} else {
			timer.Reset(w.debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Debug("Watcher stopped")
			return nil

		case <-timerCh:
			changed := w.collectChanged(ctx, pending)
			clear(pending)
			if len(changed) == 0 {
				continue
			}

			w.logger.Info("Inputs changed", logging.FieldPaths, changed)
			if err := onChange(ctx, changed); err != nil {
				w.logger.Error("Re-render failed", logging.FieldError, err)
			}

		case ev, ok := <-notify.Events:
			if !ok {
				return nil
			}
			if _, watched := w.files[ev.Name]; !watched {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			w.logger.Debug("File event", logging.FieldPath, ev.Name, logging.FieldEvent, ev.Op.String())
			pending[ev.Name] = struct{}{}
			schedule()

		case watchErr, ok := <-notify.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logging.FieldError, watchErr)
		}
	}
}

// snapshotAll records the current state of every watched file.
func (w *Watcher) snapshotAll(ctx context.Context) {
	for path := range w.files {
		w.files[path] = w.snapshot(ctx, path)
	}
}

// snapshot returns the file state, or nil if the file cannot be read.
func (w *Watcher) snapshot(ctx context.Context, path string) *fsutil.FileInfo {
	_, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil
	}
	return info
}

// collectChanged compares pending files with their snapshots and refreshes
// the snapshots of those that changed.
func (w *Watcher) collectChanged(ctx context.Context, pending map[string]struct{}) []string {
	var changed []string

	for path := range pending {
		prev := w.files[path]

		modified := true
		if prev != nil {
			var err error
			modified, err = fsutil.CheckModified(ctx, prev)
			if err != nil {
				w.logger.Warn("Cannot check file", logging.FieldPath, path, logging.FieldError, err)
				continue
			}
		}

		current := w.snapshot(ctx, path)
		if prev == nil && current == nil {
			// Still missing.
			continue
		}
		if !modified {
			continue
		}

		w.files[path] = current
		changed = append(changed, path)
	}

	sort.Strings(changed)
	return changed
}
