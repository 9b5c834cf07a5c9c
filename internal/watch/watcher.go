// Package watch re-runs a callback when Markdown documents change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/linkcheck/internal/logfields"
)

// DefaultDebounce collapses editor save bursts into a single re-check.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors the directories holding a set of documents.
type Watcher struct {
	dirs     []string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(context.Context)
	logger   *slog.Logger
}

// New creates a watcher for the directories containing paths. onChange runs
// on the Run goroutine after each debounced burst of events.
func New(paths []string, debounce time.Duration, onChange func(context.Context), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	seen := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		seen[filepath.Dir(abs)] = struct{}{}
	}
	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	return &Watcher{
		dirs:     dirs,
		watcher:  fw,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Dirs returns the watched directories in sorted order.
func (w *Watcher) Dirs() []string {
	return w.dirs
}

// Run blocks until ctx is cancelled, invoking onChange after changes settle.
// The underlying watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	// Watching directories survives editors that replace files on save.
	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	w.logger.Info("Watching for changes", logfields.Count(len(w.dirs)))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			pending = false
			w.onChange(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", logfields.Error(err))
		}
	}
}

// relevant reports whether event can change a check result. Chmod events
// never do.
func relevant(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
