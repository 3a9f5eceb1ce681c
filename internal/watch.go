package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/scanner"
)

// defaultSettle is how long a file must stay unchanged before it is linted
// again, so that a burst of writes is linted once.
const defaultSettle = 100 * time.Millisecond

var errNotWatching = errors.New("watcher is closed")

// WatchReport is the outcome of linting a changed file. Err is set alone
// when the file system watcher itself failed.
type WatchReport struct {
	Filename string
	Issues   []tt.Issue
	Err      error
}

// Watcher lints JavaScript files again whenever they change on disk.
type Watcher struct {
	engine  *Engine
	scanner *scanner.Scanner
	watcher *fsnotify.Watcher
	settle  time.Duration
	report  func(WatchReport)
}

// NewWatcher creates a watcher running engine and passing every result to
// report. report is called from the goroutine running Run.
func NewWatcher(engine *Engine, report func(WatchReport)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating file watcher: %w", err)
	}
	return &Watcher{
		engine:  engine,
		scanner: scanner.New(".", scanner.Extensions...),
		watcher: fw,
		settle:  defaultSettle,
		report:  report,
	}, nil
}

// Add watches path. Directories are watched recursively, skipping the
// directories the scanner never descends into.
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}

	dirs, err := scanner.New(path).Dirs()
	if err != nil {
		return fmt.Errorf("error scanning %s: %w", path, err)
	}
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return nil
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	pending := make(map[string]bool)
	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return errNotWatching
			}
			if w.handleFileEvent(event) {
				pending[event.Name] = true
				timer.Reset(w.settle)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errNotWatching
			}
			w.report(WatchReport{Err: err})
		case <-timer.C:
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			clear(pending)
			slices.Sort(names)
			for _, name := range names {
				issues, err := w.engine.Run(name)
				w.report(WatchReport{Filename: name, Issues: issues, Err: err})
			}
		}
	}
}

// handleFileEvent reports whether event changed a file that must be
// linted again. New directories are watched as they appear.
func (w *Watcher) handleFileEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !scanner.IsSkippedDir(filepath.Base(event.Name)) {
				if err := w.Add(event.Name); err != nil {
					w.report(WatchReport{Err: err})
				}
			}
			return false
		}
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return w.scanner.IsTarget(event.Name)
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
