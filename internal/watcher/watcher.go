// Package watcher follows a directory of organ definitions and reports
// changed and removed files after they settle.
//
// It is used by 'odfkit catalog watch' to keep the catalog current.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aidanlsb/odfkit/internal/slugs"
)

// Watcher monitors a directory tree for organ definition changes.
type Watcher struct {
	root string

	// Configuration
	debounceDelay time.Duration
	debug         bool

	// Internal state
	fsWatcher *fsnotify.Watcher
	pending   map[string]time.Time
	mu        sync.Mutex

	// Callbacks
	onChange func(ctx context.Context, path string) error
	onRemove func(path string) error
	onEvent  func(path string, removed bool, err error)
}

// Config holds configuration options for the Watcher.
type Config struct {
	Root          string
	DebounceDelay time.Duration // Default: 250ms
	Debug         bool

	// OnChange is called for a created or modified organ file once no
	// further writes arrived for DebounceDelay.
	OnChange func(ctx context.Context, path string) error
	// OnRemove is called when an organ file is removed or renamed away.
	OnRemove func(path string) error
	// OnEvent, if set, is told the outcome of every callback.
	OnEvent func(path string, removed bool, err error)
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("change handler is required")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 250 * time.Millisecond
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		root:          root,
		debounceDelay: debounce,
		debug:         cfg.Debug,
		pending:       make(map[string]time.Time),
		onChange:      cfg.OnChange,
		onRemove:      cfg.OnRemove,
		onEvent:       cfg.OnEvent,
	}, nil
}

// IsOrganFile reports whether path has the organ definition extension.
func IsOrganFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), slugs.Extension)
}

// Start begins watching. It blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	w.logDebug("Watching: %s", w.root)

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logDebug("Watcher error: %v", err)
		}
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !IsOrganFile(path) {
		if event.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() && !shouldIgnoreDir(path) {
				w.addWatchRecursive(path)
			}
		}
		return
	}

	w.logDebug("Event: %s %s", event.Op, path)

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		w.schedule(path)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		if w.onRemove == nil {
			return
		}
		err := w.onRemove(path)
		w.report(path, true, err)
	}
}

// schedule queues path, restarting its debounce delay.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = time.Now()
}

func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending(ctx, time.Now())
		}
	}
}

// processPending runs OnChange for files quiet since before now minus the
// debounce delay.
func (w *Watcher) processPending(ctx context.Context, now time.Time) {
	w.mu.Lock()
	var ready []string
	for path, scheduledAt := range w.pending {
		if now.Sub(scheduledAt) >= w.debounceDelay {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		if ctx.Err() != nil {
			return
		}
		err := w.onChange(ctx, path)
		w.report(path, false, err)
	}
}

func (w *Watcher) report(path string, removed bool, err error) {
	if w.onEvent != nil {
		w.onEvent(path, removed, err)
	}
	if err != nil {
		w.logDebug("Failed on %s: %v", path, err)
	}
}

// addWatchRecursive adds a directory and all subdirectories to the watcher.
func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && shouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			if err := w.fsWatcher.Add(path); err != nil {
				w.logDebug("Failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
}

// shouldIgnoreDir skips hidden directories such as .git.
func shouldIgnoreDir(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

func (w *Watcher) logDebug(format string, args ...interface{}) {
	if w.debug {
		fmt.Fprintf(os.Stderr, "[odfkit-watcher] "+format+"\n", args...)
	}
}
