// Package watch re-runs a callback when a configuration file (or the .env
// files next to it) changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultDebounce collapses editor save bursts into one callback.
const DefaultDebounce = 300 * time.Millisecond

// Func is invoked after a debounced change. Errors are logged; watching continues.
type Func func(ctx context.Context) error

// Watcher monitors the directory holding a configuration file. Watching the
// directory survives editors that replace files by rename.
type Watcher struct {
	path     string
	names    map[string]bool
	debounce time.Duration
	fn       Func

	watcher *fsnotify.Watcher
	trigger chan struct{}
	runMu   sync.Mutex // serializes fn
}

// New creates a Watcher for path. A non-positive debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, fn Func) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		names:    map[string]bool{filepath.Base(abs): true, ".env": true, ".env.local": true},
		debounce: debounce,
		fn:       fn,
		watcher:  fw,
		trigger:  make(chan struct{}, 1),
	}, nil
}

// Run watches until ctx is cancelled, then releases the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch config directory %s: %w", dir, err)
	}
	slog.Info("Watching configuration", logfields.Path(w.path), slog.Duration("debounce", w.debounce))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.debounceLoop(ctx)
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.names[filepath.Base(event.Name)] {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Config change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				w.notify()
			case event.Has(fsnotify.Remove):
				slog.Warn("Config file removed", logfields.Path(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Config watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) notify() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			// wait for an in-flight callback
			w.runMu.Lock()
			defer w.runMu.Unlock()
			return
		case <-w.trigger:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() { w.fire(ctx) })
		}
	}
}

func (w *Watcher) fire(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if err := w.fn(ctx); err != nil {
		slog.Error("Change handler failed", logfields.Path(w.path), logfields.Error(err))
	}
}
