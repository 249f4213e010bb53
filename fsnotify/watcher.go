// Package fsnotify reloads docsets when the docsets directory changes,
// using github.com/fsnotify/fsnotify.
package fsnotify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls Reload after docsets are added to, removed from or renamed
// in a directory. Bursts of events within Debounce of each other trigger a
// single reload.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Reload   func(ctx context.Context) error
	Logger   *slog.Logger
}

// NewWatcher creates a new Watcher for path.
func NewWatcher(path string, reload func(ctx context.Context) error) *Watcher {
	return &Watcher{
		Path:     path,
		Debounce: DefaultDebounce,
		Reload:   reload,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// Run watches until ctx is done. Reload errors are logged and do not stop
// the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.Path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.Path, err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger().Debug("docsets changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger().Warn("watch error", "err", err)

		case <-timer.C:
			if err := w.Reload(ctx); err != nil {
				w.logger().Warn("reload failed", "err", err)
			}
		}
	}
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.Logger
}
