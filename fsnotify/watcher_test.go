package fsnotify_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/zealdoc/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, w *fsnotify.Watcher) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
}

func TestWatcher_Run(t *testing.T) {
	t.Parallel()

	t.Run("debounces bursts of changes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var reloads atomic.Int32
		w := fsnotify.NewWatcher(dir, func(context.Context) error {
			reloads.Add(1)
			return nil
		})
		w.Debounce = 100 * time.Millisecond
		startWatcher(t, w)

		for _, name := range []string{"A.docset", "B.docset", "C.docset"} {
			require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0755))
		}

		assert.Eventually(t, func() bool { return reloads.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
		time.Sleep(300 * time.Millisecond)
		assert.Equal(t, int32(1), reloads.Load())
	})

	t.Run("reloads on removal", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		docset := filepath.Join(dir, "A.docset")
		require.NoError(t, os.Mkdir(docset, 0755))

		var reloads atomic.Int32
		w := fsnotify.NewWatcher(dir, func(context.Context) error {
			reloads.Add(1)
			return nil
		})
		w.Debounce = 20 * time.Millisecond
		startWatcher(t, w)

		require.NoError(t, os.Remove(docset))

		assert.Eventually(t, func() bool { return reloads.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("keeps running after reload errors", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var reloads atomic.Int32
		w := fsnotify.NewWatcher(dir, func(context.Context) error {
			reloads.Add(1)
			return errors.New("reload failed")
		})
		w.Debounce = 20 * time.Millisecond
		startWatcher(t, w)

		require.NoError(t, os.Mkdir(filepath.Join(dir, "A.docset"), 0755))
		assert.Eventually(t, func() bool { return reloads.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

		require.NoError(t, os.Mkdir(filepath.Join(dir, "B.docset"), 0755))
		assert.Eventually(t, func() bool { return reloads.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("fails for missing directory", func(t *testing.T) {
		t.Parallel()

		w := fsnotify.NewWatcher(filepath.Join(t.TempDir(), "missing"), func(context.Context) error { return nil })

		err := w.Run(context.Background())
		require.Error(t, err)
	})
}
