package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/zealdoc"
	"github.com/fwojciec/zealdoc/fsnotify"
)

// Run executes the watch command. It blocks until interrupted.
func (c *WatchCmd) Run(deps *Dependencies) error {
	reload := func(ctx context.Context) error {
		changed, err := deps.Registry.Reload(ctx)
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintf(deps.Stdout, "Loaded %d docsets\n", len(deps.Registry.Docsets()))
		}
		return nil
	}

	if err := reload(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zealdoc.ErrorMessage(err))
		return err
	}

	root := deps.Config.DocsetsPath()
	fmt.Fprintf(deps.Stdout, "Watching %s\n", root)

	w := fsnotify.NewWatcher(root, reload)
	w.Debounce = c.Debounce
	w.Logger = deps.Logger
	return w.Run(deps.Ctx)
}
