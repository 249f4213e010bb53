package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/zealdoc"
)

// Run executes the path command.
func (c *PathCmd) Run(deps *Dependencies) error {
	if c.Dir == "" {
		fmt.Fprintln(deps.Stdout, deps.Config.DocsetsPath())
		return nil
	}

	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return err
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		err := zealdoc.Errorf(zealdoc.EINVALID, "%s is not a directory", dir)
		fmt.Fprintf(deps.Stderr, "error: %s\n", zealdoc.ErrorMessage(err))
		return err
	}

	deps.Config.SetDocsetsPath(dir)
	if err := deps.Config.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Docsets directory set to %s\n", dir)
	return nil
}
