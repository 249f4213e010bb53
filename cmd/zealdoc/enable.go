package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/zealdoc"
)

// Run executes the enable command.
func (c *EnableCmd) Run(deps *Dependencies) error {
	enabled := deps.Config.EnabledDocsets()

	for _, name := range c.Names {
		info, err := findDocset(deps, name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", zealdoc.ErrorMessage(err))
			return err
		}
		enabled = zealdoc.Enable(enabled, info.Title)
		fmt.Fprintf(deps.Stdout, "Enabled %s\n", info.Title)
	}

	deps.Config.SetEnabledDocsets(enabled)
	if err := deps.Config.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// Run executes the disable command. Names are matched against enabled
// titles first, so docsets that were removed from disk can still be
// disabled.
func (c *DisableCmd) Run(deps *Dependencies) error {
	enabled := deps.Config.EnabledDocsets()

	for _, name := range c.Names {
		title := name
		if !slices.Contains(enabled, title) {
			info, err := findDocset(deps, name)
			if err != nil || !slices.Contains(enabled, info.Title) {
				fmt.Fprintf(deps.Stdout, "%s is not enabled\n", name)
				continue
			}
			title = info.Title
		}
		enabled = zealdoc.Disable(enabled, title)
		fmt.Fprintf(deps.Stdout, "Disabled %s\n", title)
	}

	deps.Config.SetEnabledDocsets(enabled)
	if err := deps.Config.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}
