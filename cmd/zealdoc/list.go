package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/zealdoc"
	"github.com/fwojciec/zealdoc/registry"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	root := deps.Config.DocsetsPath()
	infos, err := registry.AvailableDocsets(deps.Ctx, deps.Loader, root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zealdoc.ErrorMessage(err))
		return err
	}

	if len(infos) == 0 {
		fmt.Fprintf(deps.Stdout, "No docsets found in %s. Use 'zealdoc path' to change the docsets directory.\n", root)
		return nil
	}

	enabled := deps.Config.EnabledDocsets()
	for _, info := range infos {
		mark := " "
		if slices.Contains(enabled, info.Title) {
			mark = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %s  %s  %s\n", mark, info.Title, info.Name, info.Path)
	}

	return nil
}

// findDocset returns the docset under the docsets directory whose title or
// name is name.
func findDocset(deps *Dependencies, name string) (zealdoc.DocsetInfo, error) {
	infos, err := registry.AvailableDocsets(deps.Ctx, deps.Loader, deps.Config.DocsetsPath())
	if err != nil {
		return zealdoc.DocsetInfo{}, err
	}
	for _, info := range infos {
		if info.Title == name || info.Name == name {
			return info, nil
		}
	}
	return zealdoc.DocsetInfo{}, zealdoc.Errorf(zealdoc.ENOTFOUND, "docset %q not found in %s", name, deps.Config.DocsetsPath())
}
