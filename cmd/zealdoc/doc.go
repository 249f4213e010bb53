package main

import (
	"fmt"

	"github.com/fwojciec/zealdoc"
)

// Run executes the doc command.
func (c *DocCmd) Run(deps *Dependencies) error {
	if err := loadDocsets(deps); err != nil {
		return err
	}

	found := false
	for _, p := range deps.Registry.Providers() {
		doc := p.DocumentationForDeclaration(c.Token, c.Lang)
		if doc == nil {
			continue
		}
		found = true
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", doc.Provider.Name(), doc.Name, doc.URL)
	}

	if !found {
		err := zealdoc.Errorf(zealdoc.ENOTFOUND, "no documentation for %q", c.Token)
		fmt.Fprintf(deps.Stderr, "error: %s\n", zealdoc.ErrorMessage(err))
		return err
	}
	return nil
}
