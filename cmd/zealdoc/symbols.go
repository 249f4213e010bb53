package main

import (
	"fmt"

	"github.com/fwojciec/zealdoc"
)

// Run executes the symbols command. Without a category it prints the
// contents tree of the docset.
func (c *SymbolsCmd) Run(deps *Dependencies) error {
	if err := loadDocsets(deps); err != nil {
		return err
	}

	p := deps.Registry.Provider(c.Docset)
	if p == nil {
		err := zealdoc.Errorf(zealdoc.ENOTFOUND, "docset %q is not enabled", c.Docset)
		fmt.Fprintf(deps.Stderr, "error: %s\n", zealdoc.ErrorMessage(err))
		return err
	}

	if c.Category == "" {
		for _, row := range p.Contents() {
			switch row.Kind {
			case zealdoc.RowGroup:
				fmt.Fprintf(deps.Stdout, "%s (%d)\n", row.Group, len(p.GroupTokens(row.Group)))
			case zealdoc.RowToken:
				fmt.Fprintf(deps.Stdout, "  %s\n", row.Token)
			}
		}
		return nil
	}

	category := zealdoc.ParseSymbolType(c.Category)
	tokens := p.GroupTokens(category)
	if len(tokens) == 0 {
		fmt.Fprintf(deps.Stdout, "No %s symbols in %s.\n", category, p.Name())
		return nil
	}
	for _, token := range tokens {
		if doc := p.DocumentationForToken(token); doc != nil {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", token, doc.URL)
		}
	}
	return nil
}
