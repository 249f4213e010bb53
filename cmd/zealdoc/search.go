package main

import (
	"fmt"

	"github.com/fwojciec/zealdoc"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if err := loadDocsets(deps); err != nil {
		return err
	}

	var results []*zealdoc.SearchResult
	if c.Docset != "" {
		d, err := deps.Registry.Docset(c.Docset)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", zealdoc.ErrorMessage(err))
			return err
		}
		token := zealdoc.NewCancellationToken()
		stop := token.CancelOnDone(deps.Ctx)
		results, err = d.Search(deps.Ctx, c.Query, token)
		stop()
		if err != nil {
			return err
		}
		if c.Limit > 0 && len(results) > c.Limit {
			results = results[:c.Limit]
		}
	} else {
		var err error
		results, err = deps.Registry.Search(deps.Ctx, c.Query, c.Limit)
		if err != nil {
			return err
		}
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q.\n", c.Query)
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%3d  %s  %s  %s  %s\n", r.Score, r.Docset.Title(), r.Type, r.Name, r.URL)
	}
	return nil
}

// loadDocsets opens the enabled docsets. It fails when none could be loaded.
func loadDocsets(deps *Dependencies) error {
	if _, err := deps.Registry.Reload(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zealdoc.ErrorMessage(err))
		return err
	}
	if len(deps.Registry.Docsets()) == 0 {
		fmt.Fprintln(deps.Stderr, "Hint: Use 'zealdoc list' and 'zealdoc enable' to enable docsets")
		return zealdoc.Errorf(zealdoc.ENOTFOUND, "no docsets enabled")
	}
	return nil
}
