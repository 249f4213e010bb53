package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fwojciec/zealdoc"
	"github.com/fwojciec/zealdoc/registry"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	info, err := findDocset(deps, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zealdoc.ErrorMessage(err))
		return err
	}

	d, err := deps.Loader.Load(deps.Ctx, info.Path)
	if err != nil {
		return err
	}
	defer d.Close()

	meta := d.Metadata()
	fmt.Fprintf(deps.Stdout, "Title:    %s\n", meta.Title)
	fmt.Fprintf(deps.Stdout, "Name:     %s\n", meta.Name)
	if meta.Version != "" {
		fmt.Fprintf(deps.Stdout, "Version:  %s\n", meta.Version)
	}
	if meta.Revision != "" {
		fmt.Fprintf(deps.Stdout, "Revision: %s\n", meta.Revision)
	}
	fmt.Fprintf(deps.Stdout, "Format:   %s\n", d.Variant())
	fmt.Fprintf(deps.Stdout, "Path:     %s\n", d.Path())
	if len(meta.Keywords) > 0 {
		fmt.Fprintf(deps.Stdout, "Keywords: %s\n", strings.Join(meta.Keywords, ", "))
	}

	p, err := registry.NewProvider(deps.Ctx, d, deps.Titles)
	if err != nil {
		return err
	}
	home := p.HomePage()
	if home.URL != nil {
		fmt.Fprintf(deps.Stdout, "Home:     %s (%s)\n", home.URL, home.Description)
	}

	counts := d.SymbolCounts()
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	slices.Sort(categories)

	fmt.Fprintln(deps.Stdout, "Symbols:")
	for _, category := range categories {
		fmt.Fprintf(deps.Stdout, "  %-12s %d\n", category, counts[category])
	}
	return nil
}
