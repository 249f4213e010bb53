package sqlite

import (
	"context"
	"net/url"
	"sort"

	"github.com/fwojciec/zealdoc"
)

// Search returns symbols scoring above zero for query, best first. The
// token and ctx are checked after each row; once either is done the rows
// read so far are returned without error.
func (d *Docset) Search(ctx context.Context, query string, token zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error) {
	if !d.IsValid() {
		return nil, nil
	}

	d.queryMu.Lock()
	defer d.queryMu.Unlock()
	if d.db == nil {
		return nil, nil
	}

	if err := d.db.Execute(d.schema.searchQuery(query)); err != nil {
		return nil, zealdoc.Errorf(zealdoc.EINTERNAL, "search %q: %s", query, err)
	}

	var results []*zealdoc.SearchResult
	for d.db.Next() {
		if token.IsCanceled() || ctx.Err() != nil {
			return results, nil
		}
		results = append(results, &zealdoc.SearchResult{
			Name:   d.db.Value(0).String(),
			Type:   zealdoc.ParseSymbolType(d.db.Value(1).String()),
			Docset: d,
			URL:    d.PageURL(d.db.Value(2).String(), d.db.Value(3).String()),
			Score:  d.db.Value(4).Int(),
		})
	}
	if err := d.db.err(); err != nil {
		return results, zealdoc.Errorf(zealdoc.EINTERNAL, "search %q: %s", query, err)
	}
	return results, nil
}

// RelatedLinks returns the other symbols documented on the page u points
// to. A single match is discarded as it is the page itself.
func (d *Docset) RelatedLinks(ctx context.Context, u *url.URL) ([]*zealdoc.SearchResult, error) {
	if !d.IsValid() {
		return nil, nil
	}

	path, ok := zealdoc.PagePath(d.documentPath, u)
	if !ok {
		return nil, nil
	}

	d.queryMu.Lock()
	defer d.queryMu.Unlock()
	if d.db == nil {
		return nil, nil
	}

	if err := d.db.Execute(d.schema.related, d.schema.relatedArgs(path)...); err != nil {
		return nil, zealdoc.Errorf(zealdoc.EINTERNAL, "related links for %s: %s", path, err)
	}

	var results []*zealdoc.SearchResult
	for d.db.Next() {
		if ctx.Err() != nil {
			break
		}
		results = append(results, &zealdoc.SearchResult{
			Name:   d.db.Value(0).String(),
			Type:   zealdoc.ParseSymbolType(d.db.Value(1).String()),
			Docset: d,
			URL:    d.PageURL(d.db.Value(2).String(), d.db.Value(3).String()),
		})
	}
	if err := d.db.err(); err != nil {
		return nil, zealdoc.Errorf(zealdoc.EINTERNAL, "related links for %s: %s", path, err)
	}

	if len(results) == 1 {
		return nil, nil
	}
	return results, nil
}

// Symbols returns the symbols of category ordered by name. The first call
// per category queries the index; later calls return the cached index.
// Concurrent first calls for one category query it once.
func (d *Docset) Symbols(ctx context.Context, category string) (*zealdoc.SymbolIndex, error) {
	if !d.IsValid() {
		return &zealdoc.SymbolIndex{Category: category}, nil
	}

	c := d.symbolCache(category)
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index != nil {
		return c.index, nil
	}

	index, err := d.loadSymbols(ctx, category)
	if err != nil {
		return nil, err
	}
	c.index = index
	return index, nil
}

func (d *Docset) symbolCache(category string) *symbolCache {
	d.symbolsMu.Lock()
	defer d.symbolsMu.Unlock()

	c, ok := d.symbols[category]
	if !ok {
		c = &symbolCache{}
		d.symbols[category] = c
	}
	return c
}

// loadSymbols reads every raw type that maps to category.
func (d *Docset) loadSymbols(ctx context.Context, category string) (*zealdoc.SymbolIndex, error) {
	d.queryMu.Lock()
	defer d.queryMu.Unlock()

	index := &zealdoc.SymbolIndex{Category: category}
	if d.db == nil {
		return index, nil
	}

	for _, label := range d.rawTypes[category] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := d.db.Execute(d.schema.symbols, label); err != nil {
			return nil, zealdoc.Errorf(zealdoc.EINTERNAL, "symbols of %s: %s", category, err)
		}
		for d.db.Next() {
			index.Symbols = append(index.Symbols, zealdoc.Symbol{
				Name: d.db.Value(0).String(),
				URL:  d.PageURL(d.db.Value(1).String(), d.db.Value(2).String()),
			})
		}
		if err := d.db.err(); err != nil {
			return nil, zealdoc.Errorf(zealdoc.EINTERNAL, "symbols of %s: %s", category, err)
		}
	}

	// Labels are queried one at a time; merge them into name order.
	if len(d.rawTypes[category]) > 1 {
		sort.SliceStable(index.Symbols, func(i, j int) bool {
			return index.Symbols[i].Name < index.Symbols[j].Name
		})
	}
	return index, nil
}
