package mock

import (
	"context"
	"net/url"

	"github.com/fwojciec/zealdoc"
)

var _ zealdoc.Docset = (*Docset)(nil)

// Docset is a mock implementation of zealdoc.Docset.
type Docset struct {
	SearchFn       func(ctx context.Context, query string, token zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error)
	IsValidFn      func() bool
	NameFn         func() string
	TitleFn        func() string
	MetadataFn     func() zealdoc.Metadata
	VariantFn      func() zealdoc.Variant
	PathFn         func() string
	DocumentPathFn func() string
	IconFn         func() string
	IndexFileURLFn func() *url.URL
	SymbolCountsFn func() map[string]int
	SymbolsFn      func(ctx context.Context, category string) (*zealdoc.SymbolIndex, error)
	RelatedLinksFn func(ctx context.Context, u *url.URL) ([]*zealdoc.SearchResult, error)
	PageURLFn      func(path, fragment string) *url.URL
	CloseFn        func() error
}

func (d *Docset) Search(ctx context.Context, query string, token zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error) {
	return d.SearchFn(ctx, query, token)
}

func (d *Docset) IsValid() bool                          { return d.IsValidFn() }
func (d *Docset) Name() string                           { return d.NameFn() }
func (d *Docset) Title() string                          { return d.TitleFn() }
func (d *Docset) Metadata() zealdoc.Metadata             { return d.MetadataFn() }
func (d *Docset) Variant() zealdoc.Variant               { return d.VariantFn() }
func (d *Docset) Path() string                           { return d.PathFn() }
func (d *Docset) DocumentPath() string                   { return d.DocumentPathFn() }
func (d *Docset) Icon() string                           { return d.IconFn() }
func (d *Docset) IndexFileURL() *url.URL                 { return d.IndexFileURLFn() }
func (d *Docset) SymbolCounts() map[string]int           { return d.SymbolCountsFn() }
func (d *Docset) PageURL(path, fragment string) *url.URL { return d.PageURLFn(path, fragment) }

func (d *Docset) Symbols(ctx context.Context, category string) (*zealdoc.SymbolIndex, error) {
	return d.SymbolsFn(ctx, category)
}

func (d *Docset) RelatedLinks(ctx context.Context, u *url.URL) ([]*zealdoc.SearchResult, error) {
	return d.RelatedLinksFn(ctx, u)
}

// Close calls CloseFn when set, so tests only stub it when they care.
func (d *Docset) Close() error {
	if d.CloseFn == nil {
		return nil
	}
	return d.CloseFn()
}

var _ zealdoc.DocsetLoader = (*DocsetLoader)(nil)

// DocsetLoader is a mock implementation of zealdoc.DocsetLoader.
type DocsetLoader struct {
	LoadFn func(ctx context.Context, path string) (zealdoc.Docset, error)
}

func (l *DocsetLoader) Load(ctx context.Context, path string) (zealdoc.Docset, error) {
	return l.LoadFn(ctx, path)
}

var _ zealdoc.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of zealdoc.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, token zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string, token zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error) {
	return s.SearchFn(ctx, query, token)
}
