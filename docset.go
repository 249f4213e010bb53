package zealdoc

import (
	"context"
	"net/url"
)

// Variant identifies the on-disk schema of a docset index.
type Variant int

const (
	// VariantInvalid marks a docset that failed to load. All queries on it
	// return empty results.
	VariantInvalid Variant = iota
	// VariantLegacy is the Dash schema with a single searchIndex table.
	VariantLegacy
	// VariantModern is the Core Data (ZDash) schema with ztoken tables.
	VariantModern
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantLegacy:
		return "dash"
	case VariantModern:
		return "zdash"
	default:
		return "invalid"
	}
}

// SearchResult is a ranked symbol match. Docset is the docset that
// produced it, which must stay open while the result is in use.
type SearchResult struct {
	Name   string
	Type   string
	Docset Docset
	URL    *url.URL
	Score  int
}

// Searcher ranks symbols against a query.
type Searcher interface {
	// Search returns symbols scoring above zero for query, best first.
	// Queries shorter than three characters return at most 1000 results.
	// Iteration stops between rows once token is canceled or ctx is done,
	// keeping the rows already read.
	Search(ctx context.Context, query string, token CancellationToken) ([]*SearchResult, error)
}

// Docset is an opened documentation archive.
type Docset interface {
	Searcher

	// IsValid reports whether the docset loaded completely.
	IsValid() bool

	Name() string
	Title() string
	Metadata() Metadata
	Variant() Variant

	// Path is the docset root directory.
	Path() string

	// DocumentPath is the root of the HTML content.
	DocumentPath() string

	// Icon is the path of the docset icon, or "" when it has none.
	Icon() string

	// IndexFileURL is the docset home page, or nil when it has none.
	IndexFileURL() *url.URL

	// SymbolCounts maps each canonical category to its number of symbols.
	SymbolCounts() map[string]int

	// Symbols returns the symbols of category ordered by name. The index
	// is loaded on first use and cached.
	Symbols(ctx context.Context, category string) (*SymbolIndex, error)

	// RelatedLinks returns the other symbols documented on the page u
	// points to. A lone match is treated as no match.
	RelatedLinks(ctx context.Context, u *url.URL) ([]*SearchResult, error)

	// PageURL resolves a page path and fragment under the document root.
	PageURL(path, fragment string) *url.URL

	// Close releases the docset index.
	Close() error
}

// DocsetLoader opens docsets from disk.
type DocsetLoader interface {
	// Load opens the docset at path. Structural problems yield a docset
	// whose IsValid is false rather than an error. Returns an error only if
	// ctx is done.
	Load(ctx context.Context, path string) (Docset, error)
}

// DocsetInfo identifies a docset found on disk.
type DocsetInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Path  string `json:"path"`
}
