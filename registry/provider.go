package registry

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"

	"github.com/fwojciec/zealdoc"
)

// Ensure Provider implements zealdoc.DocumentationProvider.
var _ zealdoc.DocumentationProvider = (*Provider)(nil)

// Provider exposes the tokens of one docset as documentation entries.
// Its token tables are built once by NewProvider and are read-only
// afterwards.
type Provider struct {
	docset zealdoc.Docset
	titles zealdoc.TitleReader

	groups      []string
	groupTokens map[string][]string
	tokenURLs   map[string]*url.URL
	tokens      []string
}

// NewProvider builds the token tables of d. Categories are visited in name
// order; a token listed in several categories resolves to the first URL
// seen. titles is optional and supplies the home page description.
func NewProvider(ctx context.Context, d zealdoc.Docset, titles zealdoc.TitleReader) (*Provider, error) {
	if !d.IsValid() {
		return nil, zealdoc.Errorf(zealdoc.EINVALID, "docset %s is not valid", d.Path())
	}

	p := &Provider{
		docset:      d,
		titles:      titles,
		groupTokens: make(map[string][]string),
		tokenURLs:   make(map[string]*url.URL),
	}

	counts := d.SymbolCounts()
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	slices.Sort(categories)

	for _, category := range categories {
		index, err := d.Symbols(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("loading %s symbols: %w", category, err)
		}
		if index.Len() == 0 {
			continue
		}

		p.groups = append(p.groups, category)
		p.groupTokens[category] = index.Names()
		for _, s := range index.Symbols {
			if _, ok := p.tokenURLs[s.Name]; !ok {
				p.tokenURLs[s.Name] = s.URL
			}
		}
	}

	p.tokens = make([]string, 0, len(p.tokenURLs))
	for token := range p.tokenURLs {
		p.tokens = append(p.tokens, token)
	}
	slices.Sort(p.tokens)

	return p, nil
}

// Name returns the docset title.
func (p *Provider) Name() string { return p.docset.Title() }

// Icon returns the path of the docset icon.
func (p *Provider) Icon() string { return p.docset.Icon() }

// Docset returns the underlying docset.
func (p *Provider) Docset() zealdoc.Docset { return p.docset }

// Tokens returns every token in name order.
func (p *Provider) Tokens() []string { return slices.Clone(p.tokens) }

// TokenGroups returns the categories holding at least one token.
func (p *Provider) TokenGroups() []string { return slices.Clone(p.groups) }

// GroupTokens returns the tokens of group in name order.
func (p *Provider) GroupTokens(group string) []string {
	return slices.Clone(p.groupTokens[group])
}

// HomePage returns the contents entry. Its description is the title of the
// docset index page when one can be read.
func (p *Provider) HomePage() *zealdoc.Documentation {
	name := p.Name() + " Content Page"
	doc := &zealdoc.Documentation{
		Kind:        zealdoc.DocumentationHome,
		Name:        name,
		Description: name,
		URL:         p.docset.IndexFileURL(),
		Provider:    p,
	}

	if doc.URL != nil && p.titles != nil {
		if title, err := p.titles.ReadTitle(filepath.FromSlash(doc.URL.Path)); err == nil && title != "" {
			doc.Description = title
		}
	}
	return doc
}

// DocumentationForToken returns the entry for token, or nil if the docset
// does not document it.
func (p *Provider) DocumentationForToken(token string) *zealdoc.Documentation {
	if token == "" {
		return nil
	}
	u, ok := p.tokenURLs[token]
	if !ok || u == nil {
		return nil
	}
	return &zealdoc.Documentation{
		Kind:        zealdoc.DocumentationToken,
		Name:        token,
		Description: token,
		URL:         u,
		Provider:    p,
	}
}

// DocumentationForURL returns the entry of the first token, in name order,
// whose page is u.
func (p *Provider) DocumentationForURL(u *url.URL) *zealdoc.Documentation {
	if u == nil {
		return nil
	}
	want := u.String()
	for _, token := range p.tokens {
		if p.tokenURLs[token].String() == want {
			return p.DocumentationForToken(token)
		}
	}
	return nil
}

// DocumentationForDeclaration returns the entry for a qualified name.
// QML/JS tokens are stored under a "QML." prefix.
func (p *Provider) DocumentationForDeclaration(qualifiedName, lang string) *zealdoc.Documentation {
	if qualifiedName == "" {
		return nil
	}
	if lang == zealdoc.LanguageQMLJS {
		qualifiedName = "QML." + qualifiedName
	}
	return p.DocumentationForToken(qualifiedName)
}

// Contents returns the contents tree, each group row followed by its
// token rows.
func (p *Provider) Contents() []zealdoc.ContentsRow {
	rows := make([]zealdoc.ContentsRow, 0, len(p.groups)+len(p.tokenURLs))
	for _, group := range p.groups {
		rows = append(rows, zealdoc.ContentsRow{Kind: zealdoc.RowGroup, Group: group})
		for _, token := range p.groupTokens[group] {
			rows = append(rows, zealdoc.ContentsRow{Kind: zealdoc.RowToken, Group: group, Token: token})
		}
	}
	return rows
}
