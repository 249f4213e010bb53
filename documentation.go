package zealdoc

import "net/url"

// DocumentationKind distinguishes documentation entries.
type DocumentationKind int

const (
	// DocumentationHome is the contents page of a docset.
	DocumentationHome DocumentationKind = iota
	// DocumentationToken is the page documenting a single symbol.
	DocumentationToken
)

// Documentation is an entry a viewer can display. Home entries have no URL
// of their own unless the docset has an index page; viewers render them from
// the provider's Contents instead.
type Documentation struct {
	Kind        DocumentationKind
	Name        string
	Description string
	URL         *url.URL

	// Provider is the provider that produced the entry.
	Provider DocumentationProvider
}

// RowKind distinguishes rows of the contents tree.
type RowKind int

const (
	RowGroup RowKind = iota
	RowToken
)

// ContentsRow is one row of a docset contents tree. Group rows carry the
// category name; token rows carry the group they belong to and the token.
type ContentsRow struct {
	Kind  RowKind
	Group string
	Token string
}

// DocumentationProvider exposes a docset to a documentation viewer.
type DocumentationProvider interface {
	Name() string
	Icon() string

	// HomePage returns the contents entry of the docset.
	HomePage() *Documentation

	// DocumentationForToken returns the entry for token, or nil if unknown.
	DocumentationForToken(token string) *Documentation

	// DocumentationForURL returns the entry whose page is u, or nil.
	DocumentationForURL(u *url.URL) *Documentation

	// DocumentationForDeclaration returns the entry for a declaration's
	// qualified name written in language lang, or nil if unknown.
	DocumentationForDeclaration(qualifiedName, lang string) *Documentation

	// TokenGroups lists categories that contain at least one token.
	TokenGroups() []string

	// GroupTokens lists the tokens of group in order.
	GroupTokens(group string) []string

	// Contents returns the group and token rows of the contents tree.
	Contents() []ContentsRow
}

// LanguageQMLJS is the declaration language whose tokens are stored with a
// "QML." prefix.
const LanguageQMLJS = "QML/JS"

// TitleReader reads the title of a local HTML page.
type TitleReader interface {
	ReadTitle(path string) (string, error)
}
