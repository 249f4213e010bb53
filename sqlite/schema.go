package sqlite

import (
	"fmt"
	"strings"

	"github.com/fwojciec/zealdoc"
)

// Docset index names are versioned so a changed index definition replaces
// the one built by an earlier release.
const (
	IndexNamePrefix  = "__zi_name"
	IndexNameVersion = "0001"
)

// maxShortQueryResults caps results for queries shorter than three characters.
const maxShortQueryResults = 1000

// schema holds the queries for one docset index layout. Every query that
// returns symbols selects name, type, path and anchor in that order.
type schema struct {
	table      string
	nameColumn string

	// countSymbols selects raw type and count, grouped by type.
	countSymbols string

	// symbols selects name, path and anchor for one raw type (?1), by name.
	symbols string

	// search takes the escaped needle through fmt and adds a score column.
	search string

	// related selects the entries of one page; args come from relatedArgs.
	related     string
	relatedArgs func(path string) []any
}

const modernJoins = `
	FROM ztoken
	LEFT JOIN ztokenmetainformation ON ztoken.zmetainformation = ztokenmetainformation.z_pk
	LEFT JOIN zfilepath ON ztokenmetainformation.zfile = zfilepath.z_pk
	LEFT JOIN ztokentype ON ztoken.ztokentype = ztokentype.z_pk`

var schemas = map[zealdoc.Variant]*schema{
	zealdoc.VariantLegacy: {
		table:        "searchIndex",
		nameColumn:   "name",
		countSymbols: `SELECT type, COUNT(*) FROM searchIndex GROUP BY type`,
		symbols:      `SELECT name, path, '' FROM searchIndex WHERE type = ? ORDER BY name ASC`,
		search: `
			SELECT name, type, path, '', zealScore('%s', name) AS score
			FROM searchIndex
			WHERE score > 0
			ORDER BY score DESC`,
		// The page itself is excluded; entries on it carry an anchor in their path.
		related: `
			SELECT name, type, path, ''
			FROM searchIndex
			WHERE path LIKE ? ESCAPE '\' AND path <> ?`,
		relatedArgs: func(path string) []any {
			return []any{escapeLike(path) + "%", path}
		},
	},
	zealdoc.VariantModern: {
		table:        "ztoken",
		nameColumn:   "ztokenname",
		countSymbols: `SELECT ztypename, COUNT(*) FROM ztoken LEFT JOIN ztokentype ON ztoken.ztokentype = ztokentype.z_pk GROUP BY ztypename`,
		symbols:      `SELECT ztokenname, zpath, zanchor` + modernJoins + ` WHERE ztypename = ? ORDER BY ztokenname ASC`,
		search: `
			SELECT ztokenname, ztypename, zpath, zanchor, zealScore('%s', ztokenname) AS score` + modernJoins + `
			WHERE score > 0
			ORDER BY score DESC`,
		related: `
			SELECT ztoken.ztokenname, ztokentype.ztypename, zfilepath.zpath, ztokenmetainformation.zanchor` + modernJoins + `
			WHERE zfilepath.zpath = ? AND ztokenmetainformation.zanchor IS NOT NULL`,
		relatedArgs: func(path string) []any {
			return []any{path}
		},
	},
}

// searchQuery builds the search statement for query.
func (s *schema) searchQuery(query string) string {
	q := fmt.Sprintf(s.search, escapeQuery(query))
	if len([]rune(query)) < 3 {
		q += fmt.Sprintf(" LIMIT %d", maxShortQueryResults)
	}
	return q
}

func (s *schema) indexName() string {
	return IndexNamePrefix + IndexNameVersion
}

var queryEscaper = strings.NewReplacer(`\`, `\\`, `_`, `\_`, `%`, `\%`, `'`, `''`)

// escapeQuery escapes wildcard and quote characters in a search query
// before it is interpolated into a string literal.
func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `_`, `\_`, `%`, `\%`)

// escapeLike escapes s for use in a LIKE pattern with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
