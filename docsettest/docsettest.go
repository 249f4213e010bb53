// Package docsettest builds docset directories for tests.
package docsettest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/ncruces/go-sqlite3"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// Entry is a symbol row written to the docset index.
type Entry struct {
	Name   string
	Type   string
	Path   string
	Anchor string
}

// Fixture describes a docset to build. Zero values produce a valid legacy
// docset named after Dir with an index page and no entries.
type Fixture struct {
	// Dir is the directory name, without the .docset suffix.
	Dir string

	// BundleName is written as CFBundleName when non-empty.
	BundleName string

	// Plist holds extra string entries for Info.plist.
	Plist map[string]string

	// LowercasePlist writes info.plist instead of Info.plist.
	LowercasePlist bool

	// MetaJSON is written verbatim to meta.json when non-empty.
	MetaJSON string

	// Modern selects the ztoken schema.
	Modern bool

	Entries []Entry

	// Icon writes an icon.png file.
	Icon bool

	NoPlist     bool
	NoIndex     bool
	NoDocuments bool
	NoIndexPage bool
}

// Build writes f under root and returns the docset path.
func Build(tb testing.TB, root string, f Fixture) string {
	tb.Helper()

	path := filepath.Join(root, f.Dir+".docset")
	contents := filepath.Join(path, "Contents")
	resources := filepath.Join(contents, "Resources")
	documents := filepath.Join(resources, "Documents")

	require.NoError(tb, os.MkdirAll(resources, 0755))

	if f.MetaJSON != "" {
		writeFile(tb, filepath.Join(path, "meta.json"), f.MetaJSON)
	}
	if f.Icon {
		writeFile(tb, filepath.Join(path, "icon.png"), "\x89PNG\r\n")
	}
	if !f.NoPlist {
		name := "Info.plist"
		if f.LowercasePlist {
			name = "info.plist"
		}
		writeFile(tb, filepath.Join(contents, name), plist(f))
	}
	if !f.NoIndex {
		writeIndex(tb, filepath.Join(resources, "docSet.dsidx"), f)
	}
	if !f.NoDocuments {
		require.NoError(tb, os.MkdirAll(documents, 0755))
		if !f.NoIndexPage {
			writeFile(tb, filepath.Join(documents, "index.html"),
				"<html><head><title>"+f.Dir+" Documentation</title></head><body></body></html>")
		}
	}
	return path
}

// Exec runs statements against the index of the docset at path.
func Exec(tb testing.TB, path string, statements string) {
	tb.Helper()

	conn, err := sqlite3.Open(filepath.Join(path, "Contents", "Resources", "docSet.dsidx"))
	require.NoError(tb, err)
	defer conn.Close()
	require.NoError(tb, conn.Exec(statements))
}

// Indexes returns the names of the indexes on table in the docset at path.
func Indexes(tb testing.TB, path, table string) []string {
	tb.Helper()

	conn, err := sqlite3.Open(filepath.Join(path, "Contents", "Resources", "docSet.dsidx"))
	require.NoError(tb, err)
	defer conn.Close()

	stmt, _, err := conn.Prepare(`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ?`)
	require.NoError(tb, err)
	defer stmt.Close()
	require.NoError(tb, stmt.BindText(1, table))

	var names []string
	for stmt.Step() {
		names = append(names, stmt.ColumnText(0))
	}
	require.NoError(tb, stmt.Err())
	sort.Strings(names)
	return names
}

func plist(f Fixture) string {
	entries := make(map[string]string, len(f.Plist)+1)
	for k, v := range f.Plist {
		entries[k] = v
	}
	if f.BundleName != "" {
		entries["CFBundleName"] = f.BundleName
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>isDashDocset</key>
	<true/>
`)
	for _, k := range keys {
		fmt.Fprintf(&b, "\t<key>%s</key>\n\t<string>%s</string>\n", k, entries[k])
	}
	b.WriteString("</dict>\n</plist>\n")
	return b.String()
}

func writeIndex(tb testing.TB, path string, f Fixture) {
	tb.Helper()

	conn, err := sqlite3.Open(path)
	require.NoError(tb, err)
	defer conn.Close()

	if f.Modern {
		writeModern(tb, conn, f.Entries)
	} else {
		writeLegacy(tb, conn, f.Entries)
	}
}

func writeLegacy(tb testing.TB, conn *sqlite3.Conn, entries []Entry) {
	tb.Helper()

	require.NoError(tb, conn.Exec(`CREATE TABLE searchIndex(id INTEGER PRIMARY KEY, name TEXT, type TEXT, path TEXT)`))

	stmt, _, err := conn.Prepare(`INSERT INTO searchIndex(name, type, path) VALUES (?, ?, ?)`)
	require.NoError(tb, err)
	defer stmt.Close()

	for _, e := range entries {
		path := e.Path
		if e.Anchor != "" {
			path += "#" + e.Anchor
		}
		require.NoError(tb, stmt.BindText(1, e.Name))
		require.NoError(tb, stmt.BindText(2, e.Type))
		require.NoError(tb, stmt.BindText(3, path))
		require.NoError(tb, stmt.Exec())
		require.NoError(tb, stmt.Reset())
	}
}

func writeModern(tb testing.TB, conn *sqlite3.Conn, entries []Entry) {
	tb.Helper()

	require.NoError(tb, conn.Exec(`
		CREATE TABLE ztokentype (z_pk INTEGER PRIMARY KEY, ztypename TEXT);
		CREATE TABLE zfilepath (z_pk INTEGER PRIMARY KEY, zpath TEXT);
		CREATE TABLE ztokenmetainformation (z_pk INTEGER PRIMARY KEY, zfile INTEGER, zanchor TEXT);
		CREATE TABLE ztoken (z_pk INTEGER PRIMARY KEY, ztokenname TEXT, ztokentype INTEGER, zmetainformation INTEGER);
	`))

	types := make(map[string]int)
	paths := make(map[string]int)

	for i, e := range entries {
		typ, ok := types[e.Type]
		if !ok {
			typ = len(types) + 1
			types[e.Type] = typ
			exec(tb, conn, `INSERT INTO ztokentype(z_pk, ztypename) VALUES (?, ?)`, typ, e.Type)
		}

		file, ok := paths[e.Path]
		if !ok {
			file = len(paths) + 1
			paths[e.Path] = file
			exec(tb, conn, `INSERT INTO zfilepath(z_pk, zpath) VALUES (?, ?)`, file, e.Path)
		}

		var anchor any
		if e.Anchor != "" {
			anchor = e.Anchor
		}
		exec(tb, conn, `INSERT INTO ztokenmetainformation(z_pk, zfile, zanchor) VALUES (?, ?, ?)`, i+1, file, anchor)
		exec(tb, conn, `INSERT INTO ztoken(z_pk, ztokenname, ztokentype, zmetainformation) VALUES (?, ?, ?, ?)`, i+1, e.Name, typ, i+1)
	}
}

func exec(tb testing.TB, conn *sqlite3.Conn, query string, args ...any) {
	tb.Helper()

	stmt, _, err := conn.Prepare(query)
	require.NoError(tb, err)
	defer stmt.Close()

	for i, arg := range args {
		switch v := arg.(type) {
		case nil:
			require.NoError(tb, stmt.BindNull(i+1))
		case int:
			require.NoError(tb, stmt.BindInt(i+1, v))
		case string:
			require.NoError(tb, stmt.BindText(i+1, v))
		default:
			tb.Fatalf("unsupported argument %T", arg)
		}
	}
	require.NoError(tb, stmt.Exec())
}

func writeFile(tb testing.TB, path, content string) {
	tb.Helper()
	require.NoError(tb, os.WriteFile(path, []byte(content), 0644))
}
