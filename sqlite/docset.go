package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/zealdoc"
)

// Compile-time interface verification.
var (
	_ zealdoc.Docset       = (*Docset)(nil)
	_ zealdoc.DocsetLoader = (*Loader)(nil)
)

// Docset directory layout.
const (
	metaJSONFile   = "meta.json"
	contentsDir    = "Contents"
	resourcesDir   = "Resources"
	documentsDir   = "Documents"
	indexFile      = "docSet.dsidx"
	defaultPage    = "index.html"
	docsetSuffix   = ".docset"
	cheatsheetName = "cheatsheet"
	cheatsSuffix   = "cheats"
)

// Loader opens docsets from disk.
type Loader struct {
	Plists zealdoc.PlistReader
	Logger *slog.Logger
}

// NewLoader creates a new Loader reading bundle metadata with plists.
func NewLoader(plists zealdoc.PlistReader) *Loader {
	return &Loader{
		Plists: plists,
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Load opens the docset at path.
func (l *Loader) Load(ctx context.Context, path string) (zealdoc.Docset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.Open(path), nil
}

// Open opens the docset at path. Problems with the directory layout,
// metadata or index leave the returned docset invalid; they are logged
// at warn level.
func (l *Loader) Open(path string) *Docset {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	d := &Docset{
		path:         path,
		documentPath: filepath.Join(path, contentsDir, resourcesDir, documentsDir),
		symbols:      make(map[string]*symbolCache),
		logger:       l.logger().With("docset", path),
	}
	d.load(l.Plists)
	return d
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}

// Docset is a docset backed by its SQLite index.
type Docset struct {
	path         string
	documentPath string
	variant      zealdoc.Variant
	meta         zealdoc.Metadata
	indexURL     *url.URL

	db     *DB
	schema *schema

	symbolCounts map[string]int
	// rawTypes maps canonical categories to the labels stored in the index.
	rawTypes map[string][]string

	// queryMu serializes statements; the DB has a single cursor. db is
	// nil once closed.
	queryMu sync.Mutex
	closed  atomic.Bool

	symbolsMu sync.Mutex
	symbols   map[string]*symbolCache

	logger *slog.Logger
}

// symbolCache holds the symbol index of one category. index is nil until
// the category has been loaded.
type symbolCache struct {
	mu    sync.Mutex
	index *zealdoc.SymbolIndex
}

func (d *Docset) load(plists zealdoc.PlistReader) {
	if fi, err := os.Stat(d.path); err != nil || !fi.IsDir() {
		d.logger.Warn("docset directory does not exist")
		return
	}

	d.loadMetadata()
	d.meta.Icon = findIcon(d.path)

	contents := filepath.Join(d.path, contentsDir)
	plistPath := filepath.Join(contents, "Info.plist")
	if !exists(plistPath) {
		plistPath = filepath.Join(contents, "info.plist")
		if !exists(plistPath) {
			d.logger.Warn("docset has no Info.plist")
			return
		}
	}

	plist, err := plists.ReadPlist(plistPath)
	if err != nil {
		d.logger.Warn("cannot read Info.plist", "err", err)
		return
	}

	d.applyBundleNames(plist)

	indexPath := filepath.Join(contents, resourcesDir, indexFile)
	if !exists(indexPath) {
		d.logger.Warn("docset has no index", "path", indexPath)
		return
	}

	db := NewDB(indexPath)
	if err := db.Open(); err != nil {
		d.logger.Warn("cannot open docset index", "err", err)
		return
	}

	tables, err := db.Tables()
	if err != nil {
		d.logger.Warn("cannot list docset tables", "err", err)
		db.Close()
		return
	}

	variant := zealdoc.VariantModern
	if slices.Contains(tables, "searchIndex") {
		variant = zealdoc.VariantLegacy
	}
	d.db, d.schema, d.variant = db, schemas[variant], variant

	if err := d.createIndex(); err != nil {
		d.logger.Warn("cannot create name index", "err", err)
	}

	if !isDir(d.documentPath) {
		d.logger.Warn("docset has no Documents directory")
		d.invalidate()
		return
	}

	d.meta.Keywords = appendUnique(d.meta.Keywords, bundleKeywords(plist)...)

	// An index path from the bundle wins over meta.json.
	if p, ok := plist.String(zealdoc.PlistIndexFilePath); ok {
		d.meta.IndexFilePath = p
		d.indexURL = d.PageURL(p, "")
	} else if d.indexURL == nil {
		if exists(filepath.Join(d.documentPath, defaultPage)) {
			d.meta.IndexFilePath = defaultPage
			d.indexURL = d.PageURL(defaultPage, "")
		} else {
			d.logger.Warn("cannot determine index file")
		}
	}

	if err := d.countSymbols(); err != nil {
		d.logger.Warn("cannot count symbols", "err", err)
	}
}

// loadMetadata reads the optional meta.json sidecar.
func (d *Docset) loadMetadata() {
	path := filepath.Join(d.path, metaJSONFile)
	if !exists(path) {
		return
	}

	m, err := zealdoc.ReadMetaJSON(path)
	if err != nil {
		d.logger.Warn("cannot read meta.json", "err", err)
		return
	}

	d.meta.Name = m.Name
	d.meta.Title = m.Title
	d.meta.Version = m.Version
	d.meta.Revision = m.Revision

	if m.Extra != nil {
		if m.Extra.IndexFilePath != nil {
			d.meta.IndexFilePath = *m.Extra.IndexFilePath
			d.indexURL = d.PageURL(*m.Extra.IndexFilePath, "")
		}
		d.meta.Keywords = appendUnique(d.meta.Keywords, m.Extra.Keywords...)
	}
}

// applyBundleNames fills name and title from the bundle when meta.json
// did not provide them.
func (d *Docset) applyBundleNames(plist zealdoc.Plist) {
	if d.meta.Name == "" {
		if name, ok := plist.String(zealdoc.PlistBundleName); ok && name != "" {
			d.meta.Name = strings.ReplaceAll(name, " ", "_")
			if d.meta.Title == "" {
				d.meta.Title = name
			}
		} else {
			d.meta.Name = strings.TrimSuffix(filepath.Base(d.path), docsetSuffix)
		}
	}

	if d.meta.Title == "" {
		d.meta.Title = strings.ReplaceAll(d.meta.Name, "_", " ")
	}

	if family, _ := plist.String(zealdoc.PlistDocSetFamily); family == cheatsheetName {
		d.meta.Name += cheatsSuffix
	}
}

// bundleKeywords returns the search keywords declared by the bundle.
func bundleKeywords(plist zealdoc.Plist) []string {
	var keywords []string
	for _, key := range []string{
		zealdoc.PlistPlatformFamily,
		zealdoc.PlistDocSetPluginKeyword,
		zealdoc.PlistDocSetKeyword,
	} {
		if kw, ok := plist.String(key); ok {
			keywords = append(keywords, kw)
		}
	}
	if kw, ok := plist.String(zealdoc.PlistDocSetFamily); ok && kw != "dashtoc" && kw != "unsorteddashtoc" {
		keywords = append(keywords, kw)
	}
	return keywords
}

// createIndex builds the case-insensitive name index, replacing indexes
// left by earlier versions.
func (d *Docset) createIndex() error {
	d.queryMu.Lock()
	defer d.queryMu.Unlock()

	if err := d.db.Execute(fmt.Sprintf("PRAGMA index_list('%s')", d.schema.table)); err != nil {
		return err
	}

	var current bool
	var stale []string
	for d.db.Next() {
		name := d.db.Value(1).String()
		if !strings.HasPrefix(name, IndexNamePrefix) {
			continue
		}
		if strings.HasSuffix(name, IndexNameVersion) {
			current = true
			continue
		}
		stale = append(stale, name)
	}
	if err := d.db.err(); err != nil {
		return err
	}

	for _, name := range stale {
		if err := d.exec(fmt.Sprintf(`DROP INDEX IF EXISTS "%s"`, name)); err != nil {
			return fmt.Errorf("dropping %s: %w", name, err)
		}
	}

	if current {
		return nil
	}
	return d.exec(fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s COLLATE NOCASE)",
		d.schema.indexName(), d.schema.table, d.schema.nameColumn))
}

// exec runs a statement that returns no rows. Callers hold queryMu.
func (d *Docset) exec(query string) error {
	if err := d.db.Execute(query); err != nil {
		return err
	}
	for d.db.Next() {
	}
	return d.db.err()
}

func (d *Docset) countSymbols() error {
	d.queryMu.Lock()
	defer d.queryMu.Unlock()

	if err := d.db.Execute(d.schema.countSymbols); err != nil {
		return err
	}

	counts := make(map[string]int)
	raw := make(map[string][]string)
	for d.db.Next() {
		label := d.db.Value(0).String()
		category := zealdoc.ParseSymbolType(label)
		raw[category] = append(raw[category], label)
		counts[category] += d.db.Value(1).Int()
	}
	if err := d.db.err(); err != nil {
		return err
	}

	d.symbolCounts, d.rawTypes = counts, raw
	return nil
}

// invalidate marks the docset unusable and releases its index.
func (d *Docset) invalidate() {
	d.variant = zealdoc.VariantInvalid
	d.schema = nil
	if d.db != nil {
		d.db.Close()
		d.db = nil
	}
}

// IsValid reports whether the docset loaded completely and is not closed.
func (d *Docset) IsValid() bool {
	return d.variant != zealdoc.VariantInvalid && !d.closed.Load()
}

func (d *Docset) Name() string               { return d.meta.Name }
func (d *Docset) Title() string              { return d.meta.Title }
func (d *Docset) Metadata() zealdoc.Metadata { return d.meta }
func (d *Docset) Path() string               { return d.path }
func (d *Docset) DocumentPath() string       { return d.documentPath }
func (d *Docset) Icon() string               { return d.meta.Icon }
func (d *Docset) IndexFileURL() *url.URL     { return d.indexURL }

// Variant returns the index schema, or VariantInvalid once closed.
func (d *Docset) Variant() zealdoc.Variant {
	if d.closed.Load() {
		return zealdoc.VariantInvalid
	}
	return d.variant
}

// SymbolCounts returns a copy of the per-category symbol counts.
func (d *Docset) SymbolCounts() map[string]int {
	counts := make(map[string]int, len(d.symbolCounts))
	for k, v := range d.symbolCounts {
		counts[k] = v
	}
	return counts
}

// PageURL resolves path and fragment under the document root.
func (d *Docset) PageURL(path, fragment string) *url.URL {
	return zealdoc.PageURL(d.documentPath, path, fragment)
}

// Close releases the docset index.
func (d *Docset) Close() error {
	d.queryMu.Lock()
	defer d.queryMu.Unlock()
	d.closed.Store(true)
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

func findIcon(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasPrefix(e.Name(), "icon.") {
			return filepath.Join(dir, e.Name())
		}
	}
	return ""
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
