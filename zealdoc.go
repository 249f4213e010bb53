// Package zealdoc provides offline API documentation search over docsets.
// A docset is a directory holding an SQLite symbol index and static HTML
// pages, as produced for Dash and Zeal. zealdoc opens docsets, ranks their
// symbols with a fuzzy scorer and resolves symbols to local page URLs.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, toml/).
package zealdoc
