package zealdoc

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// dashEntryRe matches the Dash table-of-contents placeholders embedded in
// some index paths.
var dashEntryRe = regexp.MustCompile(`<dash_entry_.*>`)

// PageURL builds a file URL for a page stored under the document root.
// When fragment is empty, path is split on its first '#'.
//
// Fragments beginning with "//apple_ref" or "//dash_ref" carry structured
// symbol references and are stored verbatim; any '%' in them is literal.
// Other fragments may already contain percent escapes, which are kept.
func PageURL(documentRoot, path, fragment string) *url.URL {
	if fragment == "" {
		path, fragment, _ = strings.Cut(path, "#")
	}

	path = dashEntryRe.ReplaceAllString(path, "")
	fragment = dashEntryRe.ReplaceAllString(fragment, "")

	if !filepath.IsAbs(path) {
		path = filepath.Join(documentRoot, path)
	}
	u := fileURL(path)

	if fragment == "" {
		return u
	}

	if strings.HasPrefix(fragment, "//apple_ref") || strings.HasPrefix(fragment, "//dash_ref") {
		u.Fragment = fragment
		return u
	}

	if unescaped, err := url.PathUnescape(fragment); err == nil {
		u.Fragment = unescaped
		u.RawFragment = fragment
	} else {
		u.Fragment = fragment
	}
	return u
}

// PagePath returns the page path of u relative to documentRoot, without
// its fragment. ok is false when u does not point under documentRoot.
func PagePath(documentRoot string, u *url.URL) (path string, ok bool) {
	if u == nil {
		return "", false
	}
	root := filepath.ToSlash(filepath.Clean(documentRoot))
	i := strings.Index(u.Path, root)
	if i == -1 {
		return "", false
	}
	path = strings.TrimPrefix(u.Path[i+len(root):], "/")
	return path, path != ""
}

func fileURL(path string) *url.URL {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths become file:///C:/...
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}
}
