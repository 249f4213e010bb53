package zealdoc

import "slices"

// ConfigStore persists the docsets directory and the set of enabled
// docsets between runs.
type ConfigStore interface {
	DocsetsPath() string
	SetDocsetsPath(path string)

	// EnabledDocsets returns the titles of enabled docsets.
	EnabledDocsets() []string
	SetEnabledDocsets(titles []string)

	// Save writes pending changes to storage.
	Save() error
}

// Enable returns enabled with title added, keeping it sorted and unique.
func Enable(enabled []string, title string) []string {
	if slices.Contains(enabled, title) {
		return enabled
	}
	out := append(slices.Clone(enabled), title)
	slices.Sort(out)
	return out
}

// Disable returns enabled without title.
func Disable(enabled []string, title string) []string {
	return slices.DeleteFunc(slices.Clone(enabled), func(s string) bool { return s == title })
}
