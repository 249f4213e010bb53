package zealdoc

import (
	"encoding/json"
	"fmt"
	"os"
)

// Info.plist keys read from docset bundles.
const (
	PlistBundleName          = "CFBundleName"
	PlistDocSetFamily        = "DashDocSetFamily"
	PlistDocSetKeyword       = "DashDocSetKeyword"
	PlistDocSetPluginKeyword = "DashDocSetPluginKeyword"
	PlistIndexFilePath       = "dashIndexFilePath"
	PlistPlatformFamily      = "DocSetPlatformFamily"
	PlistIsJavaScriptEnabled = "isJavaScriptEnabled"
)

// Metadata describes a docset. It is computed once when the docset is
// opened and not modified afterwards.
type Metadata struct {
	Name          string   `json:"name"`
	Title         string   `json:"title"`
	Version       string   `json:"version"`
	Revision      string   `json:"revision"`
	Keywords      []string `json:"keywords,omitempty"`
	IndexFilePath string   `json:"indexFilePath,omitempty"`
	Icon          string   `json:"icon,omitempty"`
}

// MetaJSON is the optional meta.json sidecar written by docset feeds.
type MetaJSON struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Version  string `json:"version"`
	Revision string `json:"revision"`
	Extra    *struct {
		IndexFilePath *string  `json:"indexFilePath"`
		Keywords      []string `json:"keywords"`
	} `json:"extra"`
}

// ReadMetaJSON reads and parses a meta.json file.
func ReadMetaJSON(path string) (*MetaJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m MetaJSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

// Plist holds the scalar entries of an XML property list. Values are
// either string or bool.
type Plist map[string]any

// String returns the string value for key.
func (p Plist) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// Bool returns the boolean value for key.
func (p Plist) Bool(key string) (v bool, ok bool) {
	v, ok = p[key].(bool)
	return v, ok
}

// PlistReader parses property list files.
type PlistReader interface {
	// ReadPlist parses the property list at path. Unsupported value types
	// are skipped. Returns an error if the file cannot be read or is not
	// well-formed XML.
	ReadPlist(path string) (Plist, error)
}
