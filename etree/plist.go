// Package etree reads XML property lists using github.com/beevik/etree.
package etree

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/fwojciec/zealdoc"
)

// Ensure PlistReader implements zealdoc.PlistReader.
var _ zealdoc.PlistReader = (*PlistReader)(nil)

// PlistReader parses the subset of the XML property list format used by
// docset bundles: <key> elements followed by <string>, <true/> or <false/>.
// Keys with any other value type are skipped.
type PlistReader struct{}

// NewPlistReader creates a new PlistReader.
func NewPlistReader() *PlistReader {
	return &PlistReader{}
}

// ReadPlist parses the property list file at path.
func (r *PlistReader) ReadPlist(path string) (zealdoc.Plist, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("parsing plist %s: %w", path, err)
	}
	if doc.Root() == nil {
		return nil, zealdoc.Errorf(zealdoc.EINVALID, "plist %s has no root element", path)
	}
	return parsePlist(doc.Root()), nil
}

// parsePlist collects every key/value pair under root in document order.
// Later keys override earlier ones.
func parsePlist(root *etree.Element) zealdoc.Plist {
	plist := make(zealdoc.Plist)
	for _, key := range root.FindElements("//key") {
		value := nextElement(key)
		if value == nil {
			continue
		}
		switch value.Tag {
		case "string":
			plist[key.Text()] = value.Text()
		case "true":
			plist[key.Text()] = true
		case "false":
			plist[key.Text()] = false
		}
	}
	return plist
}

// nextElement returns the element sibling following el, or nil.
func nextElement(el *etree.Element) *etree.Element {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.ChildElements()
	for i, sib := range siblings {
		if sib == el && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}
	return nil
}
