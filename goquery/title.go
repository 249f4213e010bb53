package goquery

import (
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/zealdoc"
)

// Ensure TitleReader implements zealdoc.TitleReader.
var _ zealdoc.TitleReader = (*TitleReader)(nil)

// TitleReader reads page titles from HTML files on disk.
type TitleReader struct{}

// NewTitleReader creates a new TitleReader.
func NewTitleReader() *TitleReader {
	return &TitleReader{}
}

// ReadTitle returns the whitespace-collapsed text of the first <title>
// element of the page at path, or "" when the page has none.
func (r *TitleReader) ReadTitle(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", zealdoc.Errorf(zealdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	title := doc.Find("head title").First()
	if title.Length() == 0 {
		title = doc.Find("title").First()
	}
	return strings.Join(strings.Fields(title.Text()), " "), nil
}
