package main

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/fwojciec/zealdoc"
)

// Run executes the related command.
func (c *RelatedCmd) Run(deps *Dependencies) error {
	u, err := pageURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zealdoc.ErrorMessage(err))
		return err
	}

	if err := loadDocsets(deps); err != nil {
		return err
	}

	for _, d := range deps.Registry.Docsets() {
		if _, ok := zealdoc.PagePath(d.DocumentPath(), u); !ok {
			continue
		}
		results, err := d.RelatedLinks(deps.Ctx, u)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			break
		}
		for _, r := range results {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.Type, r.Name, r.URL)
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "No related links for %s.\n", u)
	return nil
}

// pageURL accepts a file URL or a local path.
func pageURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err == nil && u.Scheme == "file" {
		return u, nil
	}
	if err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return nil, zealdoc.Errorf(zealdoc.EINVALID, "unsupported URL scheme %q", u.Scheme)
	}

	path, fragment, _ := strings.Cut(s, "#")
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return zealdoc.PageURL(filepath.Dir(abs), filepath.Base(abs), fragment), nil
}
