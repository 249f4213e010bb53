package mock

import "github.com/fwojciec/zealdoc"

var _ zealdoc.PlistReader = (*PlistReader)(nil)

// PlistReader is a mock implementation of zealdoc.PlistReader.
type PlistReader struct {
	ReadPlistFn func(path string) (zealdoc.Plist, error)
}

func (r *PlistReader) ReadPlist(path string) (zealdoc.Plist, error) {
	return r.ReadPlistFn(path)
}

var _ zealdoc.TitleReader = (*TitleReader)(nil)

// TitleReader is a mock implementation of zealdoc.TitleReader.
type TitleReader struct {
	ReadTitleFn func(path string) (string, error)
}

func (r *TitleReader) ReadTitle(path string) (string, error) {
	return r.ReadTitleFn(path)
}
