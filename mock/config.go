package mock

import "github.com/fwojciec/zealdoc"

var _ zealdoc.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a mock implementation of zealdoc.ConfigStore.
type ConfigStore struct {
	DocsetsPathFn       func() string
	SetDocsetsPathFn    func(path string)
	EnabledDocsetsFn    func() []string
	SetEnabledDocsetsFn func(titles []string)
	SaveFn              func() error
}

func (s *ConfigStore) DocsetsPath() string               { return s.DocsetsPathFn() }
func (s *ConfigStore) SetDocsetsPath(path string)        { s.SetDocsetsPathFn(path) }
func (s *ConfigStore) EnabledDocsets() []string          { return s.EnabledDocsetsFn() }
func (s *ConfigStore) SetEnabledDocsets(titles []string) { s.SetEnabledDocsetsFn(titles) }
func (s *ConfigStore) Save() error                       { return s.SaveFn() }
