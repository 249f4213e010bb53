// Package toml stores zealdoc configuration in a TOML file using
// github.com/pelletier/go-toml/v2.
package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/fwojciec/zealdoc"
	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

// Ensure ConfigStore implements zealdoc.ConfigStore.
var _ zealdoc.ConfigStore = (*ConfigStore)(nil)

// FileName is the name of the configuration file inside the config directory.
const FileName = "config.toml"

type config struct {
	DocsetsPath    string   `toml:"docsets_path,omitempty"`
	EnabledDocsets []string `toml:"enabled_docsets"`
}

// ConfigStore is a file-based zealdoc.ConfigStore. Changes are kept in
// memory until Save; Save holds an exclusive lock on a sibling lock file so
// concurrent processes do not interleave writes.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     config

	// DefaultDocsetsPath is returned by DocsetsPath when no path is
	// configured. It is computed lazily when empty.
	DefaultDocsetsPath string
}

// NewConfigStore creates a store backed by configDir/config.toml, creating
// the directory if needed. If configDir is empty, the user config
// directory's zealdoc subdirectory is used.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(dir, "zealdoc")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{filePath: filepath.Join(configDir, FileName)}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string { return s.filePath }

// Load reads the configuration file, discarding unsaved changes. A missing
// file yields an empty configuration.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		s.data = config{}
		return nil
	} else if err != nil {
		return err
	}

	var loaded config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return zealdoc.Errorf(zealdoc.EINVALID, "invalid config file %s: %v", s.filePath, err)
	}
	s.data = loaded
	return nil
}

// DocsetsPath returns the configured docsets directory, or the default.
func (s *ConfigStore) DocsetsPath() string {
	s.mu.RLock()
	path, def := s.data.DocsetsPath, s.DefaultDocsetsPath
	s.mu.RUnlock()

	if path != "" {
		return path
	}
	if def != "" {
		return def
	}
	return DefaultDocsetsPath()
}

func (s *ConfigStore) SetDocsetsPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.DocsetsPath = path
}

// EnabledDocsets returns the titles of enabled docsets.
func (s *ConfigStore) EnabledDocsets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.EnabledDocsets)
}

func (s *ConfigStore) SetEnabledDocsets(titles []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.EnabledDocsets = slices.Clone(titles)
}

// Save writes the configuration. The file is replaced atomically.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock := flock.New(s.filePath + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("cannot lock config: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DefaultDocsetsPath returns the docsets directory of a Zeal installation
// when it exists, and the home directory otherwise.
func DefaultDocsetsPath() string {
	if dir, err := dataDir(); err == nil {
		path := filepath.Join(dir, "Zeal", "Zeal", "docsets")
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			if resolved, err := filepath.EvalSymlinks(path); err == nil {
				return resolved
			}
			return path
		}
	}
	home, _ := os.UserHomeDir()
	return home
}

// dataDir returns the per-user application data directory.
func dataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		return "", errors.New("%LOCALAPPDATA% is not defined")
	case "darwin", "ios":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}
