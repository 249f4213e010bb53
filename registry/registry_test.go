package registry_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/zealdoc"
	"github.com/fwojciec/zealdoc/docsettest"
	"github.com/fwojciec/zealdoc/etree"
	"github.com/fwojciec/zealdoc/mock"
	"github.com/fwojciec/zealdoc/registry"
	"github.com/fwojciec/zealdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// config is an in-memory ConfigStore.
type config struct {
	mu      sync.Mutex
	path    string
	enabled []string
}

func newConfig(path string, enabled ...string) *mock.ConfigStore {
	c := &config{path: path, enabled: enabled}
	return &mock.ConfigStore{
		DocsetsPathFn: func() string { return c.path },
		EnabledDocsetsFn: func() []string {
			c.mu.Lock()
			defer c.mu.Unlock()
			return slices.Clone(c.enabled)
		},
		SetEnabledDocsetsFn: func(titles []string) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.enabled = titles
		},
	}
}

func buildRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	docsettest.Build(t, root, docsettest.Fixture{
		Dir:        "Qt_5",
		BundleName: "Qt 5",
		Entries: []docsettest.Entry{
			{Name: "QString", Type: "Class", Path: "qstring.html"},
			{Name: "QStringList", Type: "Class", Path: "qstringlist.html"},
		},
	})
	docsettest.Build(t, root, docsettest.Fixture{
		Dir:    "Go",
		Modern: true,
		Entries: []docsettest.Entry{
			{Name: "strings", Type: "Package", Path: "strings.html"},
			{Name: "String", Type: "Method", Path: "fmt.html", Anchor: "Stringer.String"},
		},
	})
	docsettest.Build(t, root, docsettest.Fixture{Dir: "Broken", NoIndex: true})
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("not a docset"), 0644))
	return root
}

func newRegistry(t *testing.T, cfg zealdoc.ConfigStore) *registry.Registry {
	t.Helper()

	r := registry.New(sqlite.NewLoader(etree.NewPlistReader()), cfg)
	t.Cleanup(func() { r.Close() })
	return r
}

func titles(r *registry.Registry) []string {
	var out []string
	for _, d := range r.Docsets() {
		out = append(out, d.Title())
	}
	return out
}

func TestAvailableDocsets(t *testing.T) {
	t.Parallel()

	t.Run("lists valid docsets in directory order", func(t *testing.T) {
		t.Parallel()

		root := buildRoot(t)

		infos, err := registry.AvailableDocsets(context.Background(), sqlite.NewLoader(etree.NewPlistReader()), root)
		require.NoError(t, err)
		assert.Equal(t, []zealdoc.DocsetInfo{
			{Name: "Go", Title: "Go", Path: filepath.Join(root, "Go.docset")},
			{Name: "Qt_5", Title: "Qt 5", Path: filepath.Join(root, "Qt_5.docset")},
		}, infos)
	})

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()

		infos, err := registry.AvailableDocsets(context.Background(), sqlite.NewLoader(etree.NewPlistReader()), filepath.Join(t.TempDir(), "missing"))
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run("loader errors close loaded docsets", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, "A.docset"), 0755))
		require.NoError(t, os.Mkdir(filepath.Join(root, "B.docset"), 0755))

		var mu sync.Mutex
		closed := 0
		loader := &mock.DocsetLoader{
			LoadFn: func(_ context.Context, path string) (zealdoc.Docset, error) {
				if filepath.Base(path) == "B.docset" {
					return nil, errors.New("boom")
				}
				return &mock.Docset{
					IsValidFn: func() bool { return true },
					CloseFn: func() error {
						mu.Lock()
						defer mu.Unlock()
						closed++
						return nil
					},
				}, nil
			},
		}

		_, err := registry.AvailableDocsets(context.Background(), loader, root)
		require.ErrorContains(t, err, "boom")
		assert.LessOrEqual(t, closed, 1)
	})
}

func TestRegistry_Reload(t *testing.T) {
	t.Parallel()

	t.Run("loads enabled docsets by title", func(t *testing.T) {
		t.Parallel()

		r := newRegistry(t, newConfig(buildRoot(t), "Qt 5", "Go", "Missing"))

		changed, err := r.Reload(context.Background())
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"Go", "Qt 5"}, titles(r))

		changed, err = r.Reload(context.Background())
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Len(t, r.Providers(), 2)
	})

	t.Run("unloads disabled docsets", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig(buildRoot(t), "Qt 5", "Go")
		r := newRegistry(t, cfg)

		_, err := r.Reload(context.Background())
		require.NoError(t, err)
		qt, err := r.Docset("Qt 5")
		require.NoError(t, err)

		cfg.SetEnabledDocsets([]string{"Go"})
		changed, err := r.Reload(context.Background())
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"Go"}, titles(r))
		assert.False(t, qt.IsValid(), "unloaded docsets are closed")
	})

	t.Run("skips invalid docsets", func(t *testing.T) {
		t.Parallel()

		r := newRegistry(t, newConfig(buildRoot(t), "Broken"))

		changed, err := r.Reload(context.Background())
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, r.Docsets())
	})
}

func TestRegistry_Docset(t *testing.T) {
	t.Parallel()

	r := newRegistry(t, newConfig(buildRoot(t), "Qt 5"))
	_, err := r.Reload(context.Background())
	require.NoError(t, err)

	byTitle, err := r.Docset("Qt 5")
	require.NoError(t, err)
	byName, err := r.Docset("Qt_5")
	require.NoError(t, err)
	assert.Same(t, byTitle, byName)

	_, err = r.Docset("Go")
	assert.Equal(t, zealdoc.ENOTFOUND, zealdoc.ErrorCode(err))
	assert.Nil(t, r.Provider("Go"))
}

func TestRegistry_Search(t *testing.T) {
	t.Parallel()

	t.Run("merges docsets by score then name", func(t *testing.T) {
		t.Parallel()

		r := newRegistry(t, newConfig(buildRoot(t), "Qt 5", "Go"))
		_, err := r.Reload(context.Background())
		require.NoError(t, err)

		results, err := r.Search(context.Background(), "string", 0)
		require.NoError(t, err)

		var got []string
		for _, res := range results {
			got = append(got, res.Docset.Title()+"/"+res.Name)
		}
		assert.Equal(t, []string{"Go/String", "Go/strings", "Qt 5/QString", "Qt 5/QStringList"}, got)
		assert.Equal(t, 100, results[0].Score)

		limited, err := r.Search(context.Background(), "string", 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("propagates docset errors", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, "A.docset"), 0755))

		loader := &mock.DocsetLoader{
			LoadFn: func(context.Context, string) (zealdoc.Docset, error) {
				return &mock.Docset{
					IsValidFn:      func() bool { return true },
					TitleFn:        func() string { return "A" },
					SymbolCountsFn: func() map[string]int { return nil },
					SearchFn: func(context.Context, string, zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error) {
						return nil, zealdoc.Errorf(zealdoc.EINTERNAL, "broken index")
					},
				}, nil
			},
		}
		r := registry.New(loader, newConfig(root, "A"))
		defer r.Close()

		_, err := r.Reload(context.Background())
		require.NoError(t, err)

		_, err = r.Search(context.Background(), "x", 0)
		require.Error(t, err)
		assert.Equal(t, zealdoc.EINTERNAL, zealdoc.ErrorCode(err))
	})

	t.Run("context cancellation reaches docsets", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, "A.docset"), 0755))

		ctx, cancel := context.WithCancel(context.Background())
		loader := &mock.DocsetLoader{
			LoadFn: func(context.Context, string) (zealdoc.Docset, error) {
				return &mock.Docset{
					IsValidFn:      func() bool { return true },
					TitleFn:        func() string { return "A" },
					SymbolCountsFn: func() map[string]int { return nil },
					SearchFn: func(_ context.Context, _ string, token zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error) {
						cancel()
						assert.Eventually(t, token.IsCanceled, time.Second, time.Millisecond)
						return nil, nil
					},
				}, nil
			},
		}
		r := registry.New(loader, newConfig(root, "A"))
		defer r.Close()

		_, err := r.Reload(context.Background())
		require.NoError(t, err)

		_, err = r.Search(ctx, "x", 0)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSortResults(t *testing.T) {
	t.Parallel()

	results := []*zealdoc.SearchResult{
		{Name: "b", Score: 90},
		{Name: "c", Score: 100},
		{Name: "a", Score: 90},
	}
	registry.SortResults(results)

	assert.Equal(t, "c", results[0].Name)
	assert.Equal(t, "a", results[1].Name)
	assert.Equal(t, "b", results[2].Name)
}
