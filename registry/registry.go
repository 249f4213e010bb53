// Package registry keeps the set of enabled docsets open and searches
// across them.
package registry

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"sync"

	"github.com/fwojciec/zealdoc"
	"golang.org/x/sync/errgroup"
)

// AvailableDocsets opens every subdirectory of root as a docset and returns
// the valid ones in directory order. A missing root has no docsets.
func AvailableDocsets(ctx context.Context, loader zealdoc.DocsetLoader, root string) ([]zealdoc.DocsetInfo, error) {
	docsets, err := scan(ctx, loader, root)
	if err != nil {
		return nil, err
	}

	infos := make([]zealdoc.DocsetInfo, 0, len(docsets))
	for _, d := range docsets {
		infos = append(infos, zealdoc.DocsetInfo{Name: d.Name(), Title: d.Title(), Path: d.Path()})
		d.Close()
	}
	return infos, nil
}

// scan loads the valid docsets under root concurrently. Invalid docsets are
// closed. The caller owns the returned docsets.
func scan(ctx context.Context, loader zealdoc.DocsetLoader, root string) ([]zealdoc.Docset, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, zealdoc.Errorf(zealdoc.EINVALID, "cannot read docsets directory: %v", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}

	loaded := make([]zealdoc.Docset, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, dir := range dirs {
		g.Go(func() error {
			d, err := loader.Load(gctx, dir)
			if err != nil {
				return err
			}
			if !d.IsValid() {
				d.Close()
				return nil
			}
			loaded[i] = d
			return nil
		})
	}
	err = g.Wait()

	docsets := slices.DeleteFunc(loaded, func(d zealdoc.Docset) bool { return d == nil })
	if err != nil {
		for _, d := range docsets {
			d.Close()
		}
		return nil, err
	}
	return docsets, nil
}

// Registry holds a Provider for every enabled docset.
type Registry struct {
	Loader zealdoc.DocsetLoader
	Config zealdoc.ConfigStore

	// Titles reads index page titles for home page entries. Optional.
	Titles zealdoc.TitleReader

	Logger *slog.Logger

	mu        sync.RWMutex
	providers []*Provider
}

// New creates a new Registry. Call Reload to open the enabled docsets.
func New(loader zealdoc.DocsetLoader, config zealdoc.ConfigStore) *Registry {
	return &Registry{
		Loader: loader,
		Config: config,
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Reload closes docsets that are no longer enabled and opens newly enabled
// ones found under the configured docsets path. Docsets are matched on
// title. changed reports whether the set of providers changed.
func (r *Registry) Reload(ctx context.Context) (changed bool, err error) {
	enabled := r.Config.EnabledDocsets()

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.providers[:0]
	for _, p := range r.providers {
		if slices.Contains(enabled, p.Name()) {
			kept = append(kept, p)
			continue
		}
		if err := p.Docset().Close(); err != nil {
			r.logger().Warn("cannot close docset", "docset", p.Name(), "err", err)
		}
		changed = true
	}
	clear(r.providers[len(kept):])
	r.providers = kept

	found, err := scan(ctx, r.Loader, r.Config.DocsetsPath())
	if err != nil {
		return changed, err
	}

	for _, d := range found {
		title := d.Title()
		if !slices.Contains(enabled, title) || r.provider(title) != nil {
			d.Close()
			continue
		}

		p, err := NewProvider(ctx, d, r.Titles)
		if err != nil {
			r.logger().Warn("cannot load docset", "docset", title, "err", err)
			d.Close()
			continue
		}
		r.providers = append(r.providers, p)
		changed = true
	}

	sort.SliceStable(r.providers, func(i, j int) bool {
		return r.providers[i].Name() < r.providers[j].Name()
	})
	return changed, nil
}

// Providers returns the loaded providers ordered by title.
func (r *Registry) Providers() []*Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.providers)
}

// Provider returns the provider whose docset has the given title or name,
// or nil.
func (r *Registry) Provider(name string) *Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p := r.provider(name); p != nil {
		return p
	}
	for _, p := range r.providers {
		if p.Docset().Name() == name {
			return p
		}
	}
	return nil
}

// provider looks up by title. Callers hold r.mu.
func (r *Registry) provider(title string) *Provider {
	for _, p := range r.providers {
		if p.Name() == title {
			return p
		}
	}
	return nil
}

// Docset returns the loaded docset with the given title or name.
func (r *Registry) Docset(name string) (zealdoc.Docset, error) {
	p := r.Provider(name)
	if p == nil {
		return nil, zealdoc.Errorf(zealdoc.ENOTFOUND, "docset %q is not loaded", name)
	}
	return p.Docset(), nil
}

// Docsets returns the loaded docsets ordered by title.
func (r *Registry) Docsets() []zealdoc.Docset {
	providers := r.Providers()
	docsets := make([]zealdoc.Docset, len(providers))
	for i, p := range providers {
		docsets[i] = p.Docset()
	}
	return docsets
}

// Search searches every loaded docset concurrently and merges the results,
// best score first and then by name. limit <= 0 returns every result.
// Canceling ctx stops the docset queries between rows.
func (r *Registry) Search(ctx context.Context, query string, limit int) ([]*zealdoc.SearchResult, error) {
	docsets := r.Docsets()

	token := zealdoc.NewCancellationToken()
	stop := token.CancelOnDone(ctx)
	defer stop()

	found := make([][]*zealdoc.SearchResult, len(docsets))
	var g errgroup.Group
	for i, d := range docsets {
		g.Go(func() error {
			results, err := d.Search(ctx, query, token)
			if err != nil {
				token.Cancel()
				return err
			}
			found[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []*zealdoc.SearchResult
	for _, rs := range found {
		results = append(results, rs...)
	}
	SortResults(results)

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SortResults orders results by score descending, then by name.
func SortResults(results []*zealdoc.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})
}

// Close closes every loaded docset.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, p := range r.providers {
		errs = append(errs, p.Docset().Close())
	}
	r.providers = nil
	return errors.Join(errs...)
}

func (r *Registry) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}
