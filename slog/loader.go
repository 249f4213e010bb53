package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/zealdoc"
)

// Ensure LoggingLoader implements zealdoc.DocsetLoader.
var _ zealdoc.DocsetLoader = (*LoggingLoader)(nil)

// LoggingLoader wraps a DocsetLoader, logging every load. Loaded docsets
// are returned with their searches logged.
type LoggingLoader struct {
	next   zealdoc.DocsetLoader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next zealdoc.DocsetLoader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the outcome.
func (l *LoggingLoader) Load(ctx context.Context, path string) (zealdoc.Docset, error) {
	begin := time.Now()
	d, err := l.next.Load(ctx, path)
	if err != nil {
		l.logger.Info("docset load", "path", path, "duration", time.Since(begin), "err", err)
		return nil, err
	}

	l.logger.Info("docset load",
		"path", path,
		"name", d.Name(),
		"variant", d.Variant().String(),
		"valid", d.IsValid(),
		"duration", time.Since(begin),
	)

	return &loggingDocset{
		Docset:   d,
		searcher: NewLoggingSearcher(d, l.logger.With("docset", d.Name())),
	}, nil
}

// loggingDocset overrides Search on the embedded docset.
type loggingDocset struct {
	zealdoc.Docset
	searcher *LoggingSearcher
}

func (d *loggingDocset) Search(ctx context.Context, query string, token zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error) {
	return d.searcher.Search(ctx, query, token)
}
