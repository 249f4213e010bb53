package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/zealdoc"
)

// Ensure LoggingSearcher implements zealdoc.Searcher.
var _ zealdoc.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with debug logging.
type LoggingSearcher struct {
	next   zealdoc.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next zealdoc.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the query.
func (s *LoggingSearcher) Search(ctx context.Context, query string, token zealdoc.CancellationToken) (results []*zealdoc.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"query", query,
			"count", len(results),
			"canceled", token.IsCanceled(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, token)
}
